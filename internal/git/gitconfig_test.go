package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestConfigStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Identity
	}{
		{
			name: "plain",
			content: `[user]
	name = alice
	email = alice@example.com
`,
			want: Identity{Name: "alice", Email: "alice@example.com"},
		},
		{
			name: "quoted values and other sections",
			content: `[core]
	bare
	editor = vim
[remote "origin"]
	url = git@github.com:byterings/gitu.git
[User]
	Name = "Alice Smith"
	email = alice@example.com
`,
			want: Identity{Name: "Alice Smith", Email: "alice@example.com"},
		},
		{
			name: "no user section",
			content: `[core]
	editor = vim
`,
			want: Identity{},
		},
		{
			name: "escaped values",
			content: `[user]
	name = back\\slash say \"hi\"
	email = "semi;colon \"q\"@x.com"
`,
			want: Identity{Name: `back\slash say "hi"`, Email: `semi;colon "q"@x.com`},
		},
		{
			name: "repeated key uses last value",
			content: `[user]
	email = old@x.com
	name = alice
[user]
	email = new@x.com
`,
			want: Identity{Name: "alice", Email: "new@x.com"},
		},
		{
			name: "name only",
			content: `[user]
	name = bob
`,
			want: Identity{Name: "bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".gitconfig")
			writeFile(t, path, tt.content)

			got, err := NewConfigStore(path, "", nil).Get()
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != tt.want {
				t.Errorf("Get() = %+v, want %+v", got, tt.want)
			}
			if got.Configured() != (tt.want.Email != "") {
				t.Errorf("Configured() = %v", got.Configured())
			}
		})
	}
}

func TestConfigStore_GetMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing")
	got, err := NewConfigStore(path, "", nil).Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Configured() {
		t.Errorf("missing file produced configured identity %+v", got)
	}
}

func TestConfigStore_SetAndClear(t *testing.T) {
	if !IsGitInstalled("git") {
		t.Skip("git not installed")
	}

	path := filepath.Join(t.TempDir(), "home", ".gitconfig")
	writeFile(t, path, "[core]\n\teditor = vim\n")
	store := NewConfigStore(path, "git", nil)

	want := Identity{Name: "alice", Email: "Alice@Example.com"}
	if err := store.Set(want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != want {
		t.Errorf("after Set, Get() = %+v, want %+v", got, want)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = store.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Configured() || got.Name != "" {
		t.Errorf("after Clear, Get() = %+v, want empty", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Error("config file emptied; other sections should survive")
	}
}

func TestConfigStore_SetGetRoundTrip(t *testing.T) {
	if !IsGitInstalled("git") {
		t.Skip("git not installed")
	}

	tests := []Identity{
		{Name: `back\slash`, Email: "b@x.com"},
		{Name: `say "hi"`, Email: `q"uote@x.com`},
		{Name: " padded ", Email: "semi;colon#hash@x.com"},
		{Name: "tab\there", Email: `trailing\`},
	}

	store := NewConfigStore(filepath.Join(t.TempDir(), ".gitconfig"), "git", nil)
	for _, want := range tests {
		t.Run(want.Name, func(t *testing.T) {
			if err := store.Set(want); err != nil {
				t.Fatalf("Set: %v", err)
			}
			got, err := store.Get()
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got != want {
				t.Errorf("Get() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := map[string]string{
		`plain`:     "plain",
		`a\\b`:      `a\b`,
		`\"q\"`:     `"q"`,
		`x\ny\tz`:   "x\ny\tz",
		`keep\q`:    `keep\q`,
		`trailing\`: `trailing\`,
	}
	for in, want := range tests {
		if got := unescapeValue(in); got != want {
			t.Errorf("unescapeValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigStore_SetMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gitconfig")
	missing := filepath.Join(t.TempDir(), "no-such-git")
	if IsGitInstalled(missing) {
		t.Errorf("IsGitInstalled(%q) = true", missing)
	}
	store := NewConfigStore(path, missing, nil)
	if err := store.Set(Identity{Name: "a", Email: "a@x.com"}); err == nil {
		t.Fatal("expected error from missing git binary")
	}
}

func TestGlobalConfigPath(t *testing.T) {
	homedir.DisableCache = true
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("GIT_CONFIG_GLOBAL", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dotfile := filepath.Join(home, ".gitconfig")
	xdg := filepath.Join(home, ".config", "git", "config")

	got, err := GlobalConfigPath("")
	if err != nil {
		t.Fatalf("GlobalConfigPath: %v", err)
	}
	if got != dotfile {
		t.Errorf("no files: got %q, want %q", got, dotfile)
	}

	writeFile(t, xdg, "")
	if got, _ := GlobalConfigPath(""); got != xdg {
		t.Errorf("xdg only: got %q, want %q", got, xdg)
	}

	writeFile(t, dotfile, "")
	if got, _ := GlobalConfigPath(""); got != dotfile {
		t.Errorf("both: got %q, want %q", got, dotfile)
	}

	explicit := filepath.Join(home, "other")
	t.Setenv("GIT_CONFIG_GLOBAL", explicit)
	if got, _ := GlobalConfigPath(""); got != explicit {
		t.Errorf("GIT_CONFIG_GLOBAL: got %q, want %q", got, explicit)
	}

	if got, _ := GlobalConfigPath("/etc/custom"); got != "/etc/custom" {
		t.Errorf("explicit: got %q", got)
	}
}
