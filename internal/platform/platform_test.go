package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestMkdirSecure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := MkdirSecure(dir); err != nil {
		t.Fatalf("MkdirSecure: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0700 {
		t.Errorf("perm = %o, want 700", info.Mode().Perm())
	}
}

func TestCheckAndFixFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}

	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	ok, err := CheckFilePermissions(path)
	if err != nil {
		t.Fatalf("CheckFilePermissions: %v", err)
	}
	if ok {
		t.Fatal("0644 file reported as secure")
	}

	if err := FixFilePermissions(path); err != nil {
		t.Fatalf("FixFilePermissions: %v", err)
	}

	ok, err = CheckFilePermissions(path)
	if err != nil {
		t.Fatalf("CheckFilePermissions after fix: %v", err)
	}
	if !ok {
		t.Error("file still insecure after fix")
	}
}

func TestCheckFilePermissions_Missing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	if _, err := CheckFilePermissions(filepath.Join(t.TempDir(), "nope")); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestHasCommand(t *testing.T) {
	if HasCommand(filepath.Join(t.TempDir(), "no-such-command")) {
		t.Error("HasCommand reported a missing command")
	}

	self, err := os.Executable()
	if err != nil {
		t.Skipf("os.Executable: %v", err)
	}
	if !HasCommand(self) {
		t.Errorf("HasCommand(%q) = false", self)
	}
}
