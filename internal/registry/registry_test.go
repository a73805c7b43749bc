package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func names(reg *Registry) []string {
	var out []string
	for _, p := range reg.Profiles() {
		out = append(out, p.Name)
	}
	return out
}

func TestRegistry_SetKeepsInsertionOrder(t *testing.T) {
	reg := New()
	reg.Set(Profile{Name: "work", Registry: "w@x.com", Home: "w@x.com"})
	reg.Set(Profile{Name: "alice", Registry: "a@x.com", Home: "a@x.com"})
	reg.Set(Profile{Name: "zed", Registry: "z@x.com", Home: "z@x.com"})

	// Replacing keeps its position
	reg.Set(Profile{Name: "work", Registry: "w2@x.com", Home: "w2@x.com"})

	if diff := cmp.Diff([]string{"work", "alice", "zed"}, names(reg)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	p, ok := reg.Get("work")
	if !ok || p.Registry != "w2@x.com" {
		t.Errorf("Get(work) = %+v, %v", p, ok)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistry_Delete(t *testing.T) {
	reg := New()
	reg.Set(Profile{Name: "a"})
	reg.Set(Profile{Name: "b"})
	reg.Set(Profile{Name: "c"})

	if !reg.Delete("b") {
		t.Fatal("Delete(b) = false")
	}
	if reg.Delete("b") {
		t.Error("second Delete(b) = true")
	}
	if _, ok := reg.Get("b"); ok {
		t.Error("b still present")
	}
	if diff := cmp.Diff([]string{"a", "c"}, names(reg)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode(t *testing.T) {
	data := []byte(`{"zed":{"registry":"z@x.com","home":"z@x.com"},"alice":{"registry":"a@x.com","home":"home@x.com"}}`)

	reg, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := []Profile{
		{Name: "zed", Registry: "z@x.com", Home: "z@x.com"},
		{Name: "alice", Registry: "a@x.com", Home: "home@x.com"},
	}
	if diff := cmp.Diff(want, reg.Profiles()); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	out, err := Encode(reg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(out) != string(data) {
		t.Errorf("Encode() =\n%s\nwant\n%s", out, data)
	}
}

func TestDecode_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\n"} {
		reg, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("Decode(%q): %v", in, err)
		}
		if reg.Len() != 0 {
			t.Errorf("Decode(%q) has %d profiles", in, reg.Len())
		}
	}
}

func TestDecode_MissingFields(t *testing.T) {
	reg, err := Decode([]byte(`{"x":{"registry":"x@x.com"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p, _ := reg.Get("x")
	if p.Registry != "x@x.com" || p.Home != "" {
		t.Errorf("Get(x) = %+v", p)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":       `{nope`,
		"array":          `[1,2]`,
		"profile string": `{"x":"y"}`,
		"number field":   `{"x":{"registry":5}}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(in)); err == nil {
				t.Errorf("Decode(%s) succeeded", in)
			}
		})
	}
}
