package common

import "testing"

func TestResolveSibling(t *testing.T) {
	tcs := []struct {
		path string
		name string
		want string
	}{
		{path: "models/Monster1.obj", name: "Monster1.mtl", want: "models/Monster1.mtl"},
		{path: "Monster1.obj", name: "Monster1.mtl", want: "Monster1.mtl"},
		{path: "Monster1.obj", name: "", want: ""},
	}

	for _, tc := range tcs {
		if got := ResolveSibling(tc.path, tc.name); got != tc.want {
			t.Fatalf("ResolveSibling(%q, %q)=%q; want %q", tc.path, tc.name, got, tc.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "b", "c"); got != "b" {
		t.Fatalf("Coalesce=%q; want b", got)
	}
	if got := Coalesce(0, 0, 7); got != 7 {
		t.Fatalf("Coalesce=%d; want 7", got)
	}
	if got := Coalesce[string](); got != "" {
		t.Fatalf("Coalesce()=%q; want zero value", got)
	}
}
