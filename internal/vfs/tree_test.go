package vfs

import (
	"strings"
	"testing"
)

func TestTreeBuild(t *testing.T) {
	tree, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	root := tree.Root()
	if !root.IsDir() {
		t.Fatal("root is not a directory")
	}
	if root.Name != RootName {
		t.Errorf("root name = %q, want %q", root.Name, RootName)
	}

	for _, name := range []string{"README.txt", "about", "skills", "projects", "contact", "lab", "admin"} {
		if _, ok := root.Children[name]; !ok {
			t.Errorf("root is missing %q", name)
		}
	}
}

func TestTreeDefaultsAndInheritance(t *testing.T) {
	tree := MustNew()
	root := tree.Root()

	about := root.Children["about"]
	if about.Perms != "rwxr-xr-x" {
		t.Errorf("about perms = %q, want default dir perms", about.Perms)
	}
	if about.Owner != "dev" || about.Group != "dev" {
		t.Errorf("about owner:group = %s:%s, want dev:dev", about.Owner, about.Group)
	}

	bio := about.Children["bio.txt"]
	if bio.Perms != "rw-r--r--" {
		t.Errorf("bio.txt perms = %q, want default file perms", bio.Perms)
	}
	if bio.Owner != "dev" {
		t.Errorf("bio.txt owner = %q, inherited owner expected", bio.Owner)
	}

	sudoers := root.Children[".sudoers"]
	if sudoers.Perms != "rw-------" || sudoers.Owner != "root" {
		t.Errorf(".sudoers = %s %s, explicit values expected", sudoers.Perms, sudoers.Owner)
	}
}

func TestTreeGatedNames(t *testing.T) {
	tree := MustNew()

	if !tree.Gated("lab") || !tree.Gated("admin") {
		t.Error("lab and admin should be gated")
	}
	if tree.Gated("about") || tree.Gated("README.txt") {
		t.Error("ungated names reported as gated")
	}
	if got := len(tree.GatedNames()); got != 2 {
		t.Errorf("gated set size = %d, want 2", got)
	}
}

func TestContentLocaleFallback(t *testing.T) {
	n := &Node{
		Kind: KindFile,
		Lines: map[Locale][]string{
			LocaleEN: {"english only"},
		},
	}
	if got := n.Content(LocaleZH); len(got) != 1 || got[0] != "english only" {
		t.Errorf("Content(zh) = %v, want English fallback", got)
	}

	tree := MustNew()
	bio := tree.Root().Children["about"].Children["bio.txt"]
	en := bio.Content(LocaleEN)
	zh := bio.Content(LocaleZH)
	if len(en) == 0 || len(zh) == 0 {
		t.Fatal("bio.txt missing locale content")
	}
	if en[0] == zh[0] {
		t.Error("en and zh variants should differ")
	}
}

func TestChildNamesOrdering(t *testing.T) {
	tree := MustNew()
	root := tree.Root()

	names := root.ChildNames(false, nil)
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			t.Errorf("dotfile %q listed without showDot", name)
		}
	}

	// Directories sort before files.
	sawFile := false
	for _, name := range names {
		if root.Children[name].IsDir() {
			if sawFile {
				t.Fatalf("directory %q listed after a file: %v", name, names)
			}
		} else {
			sawFile = true
		}
	}

	all := root.ChildNames(true, nil)
	if len(all) <= len(names) {
		t.Errorf("showDot added no entries: %d vs %d", len(all), len(names))
	}

	gated := root.ChildNames(true, func(name string) bool { return name == "lab" || name == "admin" })
	for _, name := range gated {
		if name == "lab" || name == "admin" {
			t.Errorf("hidden name %q listed", name)
		}
	}
}

func TestPermsValidate(t *testing.T) {
	tests := []struct {
		perms Perms
		ok    bool
	}{
		{"rwxr-xr-x", true},
		{"rw-r--r--", true},
		{"---------", true},
		{"rwxrwxrwx", true},
		{"rwx", false},
		{"rwxr-xr-xx", false},
		{"rwxr-xr-w", false},
		{"xwrr-xr-x", false},
	}
	for _, tc := range tests {
		err := tc.perms.Validate()
		if tc.ok && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tc.perms, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("Validate(%q) = nil, want error", tc.perms)
		}
	}
}

func TestFingerprintStable(t *testing.T) {
	tree := MustNew()
	if tree.Fingerprint() != tree.Fingerprint() {
		t.Error("fingerprint not deterministic")
	}
	if MustNew().Fingerprint() != tree.Fingerprint() {
		t.Error("fingerprint differs across builds of the same spec")
	}
}
