// Package vfs implements the in-memory virtual filesystem: the node model,
// the embedded portfolio tree, and the path resolver.
//
// The tree is built once at startup from an embedded YAML specification and
// is never mutated afterwards. Commands that look like mutations (touch,
// mkdir, chmod, chown, rm) validate their preconditions and report success
// without touching the structure.
package vfs

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Locale selects which content variant a file serves.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleZH Locale = "zh"
)

// ParseLocale validates a locale name.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleEN, LocaleZH:
		return Locale(s), nil
	}
	return "", fmt.Errorf("unsupported locale: %s", s)
}

// Kind distinguishes the two node variants.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// Perms is a 9-character rwx triplet string (owner, group, other),
// e.g. "rwxr-xr--".
type Perms string

// Validate checks the triplet shape: exactly 9 characters, each position
// either the expected bit letter or '-'.
func (p Perms) Validate() error {
	if len(p) != 9 {
		return fmt.Errorf("permissions must be 9 characters, got %q", string(p))
	}
	const bits = "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if p[i] != bits[i] && p[i] != '-' {
			return fmt.Errorf("invalid permission character %q at position %d in %q", p[i], i, string(p))
		}
	}
	return nil
}

// Node represents a file or directory in the virtual filesystem.
// Exactly one of Lines (files) and Children (directories) is meaningful.
type Node struct {
	Name    string
	Kind    Kind
	Perms   Perms
	Owner   string
	Group   string
	ModTime time.Time

	Lines    map[Locale][]string
	Children map[string]*Node
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == KindDir
}

// Content returns the file's lines for a locale, falling back to English
// when the requested variant is missing.
func (n *Node) Content(loc Locale) []string {
	if lines, ok := n.Lines[loc]; ok {
		return lines
	}
	return n.Lines[LocaleEN]
}

// ChildNames returns the directory's entry names sorted directories-first,
// then lexicographically. Names for which hidden returns true are skipped;
// dotfiles are skipped unless showDot is set.
func (n *Node) ChildNames(showDot bool, hidden func(string) bool) []string {
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		if !showDot && strings.HasPrefix(name, ".") {
			continue
		}
		if hidden != nil && hidden(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di := n.Children[names[i]].IsDir()
		dj := n.Children[names[j]].IsDir()
		if di != dj {
			return di
		}
		return names[i] < names[j]
	})
	return names
}

// Fingerprint returns a deterministic structural summary of the subtree,
// used to assert that simulated mutations leave the tree untouched.
func (n *Node) Fingerprint() string {
	var b strings.Builder
	n.fingerprint(&b, "")
	return b.String()
}

func (n *Node) fingerprint(b *strings.Builder, prefix string) {
	kind := "f"
	if n.IsDir() {
		kind = "d"
	}
	fmt.Fprintf(b, "%s%s %s %s %s:%s\n", prefix, n.Name, kind, n.Perms, n.Owner, n.Group)
	names := make([]string, 0, len(n.Children))
	for name := range n.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		n.Children[name].fingerprint(b, prefix+"  ")
	}
}
