package vfs

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a path does not resolve to a node. Gated
// names resolve to this same error on purpose, so a hidden entry is
// indistinguishable from a missing one.
var ErrNotFound = errors.New("no such file or directory")

// Resolve walks a path expression against the tree and returns the target
// node plus its canonical path ("~", "~/about", ...).
//
// Expressions starting with "/" or "~" are absolute; everything else is
// relative to cwd (itself a canonical path). Empty segments and "." are
// discarded, ".." pops one level and is a no-op at the root. A file may
// appear only as the final meaningful segment. hidden, when non-nil, makes
// matching names unresolvable; it is consulted before any permission logic.
//
// Resolve never mutates anything and always terminates: the walk is bounded
// by the segment count.
func (t *Tree) Resolve(expr, cwd string, hidden func(string) bool) (*Node, string, error) {
	full := expr
	switch {
	case expr == "":
		full = cwd
	case strings.HasPrefix(expr, "/"):
		// absolute from root
	case expr == RootName || strings.HasPrefix(expr, RootName+"/"):
		// absolute, ~-anchored
	default:
		full = cwd + "/" + expr
	}

	segs := strings.Split(full, "/")

	cur := t.root
	stack := []*Node{cur}
	var names []string

	for i, seg := range segs {
		switch seg {
		case "", ".", RootName:
			continue
		case "..":
			if len(names) > 0 {
				stack = stack[:len(stack)-1]
				names = names[:len(names)-1]
				cur = stack[len(stack)-1]
			}
			continue
		}

		if !cur.IsDir() {
			return nil, "", ErrNotFound
		}
		if hidden != nil && hidden(seg) {
			return nil, "", ErrNotFound
		}
		child, ok := cur.Children[seg]
		if !ok {
			return nil, "", ErrNotFound
		}
		if !child.IsDir() && !finalSegment(segs, i) {
			return nil, "", ErrNotFound
		}

		stack = append(stack, child)
		names = append(names, seg)
		cur = child
	}

	return cur, canonical(names), nil
}

// finalSegment reports whether no meaningful segment follows index i.
func finalSegment(segs []string, i int) bool {
	for _, seg := range segs[i+1:] {
		if seg != "" && seg != "." && seg != RootName {
			return false
		}
	}
	return true
}

func canonical(names []string) string {
	if len(names) == 0 {
		return RootName
	}
	return RootName + "/" + strings.Join(names, "/")
}

// Parent returns the canonical parent path of a canonical path.
func Parent(path string) string {
	if path == RootName {
		return RootName
	}
	idx := strings.LastIndex(path, "/")
	if idx <= len(RootName) {
		return RootName
	}
	return path[:idx]
}

// SplitTarget splits a path expression into its parent expression and the
// final name, for commands that validate against a parent directory
// (touch, mkdir, rm). "a/b/c" -> ("a/b", "c"); "c" -> ("", "c").
func SplitTarget(expr string) (parent, name string) {
	trimmed := strings.TrimRight(expr, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return "", trimmed
	}
	parent = trimmed[:idx]
	if parent == "" {
		parent = "/"
	}
	return parent, trimmed[idx+1:]
}
