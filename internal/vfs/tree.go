package vfs

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// treeSpec is the compiled-in filesystem specification. The tree never
// loads from external storage; embedding keeps the YAML a build-time
// constant while staying editable as data.
//
//go:embed tree.yaml
var treeSpec []byte

// RootName is the display name of the filesystem root.
const RootName = "~"

const (
	defaultDirPerms  Perms = "rwxr-xr-x"
	defaultFilePerms Perms = "rw-r--r--"
)

// nodeSpec mirrors one YAML node. Children present means directory.
type nodeSpec struct {
	Perms    string               `yaml:"perms"`
	Owner    string               `yaml:"owner"`
	Group    string               `yaml:"group"`
	Gated    bool                 `yaml:"gated"`
	Lines    map[string][]string  `yaml:"lines"`
	Children map[string]*nodeSpec `yaml:"children"`
}

// Tree is the immutable-shape filesystem. It is safe for concurrent reads;
// nothing mutates it after construction.
type Tree struct {
	root  *Node
	gated map[string]bool
}

// New parses the embedded specification and builds the tree.
func New() (*Tree, error) {
	var spec nodeSpec
	if err := yaml.Unmarshal(treeSpec, &spec); err != nil {
		return nil, fmt.Errorf("parse tree spec: %w", err)
	}
	if spec.Children == nil {
		return nil, fmt.Errorf("tree spec root must be a directory")
	}

	t := &Tree{gated: make(map[string]bool)}
	root, err := t.build(RootName, &spec, "", "", time.Now())
	if err != nil {
		return nil, err
	}
	t.root = root
	return t, nil
}

// MustNew builds the tree or panics. The embedded spec is fixed, so a
// failure here is a build defect, not a runtime condition.
func MustNew() *Tree {
	t, err := New()
	if err != nil {
		panic("vfs: " + err.Error())
	}
	return t
}

func (t *Tree) build(name string, spec *nodeSpec, parentOwner, parentGroup string, modTime time.Time) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("empty node name")
	}
	if name != RootName {
		for _, r := range name {
			if r == '/' {
				return nil, fmt.Errorf("node name %q contains a path separator", name)
			}
		}
	}

	owner := spec.Owner
	if owner == "" {
		owner = parentOwner
	}
	group := spec.Group
	if group == "" {
		group = parentGroup
	}

	isDir := spec.Children != nil
	perms := Perms(spec.Perms)
	if perms == "" {
		if isDir {
			perms = defaultDirPerms
		} else {
			perms = defaultFilePerms
		}
	}
	if err := perms.Validate(); err != nil {
		return nil, fmt.Errorf("node %q: %w", name, err)
	}

	if spec.Gated {
		t.gated[name] = true
	}

	n := &Node{
		Name:    name,
		Perms:   perms,
		Owner:   owner,
		Group:   group,
		ModTime: modTime,
	}

	if isDir {
		n.Kind = KindDir
		n.Children = make(map[string]*Node, len(spec.Children))
		for childName, childSpec := range spec.Children {
			child, err := t.build(childName, childSpec, owner, group, modTime)
			if err != nil {
				return nil, err
			}
			n.Children[childName] = child
		}
		return n, nil
	}

	n.Kind = KindFile
	n.Lines = make(map[Locale][]string, len(spec.Lines))
	for loc, lines := range spec.Lines {
		parsed, err := ParseLocale(loc)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		n.Lines[parsed] = lines
	}
	if _, ok := n.Lines[LocaleEN]; !ok {
		return nil, fmt.Errorf("node %q: missing English content", name)
	}
	return n, nil
}

// Root returns the root directory node.
func (t *Tree) Root() *Node {
	return t.root
}

// Gated reports whether a name belongs to the feature-gated set that
// Restricted sessions must not see.
func (t *Tree) Gated(name string) bool {
	return t.gated[name]
}

// GatedNames returns the gated name set (for listings and tests).
func (t *Tree) GatedNames() map[string]bool {
	out := make(map[string]bool, len(t.gated))
	for name := range t.gated {
		out[name] = true
	}
	return out
}

// Fingerprint returns a structural summary of the whole tree.
func (t *Tree) Fingerprint() string {
	return t.root.Fingerprint()
}
