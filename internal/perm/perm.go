// Package perm evaluates classic rwx-triplet permissions against a node.
package perm

import (
	"github.com/termfolio/termfolio/internal/metrics"
	"github.com/termfolio/termfolio/internal/vfs"
)

// Access is the kind of access being requested.
type Access int

const (
	Read Access = iota
	Write
	Exec
)

func (a Access) String() string {
	switch a {
	case Read:
		return "read"
	case Write:
		return "write"
	case Exec:
		return "execute"
	}
	return "unknown"
}

// Actor is the identity a check runs against.
type Actor struct {
	Name       string
	Groups     map[string]bool
	Privileged bool
}

// Check reports whether the actor may perform the access on the node.
//
// A privileged actor is always allowed. Otherwise exactly one triplet is
// selected, first match wins: the owner column when the actor is the owner,
// the group column when the actor's groups include the node's group, the
// other column otherwise. Columns are never combined.
func Check(n *vfs.Node, actor Actor, a Access) bool {
	allowed := check(n, actor, a)
	metrics.RecordPermissionCheck(allowed)
	return allowed
}

func check(n *vfs.Node, actor Actor, a Access) bool {
	if actor.Privileged {
		return true
	}

	offset := 6 // other
	if actor.Name == n.Owner {
		offset = 0
	} else if actor.Groups[n.Group] {
		offset = 3
	}

	return n.Perms[offset+int(a)] != '-'
}
