// Package shell parses command lines, dispatches them to handlers, and
// produces typed result records for the presentation layer.
package shell

import (
	"fmt"
	"time"
)

// Kind classifies one unit of command output.
type Kind int

const (
	KindError Kind = iota
	KindSuccess
	KindInfo
	KindWarning
	KindSystemNote
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindSystemNote:
		return "system"
	}
	return "unknown"
}

// ListEntry is one row of a structured directory listing.
type ListEntry struct {
	Name    string
	Dir     bool
	Perms   string
	Owner   string
	Group   string
	ModTime time.Time
}

// Record is one typed unit of command output. Ordering within a returned
// slice is the display order.
type Record struct {
	Kind    Kind
	Text    string
	Listing []ListEntry

	// EndSession marks the terminal logout record; the presentation layer
	// resets to the welcome state when it sees one.
	EndSession bool

	// ClearScreen asks the presentation layer to wipe the visible
	// transcript. Session state is unaffected.
	ClearScreen bool
}

func errorf(format string, args ...any) Record {
	return Record{Kind: KindError, Text: fmt.Sprintf(format, args...)}
}

func successf(format string, args ...any) Record {
	return Record{Kind: KindSuccess, Text: fmt.Sprintf(format, args...)}
}

func infof(format string, args ...any) Record {
	return Record{Kind: KindInfo, Text: fmt.Sprintf(format, args...)}
}

func warningf(format string, args ...any) Record {
	return Record{Kind: KindWarning, Text: fmt.Sprintf(format, args...)}
}

func notef(format string, args ...any) Record {
	return Record{Kind: KindSystemNote, Text: fmt.Sprintf(format, args...)}
}
