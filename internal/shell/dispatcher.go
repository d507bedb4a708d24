package shell

import (
	"strings"

	"github.com/termfolio/termfolio/internal/logging"
	"github.com/termfolio/termfolio/internal/metrics"
	"github.com/termfolio/termfolio/internal/sequencer"
	"github.com/termfolio/termfolio/internal/session"
	"github.com/termfolio/termfolio/internal/vfs"
)

// handlerFunc executes one command. args excludes the command name.
type handlerFunc func(d *Dispatcher, args []string) []Record

type handler struct {
	fn handlerFunc

	// gated commands are rejected as CommandNotFound while the session
	// is Restricted, indistinguishable from genuinely unknown names.
	gated bool
}

// Dispatcher maps command names to handlers and owns the execute path.
// The tree is read-only; all mutable state lives in the session and the
// transcript.
type Dispatcher struct {
	tree       *vfs.Tree
	sess       *session.Session
	sched      *sequencer.Scheduler
	transcript *Transcript
	handlers   map[string]handler
}

// New wires a dispatcher over a tree, a session, and a scheduler.
func New(tree *vfs.Tree, sess *session.Session, sched *sequencer.Scheduler) *Dispatcher {
	d := &Dispatcher{
		tree:       tree,
		sess:       sess,
		sched:      sched,
		transcript: NewTranscript(),
	}
	d.handlers = map[string]handler{
		"ls":      {fn: (*Dispatcher).cmdLs},
		"cd":      {fn: (*Dispatcher).cmdCd},
		"cat":     {fn: (*Dispatcher).cmdCat},
		"pwd":     {fn: (*Dispatcher).cmdPwd},
		"whoami":  {fn: (*Dispatcher).cmdWhoami},
		"id":      {fn: (*Dispatcher).cmdID},
		"date":    {fn: (*Dispatcher).cmdDate},
		"uname":   {fn: (*Dispatcher).cmdUname},
		"echo":    {fn: (*Dispatcher).cmdEcho},
		"man":     {fn: (*Dispatcher).cmdMan},
		"history": {fn: (*Dispatcher).cmdHistory},
		"lang":    {fn: (*Dispatcher).cmdLang},
		"sudo":    {fn: (*Dispatcher).cmdSudo},
		"touch":   {fn: (*Dispatcher).cmdTouch},
		"mkdir":   {fn: (*Dispatcher).cmdMkdir},
		"chmod":   {fn: (*Dispatcher).cmdChmod},
		"chown":   {fn: (*Dispatcher).cmdChown},
		"rm":      {fn: (*Dispatcher).cmdRm},
		"unlock":  {fn: (*Dispatcher).cmdUnlock},
		"deploy":  {fn: (*Dispatcher).cmdDeploy, gated: true},
		"help":    {fn: (*Dispatcher).cmdHelp},
		"clear":   {fn: (*Dispatcher).cmdClear},
		"exit":    {fn: (*Dispatcher).cmdExit},
		"logout":  {fn: (*Dispatcher).cmdExit},
	}
	return d
}

// Transcript returns the shared result history.
func (d *Dispatcher) Transcript() *Transcript {
	return d.transcript
}

// Session returns the session the dispatcher drives.
func (d *Dispatcher) Session() *session.Session {
	return d.sess
}

// Tree returns the read-only filesystem.
func (d *Dispatcher) Tree() *vfs.Tree {
	return d.tree
}

// Execute runs one submitted line and returns the first batch of result
// records. Multi-stage output is appended to the transcript later by the
// scheduler. While a secret challenge is pending the line is consumed as
// the secret: it is neither echoed into the transcript nor recorded in
// history.
func (d *Dispatcher) Execute(line string) []Record {
	trimmed := strings.TrimSpace(line)

	if d.sess.ChallengePending() {
		idx := d.transcript.Append(Entry{Input: ""})
		records := d.handleSecret(trimmed)
		d.transcript.SetRecords(idx, records)
		return records
	}

	idx := d.transcript.Append(Entry{Input: trimmed})
	if trimmed == "" {
		return nil
	}
	d.sess.AppendHistory(trimmed)

	records := d.dispatch(trimmed)
	d.transcript.SetRecords(idx, records)
	return records
}

// dispatch parses and runs a line without touching history or adding a
// transcript entry. The sudo replay path re-enters here.
func (d *Dispatcher) dispatch(line string) []Record {
	if strings.ContainsAny(line, "|>") {
		return []Record{errorf("sh: pipes and redirection are not supported")}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := fields[0]

	h, known := d.handlers[name]
	if !known || (h.gated && d.sess.Feature() == session.Restricted) {
		// Gated rejections share the unknown-command text on purpose:
		// Restricted mode must not be probeable through error text.
		metrics.RecordCommand(name, false)
		return []Record{errorf("sh: %s: command not found", name)}
	}

	logging.Debug("dispatching command",
		logging.String("session_id", d.sess.ID()),
		logging.String("command", name))

	records := h.fn(d, fields[1:])
	metrics.RecordCommand(name, !hasError(records))
	return records
}

func (d *Dispatcher) handleSecret(secret string) []Record {
	replay, result := d.sess.SubmitSecret(secret)
	switch result {
	case session.SecretAccepted:
		// Privilege now applies within the same user action.
		return d.dispatch(replay)
	case session.SecretLockedOut:
		return []Record{errorf("sudo: 3 incorrect password attempts")}
	default:
		return []Record{errorf("Sorry, try again.")}
	}
}

// hidden returns the gate predicate for path resolution and listings,
// or nil once the session runs at Full feature level. The gate is
// evaluated before any permission check.
func (d *Dispatcher) hidden() func(string) bool {
	if d.sess.Feature() == session.Full {
		return nil
	}
	return d.tree.Gated
}

// resolve resolves a path expression against the session cwd with the
// feature gate applied.
func (d *Dispatcher) resolve(expr string) (*vfs.Node, string, error) {
	return d.tree.Resolve(expr, d.sess.Cwd(), d.hidden())
}

func hasError(records []Record) bool {
	for _, r := range records {
		if r.Kind == KindError {
			return true
		}
	}
	return false
}

// splitFlags separates "-x"-style tokens from operands. A bare "-" is an
// operand (cd -). Flag letters are concatenated in input order.
func splitFlags(args []string) (flags string, operands []string) {
	for _, arg := range args {
		if len(arg) > 1 && strings.HasPrefix(arg, "-") {
			flags += arg[1:]
		} else {
			operands = append(operands, arg)
		}
	}
	return flags, operands
}

// badFlag returns the first flag letter not in allowed, or 0.
func badFlag(flags, allowed string) byte {
	for i := 0; i < len(flags); i++ {
		if !strings.ContainsRune(allowed, rune(flags[i])) {
			return flags[i]
		}
	}
	return 0
}
