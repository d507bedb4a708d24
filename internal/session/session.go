// Package session holds the mutable per-session state: actor identity,
// privilege level, working directory, command history, the pending
// privilege-escalation challenge, and the feature gate.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/termfolio/termfolio/internal/logging"
	"github.com/termfolio/termfolio/internal/metrics"
	"github.com/termfolio/termfolio/internal/perm"
	"github.com/termfolio/termfolio/internal/vfs"
)

// Feature is the session-level visibility gate. It is independent of the
// permission model and transitions Restricted -> Full exactly once.
type Feature int

const (
	Restricted Feature = iota
	Full
)

// Challenge tracks a pending privilege-escalation secret prompt.
type Challenge struct {
	// Command is the originally requested line, replayed verbatim once
	// the secret is accepted.
	Command  string
	Attempts int
}

// SecretResult is the outcome of one secret submission.
type SecretResult int

const (
	SecretAccepted SecretResult = iota
	SecretRejected
	SecretLockedOut
)

// Options configures a new session.
type Options struct {
	Actor       string
	Host        string
	Groups      []string
	Secret      string
	MaxAttempts int
	Locale      vfs.Locale
}

// Session is the single mutable state instance for one user session.
// All fields are guarded by the mutex; the filesystem tree is not part of
// the session and is never mutated through it.
type Session struct {
	mu sync.Mutex

	id         string
	actor      string
	host       string
	groups     map[string]bool
	privileged bool

	cwd     string
	prevCwd string // empty until the first cd

	history []string
	cursor  int // == len(history) when not browsing

	challenge *Challenge
	feature   Feature
	locale    vfs.Locale

	secretHash  []byte
	maxAttempts int
}

// New creates a session in its initial state: anonymous actor, Restricted
// feature level, cwd at the root. The escalation secret is hashed
// immediately and the plaintext is not retained.
func New(opts Options) (*Session, error) {
	if opts.Actor == "" || opts.Host == "" {
		return nil, fmt.Errorf("session requires an actor and a host")
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.Locale == "" {
		opts.Locale = vfs.LocaleEN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	groups := make(map[string]bool, len(opts.Groups))
	for _, g := range opts.Groups {
		groups[g] = true
	}

	s := &Session{
		id:          uuid.NewString(),
		actor:       opts.Actor,
		host:        opts.Host,
		groups:      groups,
		cwd:         vfs.RootName,
		locale:      opts.Locale,
		secretHash:  hash,
		maxAttempts: opts.MaxAttempts,
	}
	metrics.RecordSessionStarted()
	logging.Info("session started",
		logging.String("session_id", s.id),
		logging.String("actor", s.actor))
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Actor returns the effective actor name: root while privileged.
func (s *Session) Actor() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.privileged {
		return "root"
	}
	return s.actor
}

// Identity returns the actor for permission checks.
func (s *Session) Identity() perm.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make(map[string]bool, len(s.groups))
	for g := range s.groups {
		groups[g] = true
	}
	name := s.actor
	if s.privileged {
		name = "root"
	}
	return perm.Actor{Name: name, Groups: groups, Privileged: s.privileged}
}

// Privileged reports whether the session holds elevated privilege.
func (s *Session) Privileged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.privileged
}

// Groups returns the actor's group memberships.
func (s *Session) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.groups))
	for g := range s.groups {
		out = append(out, g)
	}
	return out
}

// Cwd returns the current working directory (canonical path).
func (s *Session) Cwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cwd
}

// PrevCwd returns the previous working directory, or "" if there is none.
func (s *Session) PrevCwd() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prevCwd
}

// SetCwd changes the working directory, remembering the previous one.
// Callers must only pass paths that already resolved to a directory.
func (s *Session) SetCwd(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if path == s.cwd {
		return
	}
	s.prevCwd = s.cwd
	s.cwd = path
}

// SwapCwd exchanges the current and previous directories (cd -).
// It reports false when no previous directory exists.
func (s *Session) SwapCwd() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prevCwd == "" {
		return "", false
	}
	s.cwd, s.prevCwd = s.prevCwd, s.cwd
	return s.cwd, true
}

// Prompt builds the prompt string: {actor}@{host}:{cwd}$
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor := s.actor
	if s.privileged {
		actor = "root"
	}
	return fmt.Sprintf("%s@%s:%s$", actor, s.host, s.cwd)
}

// Host returns the prompt hostname.
func (s *Session) Host() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.host
}

// Locale returns the active content locale.
func (s *Session) Locale() vfs.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// SetLocale switches the content locale. Pure session state; the tree is
// untouched.
func (s *Session) SetLocale(loc vfs.Locale) {
	s.mu.Lock()
	s.locale = loc
	s.mu.Unlock()
	metrics.RecordLocaleSwitch(string(loc))
}

// Feature returns the current feature level.
func (s *Session) Feature() Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feature
}

// Unlock flips Restricted -> Full. It reports whether this call performed
// the transition; the gate never reverses.
func (s *Session) Unlock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feature == Full {
		return false
	}
	s.feature = Full
	logging.Info("feature gate unlocked", logging.String("session_id", s.id))
	return true
}

// Reset restores the initial welcome state: a logout. The tree is not
// torn down; identity configuration and the secret hash survive.
func (s *Session) Reset() {
	s.mu.Lock()
	s.id = uuid.NewString()
	s.privileged = false
	s.cwd = vfs.RootName
	s.prevCwd = ""
	s.history = nil
	s.cursor = 0
	s.challenge = nil
	s.feature = Restricted
	s.mu.Unlock()
	metrics.RecordSessionStarted()
	logging.Info("session reset", logging.String("session_id", s.ID()))
}
