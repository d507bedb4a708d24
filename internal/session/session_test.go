package session

import (
	"testing"

	"github.com/termfolio/termfolio/internal/vfs"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(Options{
		Actor:  "guest",
		Host:   "folio",
		Groups: []string{"dev"},
		Secret: "hunter2",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := newTestSession(t)

	if s.Cwd() != vfs.RootName {
		t.Errorf("cwd = %q, want root", s.Cwd())
	}
	if s.Feature() != Restricted {
		t.Error("new session should start Restricted")
	}
	if s.Privileged() {
		t.Error("new session should not be privileged")
	}
	if s.Locale() != vfs.LocaleEN {
		t.Errorf("locale = %q, want en", s.Locale())
	}
	if s.Prompt() != "guest@folio:~$" {
		t.Errorf("prompt = %q", s.Prompt())
	}
}

func TestNewRequiresIdentity(t *testing.T) {
	if _, err := New(Options{Host: "folio", Secret: "x"}); err == nil {
		t.Error("missing actor accepted")
	}
	if _, err := New(Options{Actor: "guest", Secret: "x"}); err == nil {
		t.Error("missing host accepted")
	}
}

func TestCwdSwap(t *testing.T) {
	s := newTestSession(t)

	if _, ok := s.SwapCwd(); ok {
		t.Error("SwapCwd succeeded with no previous directory")
	}

	s.SetCwd("~/about")
	s.SetCwd("~/skills")

	path, ok := s.SwapCwd()
	if !ok || path != "~/about" {
		t.Fatalf("SwapCwd = %q, %v; want ~/about", path, ok)
	}
	path, ok = s.SwapCwd()
	if !ok || path != "~/skills" {
		t.Fatalf("second SwapCwd = %q, %v; want ~/skills", path, ok)
	}
}

func TestSetCwdSamePathKeepsPrev(t *testing.T) {
	s := newTestSession(t)
	s.SetCwd("~/about")
	s.SetCwd("~/about")
	if got := s.PrevCwd(); got != "~" {
		t.Errorf("prevCwd = %q, want ~", got)
	}
}

func TestHistoryCursor(t *testing.T) {
	s := newTestSession(t)

	if _, ok := s.HistoryPrev(); ok {
		t.Error("HistoryPrev on empty history reported ok")
	}

	s.AppendHistory("ls")
	s.AppendHistory("pwd")
	s.AppendHistory("cat README.txt")

	if line, _ := s.HistoryPrev(); line != "cat README.txt" {
		t.Errorf("first prev = %q", line)
	}
	if line, _ := s.HistoryPrev(); line != "pwd" {
		t.Errorf("second prev = %q", line)
	}
	if line, _ := s.HistoryPrev(); line != "ls" {
		t.Errorf("third prev = %q", line)
	}
	// Oldest entry repeats.
	if line, _ := s.HistoryPrev(); line != "ls" {
		t.Errorf("past-oldest prev = %q", line)
	}

	if line, ok := s.HistoryNext(); !ok || line != "pwd" {
		t.Errorf("next = %q, %v", line, ok)
	}
	if line, ok := s.HistoryNext(); !ok || line != "cat README.txt" {
		t.Errorf("next = %q, %v", line, ok)
	}
	// Past the newest entry: empty pending line.
	if line, ok := s.HistoryNext(); ok || line != "" {
		t.Errorf("past-newest next = %q, %v", line, ok)
	}

	// A new submission resets the cursor.
	s.AppendHistory("whoami")
	if line, _ := s.HistoryPrev(); line != "whoami" {
		t.Errorf("prev after append = %q", line)
	}
}

func TestUnlockOnce(t *testing.T) {
	s := newTestSession(t)

	if !s.Unlock() {
		t.Fatal("first Unlock did not transition")
	}
	if s.Feature() != Full {
		t.Fatal("feature not Full after Unlock")
	}
	if s.Unlock() {
		t.Error("second Unlock reported a transition")
	}
	if s.Feature() != Full {
		t.Error("gate reversed")
	}
}

func TestPrivilegedIdentity(t *testing.T) {
	s := newTestSession(t)

	id := s.Identity()
	if id.Name != "guest" || id.Privileged || !id.Groups["dev"] {
		t.Errorf("identity = %+v", id)
	}

	s.BeginChallenge("cat ~/.sudoers")
	if _, result := s.SubmitSecret("hunter2"); result != SecretAccepted {
		t.Fatalf("secret rejected: %v", result)
	}

	if s.Actor() != "root" {
		t.Errorf("actor = %q, want root", s.Actor())
	}
	if s.Prompt() != "root@folio:~$" {
		t.Errorf("prompt = %q", s.Prompt())
	}
	id = s.Identity()
	if id.Name != "root" || !id.Privileged {
		t.Errorf("privileged identity = %+v", id)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	oldID := s.ID()

	s.SetCwd("~/about")
	s.AppendHistory("ls")
	s.Unlock()
	s.BeginChallenge("cat x")
	s.SubmitSecret("hunter2")

	s.Reset()

	if s.ID() == oldID {
		t.Error("reset kept the session id")
	}
	if s.Cwd() != vfs.RootName || s.PrevCwd() != "" {
		t.Errorf("cwd state survived reset: %q %q", s.Cwd(), s.PrevCwd())
	}
	if len(s.History()) != 0 {
		t.Error("history survived reset")
	}
	if s.Privileged() || s.Feature() != Restricted || s.ChallengePending() {
		t.Error("privilege state survived reset")
	}

	// The secret still works after a reset.
	s.BeginChallenge("ls")
	if _, result := s.SubmitSecret("hunter2"); result != SecretAccepted {
		t.Error("secret hash did not survive reset")
	}
}
