package session

import "testing"

func TestChallengeAccepted(t *testing.T) {
	s := newTestSession(t)

	s.BeginChallenge("cat ~/.sudoers")
	if !s.ChallengePending() {
		t.Fatal("challenge not pending after BeginChallenge")
	}

	replay, result := s.SubmitSecret("hunter2")
	if result != SecretAccepted {
		t.Fatalf("result = %v, want accepted", result)
	}
	if replay != "cat ~/.sudoers" {
		t.Errorf("replay = %q", replay)
	}
	if s.ChallengePending() {
		t.Error("challenge still pending after acceptance")
	}
	if !s.Privileged() {
		t.Error("session not privileged after acceptance")
	}
}

func TestChallengeRetriesThenLockout(t *testing.T) {
	s := newTestSession(t)
	s.BeginChallenge("ls ~/admin")

	for i := 1; i <= 2; i++ {
		if _, result := s.SubmitSecret("wrong"); result != SecretRejected {
			t.Fatalf("attempt %d: result = %v, want rejected", i, result)
		}
		if !s.ChallengePending() {
			t.Fatalf("attempt %d: challenge cleared early", i)
		}
		if got := s.ChallengeAttempts(); got != i {
			t.Errorf("attempt count = %d, want %d", got, i)
		}
	}

	if _, result := s.SubmitSecret("wrong"); result != SecretLockedOut {
		t.Fatalf("third failure: result = %v, want lockout", result)
	}
	if s.ChallengePending() {
		t.Error("challenge survived lockout")
	}
	if s.Privileged() {
		t.Error("lockout escalated privilege")
	}

	// The pending command is gone; the correct secret no longer replays it.
	if replay, result := s.SubmitSecret("hunter2"); result == SecretAccepted || replay != "" {
		t.Errorf("post-lockout submit = (%q, %v), want rejection", replay, result)
	}
	if s.Privileged() {
		t.Error("post-lockout submission escalated privilege")
	}
}

func TestChallengeCorrectSecretBeforeLimit(t *testing.T) {
	s := newTestSession(t)
	s.BeginChallenge("whoami")

	s.SubmitSecret("nope")
	s.SubmitSecret("still nope")

	replay, result := s.SubmitSecret("hunter2")
	if result != SecretAccepted || replay != "whoami" {
		t.Fatalf("third attempt with correct secret = (%q, %v)", replay, result)
	}
}

func TestChallengeReplacement(t *testing.T) {
	s := newTestSession(t)
	s.BeginChallenge("cat a")
	s.SubmitSecret("wrong")
	s.BeginChallenge("cat b")

	if got := s.ChallengeAttempts(); got != 0 {
		t.Errorf("attempts after replacement = %d, want 0", got)
	}
	replay, result := s.SubmitSecret("hunter2")
	if result != SecretAccepted || replay != "cat b" {
		t.Errorf("replay = (%q, %v), want the replacement command", replay, result)
	}
}

func TestSubmitWithoutChallenge(t *testing.T) {
	s := newTestSession(t)
	if replay, result := s.SubmitSecret("hunter2"); result == SecretAccepted || replay != "" {
		t.Errorf("submit without challenge = (%q, %v)", replay, result)
	}
	if s.Privileged() {
		t.Error("stray submission escalated privilege")
	}
}

func TestCustomAttemptLimit(t *testing.T) {
	s, err := New(Options{Actor: "guest", Host: "folio", Secret: "pw", MaxAttempts: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.BeginChallenge("ls")
	if _, result := s.SubmitSecret("wrong"); result != SecretLockedOut {
		t.Errorf("result = %v, want immediate lockout with limit 1", result)
	}
}
