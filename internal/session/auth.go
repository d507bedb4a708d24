package session

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/termfolio/termfolio/internal/logging"
	"github.com/termfolio/termfolio/internal/metrics"
)

// ChallengePending reports whether the session is awaiting a secret.
func (s *Session) ChallengePending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge != nil
}

// ChallengeAttempts returns the failed-attempt count of the pending
// challenge, or 0 when none is pending.
func (s *Session) ChallengeAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.challenge == nil {
		return 0
	}
	return s.challenge.Attempts
}

// BeginChallenge enters the AwaitingSecret state, storing the requested
// command line for replay. A challenge already in flight is replaced.
func (s *Session) BeginChallenge(commandLine string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenge = &Challenge{Command: commandLine}
	logging.Debug("auth challenge started", logging.String("session_id", s.id))
}

// SubmitSecret compares one secret submission against the stored hash.
//
// Accepted: the session becomes privileged, the challenge clears, and the
// originally requested command line is returned for re-dispatch. Rejected:
// the attempt counter advances; reaching the limit clears the challenge,
// pending command included, and reports lockout. A fresh escalation is
// required after that.
func (s *Session) SubmitSecret(secret string) (replay string, result SecretResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.challenge == nil {
		// No challenge pending; treat as a plain failure.
		metrics.RecordAuthAttempt(false)
		return "", SecretRejected
	}

	if bcrypt.CompareHashAndPassword(s.secretHash, []byte(secret)) == nil {
		replay = s.challenge.Command
		s.challenge = nil
		s.privileged = true
		metrics.RecordAuthAttempt(true)
		logging.Info("privilege escalation granted",
			logging.String("session_id", s.id))
		return replay, SecretAccepted
	}

	s.challenge.Attempts++
	metrics.RecordAuthAttempt(false)
	if s.challenge.Attempts >= s.maxAttempts {
		s.challenge = nil
		logging.Warn("privilege escalation locked out",
			logging.String("session_id", s.id))
		return "", SecretLockedOut
	}
	logging.Debug("privilege escalation rejected",
		logging.String("session_id", s.id),
		logging.Int("attempts", s.challenge.Attempts))
	return "", SecretRejected
}
