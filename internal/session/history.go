package session

// AppendHistory records a submitted command line and resets the recall
// cursor. Secret submissions are never appended; the dispatcher enforces
// that by not calling this while a challenge is pending.
func (s *Session) AppendHistory(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, line)
	s.cursor = len(s.history)
}

// History returns a copy of the submitted command lines, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryPrev moves the recall cursor one entry back and returns that
// line. It reports false when the history is empty; at the oldest entry
// it keeps returning it.
func (s *Session) HistoryPrev() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return "", false
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return s.history[s.cursor], true
}

// HistoryNext moves the recall cursor one entry forward. Past the newest
// entry it reports false and yields the empty pending line.
func (s *Session) HistoryNext() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.history) {
		return "", false
	}
	s.cursor++
	if s.cursor == len(s.history) {
		return "", false
	}
	return s.history[s.cursor], true
}

// ResetHistoryCursor returns the cursor to the pending-line position.
func (s *Session) ResetHistoryCursor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = len(s.history)
}
