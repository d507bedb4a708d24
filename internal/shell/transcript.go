package shell

import "sync"

// Entry is one prompt interaction: the submitted input and the records it
// produced, including any appended later by the sequencer.
type Entry struct {
	Input   string
	Records []Record
}

// Transcript is the shared result history. Execute appends entries from
// the dispatch path; sequencer steps append records to the last entry from
// the scheduler's worker goroutine. The mutex serializes those writers.
type Transcript struct {
	mu       sync.Mutex
	entries  []Entry
	observer func(Record)
}

// SetObserver registers a callback invoked for every record appended via
// AppendToLast. The presentation layer uses it to stream sequenced output
// as it lands. The callback runs outside the lock, on the appender's
// goroutine.
func (t *Transcript) SetObserver(fn func(Record)) {
	t.mu.Lock()
	t.observer = fn
	t.mu.Unlock()
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{}
}

// Append adds a new prompt entry and returns its index.
func (t *Transcript) Append(e Entry) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, e)
	return len(t.entries) - 1
}

// AppendToLast appends records to the most recent entry. Scripted
// sequences use this so multi-stage output extends the triggering
// command's block instead of creating new prompt entries.
func (t *Transcript) AppendToLast(records ...Record) {
	t.mu.Lock()
	if len(t.entries) == 0 {
		t.entries = append(t.entries, Entry{})
	}
	last := &t.entries[len(t.entries)-1]
	last.Records = append(last.Records, records...)
	observer := t.observer
	t.mu.Unlock()

	if observer != nil {
		for _, r := range records {
			observer(r)
		}
	}
}

// SetRecords installs the immediate records of the entry at index i,
// ahead of any records a sequencer step already appended. A step can fire
// before the dispatch path commits its batch when delays are collapsed;
// the immediate records still display first.
func (t *Transcript) SetRecords(i int, records []Record) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.entries) {
		return
	}
	appended := t.entries[i].Records
	merged := make([]Record, 0, len(records)+len(appended))
	merged = append(merged, records...)
	merged = append(merged, appended...)
	t.entries[i].Records = merged
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Snapshot returns a deep copy of the entries.
func (t *Transcript) Snapshot() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		records := make([]Record, len(e.Records))
		copy(records, e.Records)
		out[i] = Entry{Input: e.Input, Records: records}
	}
	return out
}

// Clear drops all entries (the clear command's presentation effect).
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}
