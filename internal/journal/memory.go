package journal

import "sync"

// Memory is a slice-backed transcript store, the default for embedding and
// tests.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemory creates a new in-memory journal.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records an entry.
func (m *Memory) Append(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Seq = len(m.entries) + 1
	m.entries = append(m.entries, e)
	return nil
}

// Recent returns up to limit entries, oldest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start := 0
	if limit > 0 && limit < len(m.entries) {
		start = len(m.entries) - limit
	}
	out := make([]Entry, len(m.entries)-start)
	copy(out, m.entries[start:])
	return out, nil
}

// Len returns the number of recorded entries.
func (m *Memory) Len() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Close is a no-op for the memory journal.
func (m *Memory) Close() error {
	return nil
}
