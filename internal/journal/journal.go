// Package journal records the transcript of an interactive session: every
// evaluated line together with its outcome. The console driver reads it back
// for line history. All implementations are volatile; nothing outlives the
// process.
package journal

// Entry is one evaluated line. Exactly one of Value and Err is set when the
// line produced a value or failed; both are empty for lines that succeeded
// silently.
type Entry struct {
	Seq   int
	Input string
	Value string
	Err   string
}

// Store is the interface for transcript storage.
type Store interface {
	// Append records an entry, assigning its sequence number.
	Append(e Entry) error
	// Recent returns up to limit entries in evaluation order, oldest first.
	// A limit <= 0 returns all entries.
	Recent(limit int) ([]Entry, error)
	// Len returns the number of recorded entries.
	Len() (int, error)
	// Close releases resources.
	Close() error
}
