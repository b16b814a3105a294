// Package fifth provides the public API for embedding the fifth interpreter.
package fifth

import (
	"io"

	"skookum.dev/fifth/internal/journal"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithOutput sets the writer for character output (emit, cr, ".", ".s").
func WithOutput(w io.Writer) Option {
	return func(r *Runtime) { r.out = w }
}

// WithJournal sets the transcript store.
func WithJournal(s journal.Store) Option {
	return func(r *Runtime) { r.journal = s }
}

// WithMemoryJournal configures a slice-backed transcript (the default).
func WithMemoryJournal() Option {
	return func(r *Runtime) { r.journal = journal.NewMemory() }
}

// WithSQLiteJournal configures a SQLite-backed transcript for the given DSN.
// Use ":memory:" for a transcript scoped to the process.
func WithSQLiteJournal(dsn string) Option {
	return func(r *Runtime) {
		s, err := journal.NewSQLite(dsn)
		if err == nil {
			r.journal = s
		}
	}
}
