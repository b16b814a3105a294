// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"database/sql"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite is a SQLite-backed transcript store. The console driver opens it
// on ":memory:" so the transcript lives and dies with the process; a file
// DSN is accepted for embedders that want an inspectable transcript.
type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// NewSQLite opens a transcript database for the given DSN.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS transcript (
			seq   INTEGER PRIMARY KEY AUTOINCREMENT,
			input TEXT NOT NULL,
			value TEXT NOT NULL,
			err   TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// Append records an entry.
func (s *SQLite) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(
		"INSERT INTO transcript (input, value, err) VALUES (?, ?, ?)",
		e.Input, e.Value, e.Err,
	)
	return err
}

// Recent returns up to limit entries, oldest first.
func (s *SQLite) Recent(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT seq, input, value, err FROM transcript ORDER BY seq"
	args := []interface{}{}
	if limit > 0 {
		// take the newest rows, then restore evaluation order
		query = `SELECT seq, input, value, err FROM (
			SELECT seq, input, value, err FROM transcript ORDER BY seq DESC LIMIT ?
		) ORDER BY seq`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Input, &e.Value, &e.Err); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Len returns the number of recorded entries.
func (s *SQLite) Len() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM transcript").Scan(&n)
	return n, err
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
