// SPDX-License-Identifier: AGPL-3.0-or-later

// Package eval implements the fifth evaluation engine: the compiler that
// turns lexemes into executable tokens and the stack machine that runs them.
package eval

import (
	"io"
	"strings"

	"skookum.dev/fifth/internal/dict"
	"skookum.dev/fifth/internal/scanner"
)

// Session holds the state shared by the compiler and the stack machine: the
// dictionary of user definitions and the numeric stack. One Session serves
// one interactive session, created empty and discarded at session end; it is
// single-threaded by design and every Eval call transforms it atomically.
type Session struct {
	dict  *dict.Dict
	stack []float64
	out   io.Writer
}

// Option configures a Session.
type Option func(*Session)

// WithOutput sets the writer for character output (emit, cr, ".", ".s").
// Without it the session stays silent.
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// New creates an empty session.
func New(opts ...Option) *Session {
	s := &Session{dict: dict.New()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of an Eval call: the last value the call produced,
// if it produced any.
type Result struct {
	Value float64
	OK    bool
}

// String renders the result value, or "" when the call produced none.
func (r Result) String() string {
	if !r.OK {
		return ""
	}
	return FormatValue(r.Value)
}

// Eval evaluates one line of input against the session. An empty or
// all-whitespace line succeeds with no value and no mutation. Any error
// aborts the call immediately; mutations committed by earlier tokens of the
// same line remain.
func (s *Session) Eval(line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Result{}, nil
	}
	lexemes := scanner.Lex(line)
	tokens, err := compile(lexemes, s.dict)
	if err != nil {
		return Result{}, err
	}
	return s.run(tokens)
}

// Stack returns a snapshot of the numeric stack, bottom first.
func (s *Session) Stack() []float64 {
	out := make([]float64, len(s.stack))
	copy(out, s.stack)
	return out
}

// Dict returns the session dictionary.
func (s *Session) Dict() *dict.Dict {
	return s.dict
}

// SetOutput changes the character output writer.
func (s *Session) SetOutput(w io.Writer) {
	s.out = w
}
