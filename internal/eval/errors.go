package eval

import (
	"errors"
	"fmt"
)

// Sentinel errors for the evaluator. Callers match them with errors.Is; the
// structured kinds below additionally carry detail reachable via errors.As.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUnknownWord    = errors.New("unknown word")
	ErrInvalidWord    = errors.New("invalid word")
	ErrUnterminated   = errors.New("unterminated definition")

	// ErrQuit is not a failure: it is the cooperative signal raised by the
	// bye/quit builtin, consumed by the console driver to end its read loop.
	ErrQuit = errors.New("quit")
)

// UnknownWordError reports a reference to a name that is neither defined,
// a builtin, nor an operator.
type UnknownWordError struct {
	Name string
}

func (e UnknownWordError) Error() string {
	return fmt.Sprintf("unknown word %q", e.Name)
}

// Is makes the error match ErrUnknownWord.
func (e UnknownWordError) Is(target error) bool {
	return target == ErrUnknownWord
}

// InvalidWordError reports a malformed definition, such as naming a
// definition after a numeric literal.
type InvalidWordError struct {
	Detail string
}

func (e InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word: %s", e.Detail)
}

// Is makes the error match ErrInvalidWord.
func (e InvalidWordError) Is(target error) bool {
	return target == ErrInvalidWord
}
