package fifth

import (
	"bufio"
	"errors"
	"io"
	"os"

	"skookum.dev/fifth/internal/eval"
	"skookum.dev/fifth/internal/journal"
)

// Result is the outcome of evaluating a line: the last value the line
// produced, if any.
type Result = eval.Result

// ErrQuit is the control signal raised by the bye/quit builtin. It is not a
// failure; loop drivers stop on it and report nothing.
var ErrQuit = eval.ErrQuit

// Runtime is the fifth interpreter runtime: one evaluation session plus its
// transcript journal.
type Runtime struct {
	session *eval.Session
	journal journal.Store
	out     io.Writer
}

// New creates a new runtime with the given options. Without options the
// runtime writes character output to stdout and journals in memory.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.journal == nil {
		r.journal = journal.NewMemory()
	}
	r.session = eval.New(eval.WithOutput(r.out))
	return r
}

// Eval evaluates one line and records it in the journal.
func (r *Runtime) Eval(line string) (Result, error) {
	res, err := r.session.Eval(line)
	entry := journal.Entry{Input: line, Value: res.String()}
	if err != nil && !errors.Is(err, ErrQuit) {
		entry.Err = err.Error()
	}
	r.journal.Append(entry)
	return res, err
}

// EvalReader evaluates input line by line. It stops cleanly on end of input
// or on the quit signal, returning the outcome of the last evaluated line;
// any other error aborts the remaining lines.
func (r *Runtime) EvalReader(reader io.Reader) (Result, error) {
	var last Result
	sc := bufio.NewScanner(reader)
	for sc.Scan() {
		res, err := r.Eval(sc.Text())
		if errors.Is(err, ErrQuit) {
			return last, nil
		}
		if err != nil {
			return Result{}, err
		}
		if res.OK {
			last = res
		}
	}
	return last, sc.Err()
}

// EvalFile evaluates a script file line by line.
func (r *Runtime) EvalFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return r.EvalReader(f)
}

// Stack returns a snapshot of the numeric stack, bottom first.
func (r *Runtime) Stack() []float64 {
	return r.session.Stack()
}

// Journal returns the session transcript store.
func (r *Runtime) Journal() journal.Store {
	return r.journal
}

// SetOutput changes the character output writer.
func (r *Runtime) SetOutput(w io.Writer) {
	r.out = w
	r.session.SetOutput(w)
}

// Close releases the journal.
func (r *Runtime) Close() error {
	return r.journal.Close()
}
