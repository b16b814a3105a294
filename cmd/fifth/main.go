// Command fifth is an interactive evaluator for a small Forth-style
// stack language.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"skookum.dev/fifth/pkg/fifth"
)

func main() {
	var (
		evalStr = flag.String("e", "", "Evaluate one line and exit")
		file    = flag.String("f", "", "Execute a script file line by line")
		quiet   = flag.Bool("q", false, "Suppress the REPL banner")
	)
	flag.Parse()

	rt := fifth.New(
		fifth.WithOutput(os.Stdout),
		// The transcript backs arrow-key history and never touches disk.
		fifth.WithSQLiteJournal(":memory:"),
	)
	defer rt.Close()

	switch {
	case *evalStr != "":
		res, err := rt.Eval(*evalStr)
		report(os.Stdout, res, err)
		if err != nil && !errors.Is(err, fifth.ErrQuit) {
			os.Exit(1)
		}

	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		runLines(rt, f, os.Stdout)

	case !isatty.IsTerminal(os.Stdin.Fd()):
		runLines(rt, os.Stdin, os.Stdout)

	default:
		runREPL(rt, *quiet)
	}
}

// runLines evaluates non-interactive input one line at a time, reporting
// each outcome. The loop ends at end of input or on the quit signal.
func runLines(rt *fifth.Runtime, in io.Reader, out io.Writer) {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		res, err := rt.Eval(sc.Text())
		if report(out, res, err) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

// report prints the outcome of one evaluated line: "<value> Ok" when the
// line produced a value, " Ok" when it produced none, "? Error: <message>"
// on failure. It returns true when the quit signal ends the session.
func report(w io.Writer, res fifth.Result, err error) bool {
	if err != nil {
		if errors.Is(err, fifth.ErrQuit) {
			return true
		}
		fmt.Fprintf(w, "? Error: %v\n", err)
		return false
	}
	if res.OK {
		fmt.Fprintf(w, "%s Ok\n", res)
	} else {
		fmt.Fprintln(w, " Ok")
	}
	return false
}
