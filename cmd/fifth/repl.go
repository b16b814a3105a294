package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"skookum.dev/fifth/pkg/fifth"
)

const prompt = "> "

// historyLimit caps how many transcript lines the editor offers on the
// up arrow.
const historyLimit = 200

func printBanner() {
	fmt.Println("fifth (Ctrl+D or bye to exit)")
}

// runREPL drives the interactive session. On a real terminal it runs a
// raw-mode line editor with journal-backed history; otherwise it falls back
// to the plain line loop.
func runREPL(rt *fifth.Runtime, quiet bool) {
	if !quiet {
		printBanner()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
		runLines(rt, os.Stdin, os.Stdout)
		return
	}
	defer term.Restore(fd, oldState)

	// In raw mode every newline needs a carriage return, including the ones
	// produced by cr and emit during evaluation.
	out := crlfWriter{os.Stdout}
	rt.SetOutput(out)

	ed := editor{out: out}
	for {
		fmt.Fprint(out, prompt)
		line, eof := ed.readLine(recentInputs(rt))
		if eof {
			fmt.Fprint(out, "\n")
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		res, err := rt.Eval(line)
		if report(out, res, err) {
			return
		}
	}
}

// recentInputs returns the journal's most recent inputs for history, oldest
// first, with consecutive duplicates collapsed.
func recentInputs(rt *fifth.Runtime) []string {
	entries, err := rt.Journal().Recent(historyLimit)
	if err != nil {
		return nil
	}
	var inputs []string
	for _, e := range entries {
		if in := strings.TrimSpace(e.Input); in != "" {
			if len(inputs) == 0 || inputs[len(inputs)-1] != in {
				inputs = append(inputs, in)
			}
		}
	}
	return inputs
}

// editor is a minimal raw-mode line editor: cursor movement, kill keys, and
// up/down history recall.
type editor struct {
	out io.Writer
}

// readLine reads one line in raw mode. It returns the line, and true when
// the session hit end of input (Ctrl+D on an empty line or a read error).
func (ed *editor) readLine(history []string) (string, bool) {
	var line []rune
	cursor := 0
	histIdx := len(history) // one past the end means "editing a fresh line"
	var pending string      // fresh line saved while browsing history
	buf := make([]byte, 1)

	// redraw everything from the cursor to the end of the line, then park
	// the terminal cursor back where it was
	redrawFromCursor := func() {
		fmt.Fprint(ed.out, "\x1b[K")
		fmt.Fprint(ed.out, string(line[cursor:]))
		if n := len(line) - cursor; n > 0 {
			fmt.Fprintf(ed.out, "\x1b[%dD", n)
		}
	}

	replaceLine := func(text string) {
		line = []rune(text)
		cursor = len(line)
		fmt.Fprint(ed.out, "\r\x1b[K"+prompt+text)
	}

	insert := func(r rune) {
		line = append(line[:cursor], append([]rune{r}, line[cursor:]...)...)
		cursor++
		fmt.Fprint(ed.out, string(r))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true
		}

		switch b := buf[0]; b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Fprint(ed.out, "^C\n")
			return "", false

		case 0x0d, 0x0a: // Enter
			fmt.Fprint(ed.out, "\n")
			return string(line), false

		case 0x7f, 0x08: // Backspace
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Fprint(ed.out, "\b")
				redrawFromCursor()
			}

		case 0x01: // Ctrl+A
			if cursor > 0 {
				fmt.Fprintf(ed.out, "\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E
			if cursor < len(line) {
				fmt.Fprintf(ed.out, "\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Fprint(ed.out, "\x1b[K")
			}

		case 0x15: // Ctrl+U
			if cursor > 0 {
				fmt.Fprintf(ed.out, "\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		case 0x1b: // ESC: arrow or delete sequence
			if n, err := os.Stdin.Read(buf); err != nil || n == 0 || buf[0] != '[' {
				continue
			}
			if n, err := os.Stdin.Read(buf); err != nil || n == 0 {
				continue
			}
			switch buf[0] {
			case 'A': // Up: recall older history
				if histIdx > 0 {
					if histIdx == len(history) {
						pending = string(line)
					}
					histIdx--
					replaceLine(history[histIdx])
				}
			case 'B': // Down: recall newer history, then the saved line
				if histIdx < len(history) {
					histIdx++
					if histIdx == len(history) {
						replaceLine(pending)
					} else {
						replaceLine(history[histIdx])
					}
				}
			case 'C':
				if cursor < len(line) {
					cursor++
					fmt.Fprint(ed.out, "\x1b[C")
				}
			case 'D':
				if cursor > 0 {
					cursor--
					fmt.Fprint(ed.out, "\x1b[D")
				}
			case '3': // Delete key: ESC [ 3 ~
				if n, err := os.Stdin.Read(buf); err == nil && n == 1 && buf[0] == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		default:
			if b >= 0x20 && b < 0x7f {
				insert(rune(b))
			}
			// the language is ASCII; other bytes are ignored
		}
	}
}

// crlfWriter rewrites bare newlines to CRLF for raw-mode terminals.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	s := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := c.w.Write([]byte(s)); err != nil {
		return 0, err
	}
	return len(p), nil
}
