package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"skookum.dev/fifth/internal/token"
)

// run executes tokens in order. Each token may produce one value, which is
// pushed before the next token runs; the last produced value becomes the
// call's result. An error aborts the run immediately, leaving mutations
// already committed by earlier tokens in place.
func (s *Session) run(tokens []token.Token) (Result, error) {
	var last Result
	for _, t := range tokens {
		v, ok, err := s.step(t)
		if err != nil {
			return Result{}, err
		}
		if ok {
			s.stack = append(s.stack, v)
			last = Result{Value: v, OK: true}
		}
	}
	return last, nil
}

// runBody executes a resolved definition body. Bodies contain no Word
// tokens, so this recursion is bounded by the nesting depth captured when
// the definition closed.
func (s *Session) runBody(body []token.Token) error {
	for _, t := range body {
		v, ok, err := s.step(t)
		if err != nil {
			return err
		}
		if ok {
			s.stack = append(s.stack, v)
		}
	}
	return nil
}

// step evaluates one token and returns its produced value, if any. The
// caller pushes the value; step itself only pushes for operations whose
// stack effect is wider than one produced value.
func (s *Session) step(t token.Token) (float64, bool, error) {
	switch t.Kind {
	case token.Number:
		return t.Num, true, nil
	case token.Operator:
		return s.applyOp(t.Op)
	case token.Builtin:
		return s.applyPrim(t.Prim)
	case token.Word:
		return s.invoke(t.Name)
	case token.Definition:
		return s.call(t)
	}
	return 0, false, InvalidWordError{Detail: "unexpected " + t.Kind.String() + " token"}
}

// invoke resolves a lazily bound word at evaluation time: dictionary first,
// then builtins and operators.
func (s *Session) invoke(name string) (float64, bool, error) {
	if entry, ok := s.dict.Lookup(name); ok {
		return s.call(entry)
	}
	if p, ok := token.ParsePrim(name); ok {
		return s.applyPrim(p)
	}
	if op, ok := token.ParseOp(name); ok {
		return s.applyOp(op)
	}
	return 0, false, UnknownWordError{Name: name}
}

// call evaluates a dictionary entry. Number entries and single-literal
// definitions act as variables and produce their value; other definitions
// run as procedures, contributing no top-level value of their own.
func (s *Session) call(entry token.Token) (float64, bool, error) {
	if v, ok := entry.Literal(); ok {
		return v, true, nil
	}
	switch entry.Kind {
	case token.Definition:
		return 0, false, s.runBody(entry.Body)
	default:
		return 0, false, InvalidWordError{Detail: "dictionary entry has unexpected " + entry.Kind.String() + " shape"}
	}
}

// applyOp pops two operands and produces the arithmetic result. The divisor
// or second operand b is nearer the top of the stack.
func (s *Session) applyOp(op token.Op) (float64, bool, error) {
	if err := s.need(2); err != nil {
		return 0, false, err
	}
	if op == token.Divide && s.top(0) == 0 {
		return 0, false, ErrDivisionByZero
	}
	a, b, _ := s.pop2()
	switch op {
	case token.Add:
		return a + b, true, nil
	case token.Subtract:
		return a - b, true, nil
	case token.Multiply:
		return a * b, true, nil
	case token.Divide:
		return a / b, true, nil
	}
	return 0, false, InvalidWordError{Detail: "unexpected operator"}
}

// applyPrim executes a builtin. Operand counts are checked before any
// element is removed, so a failing builtin never leaves the stack partially
// mutated.
func (s *Session) applyPrim(p token.Prim) (float64, bool, error) {
	switch p {
	case token.Drop:
		_, err := s.pop1()
		return 0, false, err

	case token.Dup:
		if err := s.need(1); err != nil {
			return 0, false, err
		}
		return s.top(0), true, nil

	case token.Swap:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		n := len(s.stack)
		s.stack[n-2], s.stack[n-1] = s.stack[n-1], s.stack[n-2]
		return 0, false, nil

	case token.Over:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		return s.top(1), true, nil

	case token.Rot:
		if err := s.need(3); err != nil {
			return 0, false, err
		}
		n := len(s.stack)
		a, b, c := s.stack[n-3], s.stack[n-2], s.stack[n-1]
		s.stack[n-3], s.stack[n-2], s.stack[n-1] = b, c, a
		return 0, false, nil

	case token.TwoDrop:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		s.stack = s.stack[:len(s.stack)-2]
		return 0, false, nil

	case token.TwoDup:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		s.stack = append(s.stack, s.top(1), s.top(0))
		return 0, false, nil

	case token.TwoOver:
		if err := s.need(4); err != nil {
			return 0, false, err
		}
		s.stack = append(s.stack, s.top(3), s.top(2))
		return 0, false, nil

	case token.TwoSwap:
		if err := s.need(4); err != nil {
			return 0, false, err
		}
		n := len(s.stack)
		a, b, c, d := s.stack[n-4], s.stack[n-3], s.stack[n-2], s.stack[n-1]
		s.stack[n-4], s.stack[n-3], s.stack[n-2], s.stack[n-1] = c, d, a, b
		return 0, false, nil

	case token.Emit:
		v, err := s.pop1()
		if err != nil {
			return 0, false, err
		}
		s.write(string(rune(int(v))))
		return 0, false, nil

	case token.CR:
		s.write("\n")
		return 0, false, nil

	case token.Space:
		s.write(" ")
		return 0, false, nil

	case token.Spaces:
		v, err := s.pop1()
		if err != nil {
			return 0, false, err
		}
		if n := int(v); n > 0 {
			s.write(strings.Repeat(" ", n))
		}
		return 0, false, nil

	case token.Display:
		v, err := s.pop1()
		if err != nil {
			return 0, false, err
		}
		s.write(FormatValue(v))
		return 0, false, nil

	case token.Show:
		s.write(fmt.Sprintf("<%d>", len(s.stack)))
		for _, v := range s.stack {
			s.write(" " + FormatValue(v))
		}
		return 0, false, nil

	case token.Bye:
		return 0, false, ErrQuit

	case token.Mod:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		if s.top(0) == 0 {
			return 0, false, ErrDivisionByZero
		}
		a, b, _ := s.pop2()
		return math.Mod(a, b), true, nil

	case token.SlashMod:
		if err := s.need(2); err != nil {
			return 0, false, err
		}
		if s.top(0) == 0 {
			return 0, false, ErrDivisionByZero
		}
		a, b, _ := s.pop2()
		s.stack = append(s.stack, math.Mod(a, b))
		return a / b, true, nil
	}
	return 0, false, InvalidWordError{Detail: "unexpected builtin"}
}

// need reports StackUnderflow unless the stack holds at least n elements.
func (s *Session) need(n int) error {
	if len(s.stack) < n {
		return ErrStackUnderflow
	}
	return nil
}

// top returns the element i positions below the top without removing it.
func (s *Session) top(i int) float64 {
	return s.stack[len(s.stack)-1-i]
}

func (s *Session) pop1() (float64, error) {
	if err := s.need(1); err != nil {
		return 0, err
	}
	v := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return v, nil
}

// pop2 removes and returns the top two elements; b is the one popped first.
func (s *Session) pop2() (a, b float64, err error) {
	if err := s.need(2); err != nil {
		return 0, 0, err
	}
	n := len(s.stack)
	a, b = s.stack[n-2], s.stack[n-1]
	s.stack = s.stack[:n-2]
	return a, b, nil
}

// write emits character output through the session writer, halting on the
// first write failure.
func (s *Session) write(text string) {
	if s.out == nil {
		return
	}
	fmt.Fprint(s.out, text)
}

// FormatValue renders a stack value the way the display builtins and the
// console driver print it.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
