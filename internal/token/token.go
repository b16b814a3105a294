// SPDX-License-Identifier: AGPL-3.0-or-later

// Package token defines the fifth token model: numbers, arithmetic
// operators, named builtins, lazy word references and resolved definitions.
package token

import (
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Token.
type Kind int

const (
	Number Kind = iota
	Operator
	Builtin
	Word
	Definition
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Number:
		return "NUMBER"
	case Operator:
		return "OPERATOR"
	case Builtin:
		return "BUILTIN"
	case Word:
		return "WORD"
	case Definition:
		return "DEFINITION"
	}
	return "UNKNOWN"
}

// Op is one of the four arithmetic operators.
type Op int

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
)

// Symbol returns the source symbol for an operator.
func (o Op) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return "?"
}

// ParseOp parses an arithmetic symbol. Returns false if the lexeme is not
// one of "+", "-", "*", "/".
func ParseOp(lexeme string) (Op, bool) {
	switch lexeme {
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "*":
		return Multiply, true
	case "/":
		return Divide, true
	}
	return 0, false
}

// Prim is a fixed named primitive recognized independently of the dictionary.
type Prim int

const (
	Drop Prim = iota
	Dup
	Swap
	Over
	Rot
	TwoDrop
	TwoDup
	TwoOver
	TwoSwap
	Emit
	CR
	Space
	Spaces
	Display // .
	Show    // .s
	Bye     // bye / quit
	Mod
	SlashMod // /mod
)

// Name returns the canonical (lower-case) source name of a primitive.
func (p Prim) Name() string {
	switch p {
	case Drop:
		return "drop"
	case Dup:
		return "dup"
	case Swap:
		return "swap"
	case Over:
		return "over"
	case Rot:
		return "rot"
	case TwoDrop:
		return "2drop"
	case TwoDup:
		return "2dup"
	case TwoOver:
		return "2over"
	case TwoSwap:
		return "2swap"
	case Emit:
		return "emit"
	case CR:
		return "cr"
	case Space:
		return "space"
	case Spaces:
		return "spaces"
	case Display:
		return "."
	case Show:
		return ".s"
	case Bye:
		return "bye"
	case Mod:
		return "mod"
	case SlashMod:
		return "/mod"
	}
	return "?"
}

// ParsePrim parses a builtin name. Names are matched case-insensitively;
// "quit" is an alias for "bye".
func ParsePrim(lexeme string) (Prim, bool) {
	switch strings.ToLower(lexeme) {
	case "drop":
		return Drop, true
	case "dup":
		return Dup, true
	case "swap":
		return Swap, true
	case "over":
		return Over, true
	case "rot":
		return Rot, true
	case "2drop":
		return TwoDrop, true
	case "2dup":
		return TwoDup, true
	case "2over":
		return TwoOver, true
	case "2swap":
		return TwoSwap, true
	case "emit":
		return Emit, true
	case "cr":
		return CR, true
	case "space":
		return Space, true
	case "spaces":
		return Spaces, true
	case ".":
		return Display, true
	case ".s":
		return Show, true
	case "bye", "quit":
		return Bye, true
	case "mod":
		return Mod, true
	case "/mod":
		return SlashMod, true
	}
	return 0, false
}

// Token is a tagged variant. Only the fields belonging to its Kind are
// meaningful; the zero Token is Number(0).
type Token struct {
	Kind Kind

	Num  float64 // Number
	Op   Op      // Operator
	Prim Prim    // Builtin
	Name string  // Word
	Body []Token // Definition
}

// Num makes a Number token.
func Num(v float64) Token { return Token{Kind: Number, Num: v} }

// Sym makes an Operator token.
func Sym(o Op) Token { return Token{Kind: Operator, Op: o} }

// Primitive makes a Builtin token.
func Primitive(p Prim) Token { return Token{Kind: Builtin, Prim: p} }

// Ref makes an unresolved Word token.
func Ref(name string) Token { return Token{Kind: Word, Name: name} }

// Def makes a resolved Definition token. The body must not contain Word
// tokens; the compiler enforces this when a definition block closes.
func Def(body []Token) Token { return Token{Kind: Definition, Body: body} }

// Literal reports whether the token is a number, or a definition whose body
// is a single number. Single-number definitions act as variables: invoking
// them produces the stored value.
func (t Token) Literal() (float64, bool) {
	if t.Kind == Number {
		return t.Num, true
	}
	if t.Kind == Definition && len(t.Body) == 1 && t.Body[0].Kind == Number {
		return t.Body[0].Num, true
	}
	return 0, false
}

// String returns a source-like rendering, used in diagnostics and tests.
func (t Token) String() string {
	switch t.Kind {
	case Number:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case Operator:
		return t.Op.Symbol()
	case Builtin:
		return t.Prim.Name()
	case Word:
		return t.Name
	case Definition:
		parts := make([]string, len(t.Body))
		for i, b := range t.Body {
			parts[i] = b.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return "?"
}

// ParseNumber parses a lexeme as a 64-bit float literal.
func ParseNumber(lexeme string) (float64, bool) {
	v, err := strconv.ParseFloat(lexeme, 64)
	return v, err == nil
}
