package eval

import (
	"skookum.dev/fifth/internal/dict"
	"skookum.dev/fifth/internal/token"
)

// compile turns a lexeme sequence into the top-level tokens to execute,
// installing a dictionary entry for every definition block it closes.
//
// Outside a definition block, a lexeme becomes a Number, Operator or Builtin
// if it parses as one, and otherwise a Word to be resolved lazily at
// evaluation time. The ":" lexeme opens a capture that runs to the matching
// ";"; captured references are resolved immediately against the current
// dictionary, so the stored body is immune to later redefinition of the
// names it used (snapshot semantics).
func compile(lexemes []string, d *dict.Dict) ([]token.Token, error) {
	var out []token.Token
	for i := 0; i < len(lexemes); i++ {
		lex := lexemes[i]
		if lex == ":" {
			consumed, err := compileDefinition(lexemes[i+1:], d)
			if err != nil {
				return nil, err
			}
			i += consumed
			continue
		}
		if v, ok := token.ParseNumber(lex); ok {
			out = append(out, token.Num(v))
		} else if op, ok := token.ParseOp(lex); ok {
			out = append(out, token.Sym(op))
		} else if p, ok := token.ParsePrim(lex); ok {
			out = append(out, token.Primitive(p))
		} else {
			out = append(out, token.Ref(lex))
		}
	}
	return out, nil
}

// compileDefinition consumes a definition block opened by ":" whose lexemes
// follow in rest. It returns how many lexemes it consumed, including the
// closing ";". No partial definition is installed on error.
func compileDefinition(rest []string, d *dict.Dict) (int, error) {
	end := -1
	for j, lex := range rest {
		if lex == ";" {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, ErrUnterminated
	}
	if end == 0 {
		return 0, InvalidWordError{Detail: "definition has no name"}
	}

	name := rest[0]
	if _, ok := token.ParseNumber(name); ok {
		return 0, InvalidWordError{Detail: "cannot name a definition " + name}
	}

	body := make([]token.Token, 0, end-1)
	for _, lex := range rest[1:end] {
		t, err := resolve(lex, d)
		if err != nil {
			return 0, err
		}
		body = append(body, t)
	}

	d.Define(name, token.Def(body))
	return end + 1, nil
}

// resolve binds a lexeme inside a definition body to a concrete token at
// definition-close time. Dictionary entries take precedence over builtins
// and operators, so a word may capture its own previous meaning. A lexeme
// that resolves to nothing is an error: no unresolved Word may survive into
// a stored body.
func resolve(lex string, d *dict.Dict) (token.Token, error) {
	if v, ok := token.ParseNumber(lex); ok {
		return token.Num(v), nil
	}
	if t, ok := d.Lookup(lex); ok {
		return t, nil
	}
	if op, ok := token.ParseOp(lex); ok {
		return token.Sym(op), nil
	}
	if p, ok := token.ParsePrim(lex); ok {
		return token.Primitive(p), nil
	}
	return token.Token{}, UnknownWordError{Name: lex}
}
