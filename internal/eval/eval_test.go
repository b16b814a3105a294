package eval

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

// evalAll evaluates setup lines, failing the test on any error.
func evalAll(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := s.Eval(line); err != nil {
			t.Fatalf("Eval(%q): unexpected error: %v", line, err)
		}
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5 6 +", 11},
		{"5 6 -", -1},
		{"4 2.5 *", 10},
		{"7 2 /", 3.5},
		{"1 2 3 + +", 6},
		{"10 2 - 3 -", 5},
		{"-2 -3 *", 6},
		{"7 3 mod", 1},
		{"-7 3 mod", math.Mod(-7, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := New()
			res, err := s.Eval(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !res.OK || res.Value != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.input, res, tt.want)
			}
		})
	}
}

func TestPopOrder(t *testing.T) {
	// the second operand is nearer the top
	s := New()
	res, err := s.Eval("1 10 -")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Value != -9 {
		t.Errorf("1 10 - = %v, want -9", res.Value)
	}
}

func TestSlashMod(t *testing.T) {
	s := New()
	res, err := s.Eval("7 2 /mod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || res.Value != 3.5 {
		t.Errorf("result = %v, want 3.5", res)
	}
	want := []float64{1, 3.5} // remainder below the quotient
	if got := s.Stack(); !reflect.DeepEqual(got, want) {
		t.Errorf("stack = %v, want %v", got, want)
	}
}

func TestStackManipulation(t *testing.T) {
	tests := []struct {
		input string
		want  []float64
	}{
		{"1 drop", []float64{}},
		{"1 dup", []float64{1, 1}},
		{"1 2 swap", []float64{2, 1}},
		{"1 2 over", []float64{1, 2, 1}},
		{"1 2 3 rot", []float64{2, 3, 1}},
		{"1 2 2drop", []float64{}},
		{"1 2 2dup", []float64{1, 2, 1, 2}},
		{"1 2 3 4 2over", []float64{1, 2, 3, 4, 1, 2}},
		{"1 2 3 4 2swap", []float64{3, 4, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := New()
			if _, err := s.Eval(tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := s.Stack(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("stack = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaseInsensitive(t *testing.T) {
	for _, input := range []string{"DUP", "Dup", "dup"} {
		s := New()
		evalAll(t, s, "3")
		if _, err := s.Eval(input); err != nil {
			t.Fatalf("Eval(%q): unexpected error: %v", input, err)
		}
		if got := s.Stack(); !reflect.DeepEqual(got, []float64{3, 3}) {
			t.Errorf("Eval(%q): stack = %v", input, got)
		}
	}
}

func TestIdempotence(t *testing.T) {
	a, b := New(), New()
	evalAll(t, a, "1 dup drop")
	evalAll(t, b, "1")
	if !reflect.DeepEqual(a.Stack(), b.Stack()) {
		t.Errorf("1 dup drop left %v, 1 left %v", a.Stack(), b.Stack())
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, input := range []string{"1 0 /", "1 0 mod", "1 0 /mod"} {
		s := New()
		_, err := s.Eval(input)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("Eval(%q) error = %v, want division by zero", input, err)
		}
		// the failing operation leaves its operands untouched
		if got := s.Stack(); !reflect.DeepEqual(got, []float64{1, 0}) {
			t.Errorf("Eval(%q): stack = %v, want [1 0]", input, got)
		}
	}
}

func TestUnderflow(t *testing.T) {
	tests := []struct {
		input     string
		remaining []float64
	}{
		{"dup", []float64{}},
		{"drop", []float64{}},
		{"+", []float64{}},
		{"1 +", []float64{1}},
		{"1 swap", []float64{1}},
		{"1 2 rot", []float64{1, 2}},
		{"1 2 3 2over", []float64{1, 2, 3}},
		{"1 2 3 2swap", []float64{1, 2, 3}},
		{"emit", []float64{}},
		{"spaces", []float64{}},
		{".", []float64{}},
		{"1 /mod", []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := New()
			_, err := s.Eval(tt.input)
			if !errors.Is(err, ErrStackUnderflow) {
				t.Fatalf("Eval(%q) error = %v, want stack underflow", tt.input, err)
			}
			// no partial mutation: elements pushed earlier in the call remain
			if got := s.Stack(); !reflect.DeepEqual(got, tt.remaining) {
				t.Errorf("Eval(%q): stack = %v, want %v", tt.input, got, tt.remaining)
			}
		})
	}
}

func TestUnknownWord(t *testing.T) {
	s := New()
	_, err := s.Eval("1 foo")
	if !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("error = %v, want unknown word", err)
	}
	var uw UnknownWordError
	if !errors.As(err, &uw) || uw.Name != "foo" {
		t.Errorf("error = %#v, want UnknownWordError{foo}", err)
	}
	// mutations committed before the failing token remain
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{1}) {
		t.Errorf("stack = %v, want [1]", got)
	}
}

func TestCommittedMutationsSurviveError(t *testing.T) {
	s := New()
	_, err := s.Eval("1 2 + foo")
	if !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("error = %v, want unknown word", err)
	}
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{3}) {
		t.Errorf("stack = %v, want [3]", got)
	}
}

func TestDefinitions(t *testing.T) {
	s := New()
	evalAll(t, s, ": double dup + ;")
	res, err := s.Eval("5 double")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// a procedure contributes no top-level value; the last one is the 5
	if !res.OK || res.Value != 5 {
		t.Errorf("result = %v, want 5", res)
	}
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("stack = %v, want [10]", got)
	}
}

func TestSingleLiteralDefinitionActsAsVariable(t *testing.T) {
	s := New()
	evalAll(t, s, ": answer 42 ;")
	res, err := s.Eval("answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || res.Value != 42 {
		t.Errorf("result = %v, want 42", res)
	}
}

func TestSnapshotLaw(t *testing.T) {
	s := New()
	evalAll(t, s,
		": foo 5 ;",
		": bar foo ;",
		": foo 6 ;",
	)
	evalAll(t, s, "bar foo")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{5, 6}) {
		t.Errorf("stack = %v, want [5 6]", got)
	}
}

func TestSelfReferenceLaw(t *testing.T) {
	s := New()
	evalAll(t, s,
		": foo 10 ;",
		": foo foo 1 + ;",
	)
	evalAll(t, s, "foo")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{11}) {
		t.Errorf("stack = %v, want [11]", got)
	}
}

func TestDictShadowsBuiltinInsideBodies(t *testing.T) {
	s := New()
	evalAll(t, s,
		": drop 7 ;",
		": d drop ;",
	)
	// inside a body the dictionary wins over the builtin...
	evalAll(t, s, "d")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{7}) {
		t.Fatalf("stack = %v, want [7]", got)
	}
	// ...while a top-level lexeme still compiles to the builtin
	evalAll(t, s, "drop")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{}) {
		t.Errorf("stack = %v, want empty", got)
	}
}

func TestLazyTopLevelResolution(t *testing.T) {
	// a top-level word is resolved when it runs, after the same line's
	// definition block has been installed
	s := New()
	evalAll(t, s, "bump : bump 1 ;")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{1}) {
		t.Errorf("stack = %v, want [1]", got)
	}
}

func TestUnterminated(t *testing.T) {
	for _, input := range []string{":", ": foo", ": foo 1"} {
		s := New()
		_, err := s.Eval(input)
		if !errors.Is(err, ErrUnterminated) {
			t.Errorf("Eval(%q) error = %v, want unterminated", input, err)
		}
		if s.Dict().Len() != 0 {
			t.Errorf("Eval(%q) installed a partial definition", input)
		}
	}
}

func TestInvalidWord(t *testing.T) {
	for _, input := range []string{": 1 2 ;", ": -2.5 dup ;", ": ;"} {
		s := New()
		_, err := s.Eval(input)
		if !errors.Is(err, ErrInvalidWord) {
			t.Errorf("Eval(%q) error = %v, want invalid word", input, err)
		}
	}
}

func TestUnknownWordInBody(t *testing.T) {
	s := New()
	_, err := s.Eval(": foo baz ;")
	if !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("error = %v, want unknown word", err)
	}
	if _, ok := s.Dict().Lookup("foo"); ok {
		t.Error("failed definition was installed")
	}
}

func TestEmptyLine(t *testing.T) {
	s := New()
	evalAll(t, s, "1 2")
	for _, input := range []string{"", "   ", "\t"} {
		res, err := s.Eval(input)
		if err != nil || res.OK {
			t.Errorf("Eval(%q) = %v, %v, want no value, no error", input, res, err)
		}
	}
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf("blank lines mutated the stack: %v", got)
	}
}

func TestQuit(t *testing.T) {
	for _, input := range []string{"bye", "QUIT", "1 2 quit"} {
		s := New()
		_, err := s.Eval(input)
		if !errors.Is(err, ErrQuit) {
			t.Errorf("Eval(%q) error = %v, want quit signal", input, err)
		}
	}
}

func TestCharacterOutput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"72 emit", "H"},
		{"cr", "\n"},
		{"space", " "},
		{"3 spaces", "   "},
		{"-2 spaces", ""},
		{"42 .", "42"},
		{"3.5 .", "3.5"},
		{"1 2 .s", "<2> 1 2"},
		{".s", "<0>"},
		{"72 emit 105 emit cr", "Hi\n"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			s := New(WithOutput(&out))
			if _, err := s.Eval(tt.input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestShowIsNonDestructive(t *testing.T) {
	var out bytes.Buffer
	s := New(WithOutput(&out))
	evalAll(t, s, "1 2 .s")
	if got := s.Stack(); !reflect.DeepEqual(got, []float64{1, 2}) {
		t.Errorf(".s mutated the stack: %v", got)
	}
}

func TestOutputInsideDefinition(t *testing.T) {
	var out bytes.Buffer
	s := New(WithOutput(&out))
	evalAll(t, s, ": star 42 emit ;", "star star")
	if out.String() != "**" {
		t.Errorf("output = %q, want \"**\"", out.String())
	}
}

func TestResultString(t *testing.T) {
	if got := (Result{Value: 11, OK: true}).String(); got != "11" {
		t.Errorf("Result.String() = %q, want \"11\"", got)
	}
	if got := (Result{}).String(); got != "" {
		t.Errorf("empty Result.String() = %q", got)
	}
}
