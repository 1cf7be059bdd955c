package expression_parser

import (
	"errors"
	"testing"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

func TestParseTree(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2+2", "(2 + 2)"},
		{"1+2*3", "(1 + (2 * 3))"},
		{"(1+2)*3", "((1 + 2) * 3)"},
		{"10-4-3", "((10 - 4) - 3)"},
		{"8/4/2", "((8 / 4) / 2)"},
		{"7%3*2", "((7 % 3) * 2)"},
		{"2**3**2", "(2 ** (3 ** 2))"},
		{"-2**2", "(-(2 ** 2))"},
		{"2**-1", "(2 ** (-1))"},
		{"--3", "(-(-3))"},
		{"+4", "(+4)"},
		{"5!", "5!"},
		{"-3!", "(-3!)"},
		{"2**3!", "(2 ** 3!)"},
		{"sin(pi/2)", "sin((pi / 2))"},
		{"max(1, 2, 3)", "max(1, 2, 3)"},
		{"log(8, 2)", "log(8, 2)"},
		{" 1.5e3 + .5 ", "(1.5e3 + .5)"},
		{"5.", "5."},
		{"00", "00"},
		{"3.141592653589793*2", "(3.141592653589793 * 2)"},
	}
	for _, c := range cases {
		node, err := Parse(c.input)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got := node.String(); got != c.want {
			t.Errorf("Parse(%q) = %s, want %s", c.input, got, c.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		input string
		kind  locerr.Kind
	}{
		{"", locerr.KindSyntax},
		{"   ", locerr.KindSyntax},
		{"2+", locerr.KindSyntax},
		{"(2+3", locerr.KindSyntax},
		{"2+3)", locerr.KindSyntax},
		{"2 3", locerr.KindSyntax},
		{"2//3", locerr.KindSyntax},
		{"05", locerr.KindSyntax},
		{"1e", locerr.KindSyntax},
		{"2x", locerr.KindSyntax},
		{"(2+3)!", locerr.KindSyntax},
		{"(5)!", locerr.KindSyntax},
		{"2.5!", locerr.KindSyntax},
		{"3!!", locerr.KindSyntax},
		{"sin", locerr.KindSyntax},
		{"pi(2)", locerr.KindSyntax},
		{"sin(1, 2)", locerr.KindSyntax},
		{"max(1)", locerr.KindSyntax},
		{"round()", locerr.KindSyntax},
		{"1 = 1", locerr.KindSyntax},
		{"[1]", locerr.KindSyntax},
		{"pi.real", locerr.KindSyntax},
		{"x + 1", locerr.KindName},
		{"__import__('os')", locerr.KindName},
		{"os.system('ls')", locerr.KindName},
		{"eval(1)", locerr.KindName},
		{"2 + open", locerr.KindName},
	}
	for _, c := range cases {
		_, err := Parse(c.input)
		if err == nil {
			t.Errorf("Parse(%q) expected error", c.input)
			continue
		}
		var ee *locerr.EvalError
		if !errors.As(err, &ee) {
			t.Errorf("Parse(%q) error %v is not an EvalError", c.input, err)
			continue
		}
		if ee.Kind != c.kind {
			t.Errorf("Parse(%q) kind = %s, want %s (%v)", c.input, ee.Kind, c.kind, err)
		}
	}
}

func TestParseBracketErrors(t *testing.T) {
	_, err := Parse("((1)")
	if !errors.Is(err, locerr.ErrIncorrectBracketPlacement) {
		t.Fatalf("expected bracket error, got %v", err)
	}
	_, err = Parse("")
	if !errors.Is(err, locerr.ErrEmptyExpression) {
		t.Fatalf("expected empty expression error, got %v", err)
	}
}

func TestParseVariables(t *testing.T) {
	node, err := Parse("x**2 + sin(x)", WithVariables("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	vars := 0
	Walk(node, func(n *ExprNode) bool {
		if n.Kind == VariableNode {
			vars++
		}
		return true
	})
	if vars != 2 {
		t.Fatalf("expected 2 variable nodes, got %d", vars)
	}

	if _, err := Parse("y + 1", WithVariables("x")); !locerr.IsKind(err, locerr.KindName) {
		t.Fatalf("expected NameError for y, got %v", err)
	}
	if _, err := Parse("x!", WithVariables("x")); !locerr.IsKind(err, locerr.KindSyntax) {
		t.Fatalf("expected SyntaxError for x!, got %v", err)
	}
	if _, err := Parse("1", WithVariables("pi")); err == nil {
		t.Fatalf("expected error when variable shadows a constant")
	}
}

func TestIsValidParentheses(t *testing.T) {
	cases := map[string]bool{
		"":         true,
		"()":       true,
		"(()())":   true,
		")(":       false,
		"(()":      false,
		"sin(cos(": false,
	}
	for input, want := range cases {
		if got := IsValidParentheses(input); got != want {
			t.Errorf("IsValidParentheses(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNameErrorStopsBeforeRestOfInput(t *testing.T) {
	// Кавычки дальше по строке не должны влиять: имя отклоняется первым
	_, err := Parse("__import__('os').system('rm -rf /')")
	var ee *locerr.EvalError
	if !errors.As(err, &ee) || ee.Kind != locerr.KindName || ee.Pos != 0 {
		t.Fatalf("expected NameError at position 0, got %v", err)
	}
}
