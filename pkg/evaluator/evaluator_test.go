package evaluator

import (
	"math"
	"strings"
	"testing"

	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

func TestEvaluateString(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2+2", "4"},
		{"5!", "120"},
		{"0!", "1"},
		{"2**3!", "64"},
		{"-3!", "-6"},
		{"sqrt(16)", "4.0"},
		{"7/2", "3.5"},
		{"4/2", "2.0"},
		{"7%3", "1"},
		{"-7%3", "2"},
		{"7%-3", "-2"},
		{"7.5%2", "1.5"},
		{"-2**2", "-4"},
		{"2**-1", "0.5"},
		{"2**3**2", "512"},
		{"2**100", "1267650600228229401496703205376"},
		{"(-8)**(1/3*3)", "-8.0"},
		{"abs(-5)", "5"},
		{"abs(-2.5)", "2.5"},
		{"factorial(6)", "720"},
		{"min(3, 1.5, 2)", "1.5"},
		{"max(1, 4, 4.0)", "4"},
		{"round(2.5)", "2"},
		{"round(3.5)", "4"},
		{"round(2.675, 2)", "2.67"},
		{"round(1234, -2)", "1200"},
		{"round(1250, -2)", "1200"},
		{"round(1350, -2)", "1400"},
		{"round(7, 3)", "7"},
		{"log(1)", "0.0"},
		{"log(1, 10)", "0.0"},
		{"log10(1000)", "3.0"},
		{"log2(1024)", "10.0"},
		{"exp(0)", "1.0"},
		{"cbrt(27)", "3.0"},
		{"cbrt(-8)", "-2.0"},
		{"cos(0)", "1.0"},
		{"atan(0)", "0.0"},
		{"1e3", "1000.0"},
		{"0.1+0.2", "0.30000000000000004"},
		{"1e16*1", "1e+16"},
		{"1/100000", "1e-05"},
		{"1/10000", "0.0001"},
		{"3.141592653589793*2", "6.283185307179586"},
	}
	for _, c := range cases {
		got, err := EvaluateString(c.input)
		if err != nil {
			t.Errorf("EvaluateString(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("EvaluateString(%q) = %s, want %s", c.input, got.String(), c.want)
		}
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		input string
		kind  locerr.Kind
	}{
		{"1/0", locerr.KindArithmetic},
		{"1.0/0", locerr.KindArithmetic},
		{"5%0", locerr.KindArithmetic},
		{"5.5%0.0", locerr.KindArithmetic},
		{"0**-1", locerr.KindArithmetic},
		{"10.0**400", locerr.KindArithmetic},
		{"exp(1000)", locerr.KindArithmetic},
		{"2**1000000", locerr.KindArithmetic},
		{"4**4611686018427387904", locerr.KindArithmetic},
		{"(-3)**9223372036854775807", locerr.KindArithmetic},
		{"7**123456789012345678901234567890", locerr.KindArithmetic},
		{"2**65536", locerr.KindArithmetic},
		{"factorial(100000)", locerr.KindArithmetic},
		{"1e999", locerr.KindArithmetic},
		{"sqrt(-1)", locerr.KindDomain},
		{"log(0)", locerr.KindDomain},
		{"log(-1)", locerr.KindDomain},
		{"log10(0)", locerr.KindDomain},
		{"log2(-2)", locerr.KindDomain},
		{"asin(2)", locerr.KindDomain},
		{"acos(-1.5)", locerr.KindDomain},
		{"(-8)**(1/3)", locerr.KindDomain},
		{"factorial(-1)", locerr.KindDomain},
		{"factorial(2.5)", locerr.KindDomain},
		{"round(1.5, 0.5)", locerr.KindDomain},
		{"log(10, 1)", locerr.KindArithmetic},
		{"__import__('os')", locerr.KindName},
		{"os", locerr.KindName},
		{"(2+3)!", locerr.KindSyntax},
		{"2+*3", locerr.KindSyntax},
	}
	for _, c := range cases {
		_, err := EvaluateString(c.input)
		if err == nil {
			t.Errorf("EvaluateString(%q) expected error", c.input)
			continue
		}
		if !locerr.IsKind(err, c.kind) {
			t.Errorf("EvaluateString(%q) = %v, want kind %s", c.input, err, c.kind)
		}
	}
}

func TestEvaluateWithVariables(t *testing.T) {
	node, err := parser.Parse("x**2 + 1", parser.WithVariables("x"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := Evaluate(node, Vars{"x": 3})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got.String() != "10.0" {
		t.Fatalf("expected 10.0, got %s", got)
	}

	if _, err := Evaluate(node, nil); !locerr.IsKind(err, locerr.KindName) {
		t.Fatalf("expected NameError for unbound x, got %v", err)
	}
}

func TestHugeIntegerLog(t *testing.T) {
	got, err := EvaluateString("log10(10**400)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, _ := got.Float64()
	if math.Abs(f-400) > 1e-9 {
		t.Fatalf("expected 400, got %v", f)
	}
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4.0"},
		{-0.5, "-0.5"},
		{0.1, "0.1"},
		{1234567, "1234567.0"},
		{1e16, "1e+16"},
		{1.5e-5, "1.5e-05"},
		{0.0001, "0.0001"},
		{math.Copysign(0, -1), "-0.0"},
		{math.Inf(1), "inf"},
	}
	for _, c := range cases {
		if got := FormatFloat(c.in); got != c.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRoundFloat(t *testing.T) {
	cases := []struct {
		in     float64
		digits int
		want   float64
	}{
		{1.0 / 3, 10, 0.3333333333},
		{2.0 / 3, 2, 0.67},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{1234.5678, -2, 1200},
		{5, 3, 5},
	}
	for _, c := range cases {
		got, err := RoundFloat(c.in, c.digits)
		if err != nil {
			t.Errorf("RoundFloat(%v, %d) error: %v", c.in, c.digits, err)
			continue
		}
		if got != c.want {
			t.Errorf("RoundFloat(%v, %d) = %v, want %v", c.in, c.digits, got, c.want)
		}
	}
}

func TestIntegerLiteralsStayExact(t *testing.T) {
	got, err := EvaluateString("25!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsInt() || got.String() != "15511210043330985984000000" {
		t.Fatalf("unexpected 25! = %s", got)
	}
	if strings.Contains(got.String(), "e") {
		t.Fatalf("integer result must not use exponent form")
	}
}

func TestCompileFoldsConstantSubtrees(t *testing.T) {
	calls := 0
	original := builtins["factorial"]
	builtins["factorial"] = func(args []Number) (Number, error) {
		calls++
		return original(args)
	}
	t.Cleanup(func() { builtins["factorial"] = original })

	node, err := parser.Parse("factorial(5) + sin(x) * factorial(3)", parser.WithVariables("x"))
	if err != nil {
		t.Fatal(err)
	}
	compiled := Compile(node)
	if compiled.IsConstant() {
		t.Fatalf("expression depends on x")
	}
	for i := 0; i < 100; i++ {
		x := float64(i) / 10
		got, err := compiled.Evaluate(Vars{"x": x})
		if err != nil {
			t.Fatalf("x=%g: %v", x, err)
		}
		want, _ := Evaluate(node, Vars{"x": x})
		if got.String() != want.String() {
			t.Fatalf("x=%g: expected %s, got %s", x, want, got)
		}
	}
	// два вызова при компиляции и ещё два в проверочных Evaluate на каждой точке
	if calls != 2+2*100 {
		t.Fatalf("factorial must be folded at compile time, got %d calls", calls)
	}
}

func TestCompileKeepsErrors(t *testing.T) {
	cases := []struct {
		input string
		kind  locerr.Kind
	}{
		{"sqrt(-1) + x", locerr.KindDomain},
		{"x / 0", locerr.KindArithmetic},
		{"4**4611686018427387904 + x", locerr.KindArithmetic},
	}
	for _, c := range cases {
		node, err := parser.Parse(c.input, parser.WithVariables("x"))
		if err != nil {
			t.Fatalf("%s: %v", c.input, err)
		}
		_, err = Compile(node).Evaluate(Vars{"x": 1})
		if !locerr.IsKind(err, c.kind) {
			t.Errorf("%s: expected %s, got %v", c.input, c.kind, err)
		}
	}
}
