// Package symbolic считает производные, первообразные и пределы по x
// с помощью github.com/njchilds90/gosymbol.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/njchilds90/gosymbol"

	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

const Variable = "x"

type Operation string

const (
	Derivative Operation = "derivative"
	Integral   Operation = "integral"
	Limit      Operation = "limit"
)

// Сколько раз подряд применяется правило Лопиталя
const maxLHopital = 5

func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case Derivative, Integral, Limit:
		return op, nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", locerr.ErrUnsupportedSymbolic, s)
}

type Result struct {
	Operation  Operation `json:"operation"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	Summary    string    `json:"summary"`
	LaTeX      string    `json:"latex"`
	Value      *float64  `json:"value,omitempty"`
	expression gosymbol.Expr
}

// Compute выполняет op над expression. point нужен только для предела
func Compute(expression string, op Operation, point string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%w: %v", locerr.ErrUnsupportedSymbolic, r)
		}
	}()

	node, err := parser.Parse(expression, parser.WithVariables(Variable))
	if err != nil {
		return nil, err
	}

	switch op {
	case Derivative:
		return derivative(node)
	case Integral:
		return integral(node)
	case Limit:
		return limit(node, point)
	}
	return nil, fmt.Errorf("%w: unknown operation %q", locerr.ErrUnsupportedSymbolic, op)
}

func derivative(node *parser.ExprNode) (*Result, error) {
	f, err := converter{}.convert(node)
	if err != nil {
		return nil, err
	}
	d := gosymbol.Diff(f, Variable).Simplify()
	return &Result{
		Operation:  Derivative,
		Input:      f.String(),
		Output:     d.String(),
		Summary:    "Derivative of " + f.String() + ": " + d.String(),
		LaTeX:      `\frac{d}{dx}(` + f.LaTeX() + `) = ` + d.LaTeX(),
		expression: d,
	}, nil
}

func integral(node *parser.ExprNode) (*Result, error) {
	f, err := converter{}.convert(node)
	if err != nil {
		return nil, err
	}
	antiderivative, ok := gosymbol.Integrate(f, Variable)
	if !ok {
		return nil, fmt.Errorf("%w: no closed form found for %s", locerr.ErrUnsupportedSymbolic, f)
	}
	return &Result{
		Operation:  Integral,
		Input:      f.String(),
		Output:     antiderivative.String() + " + C",
		Summary:    "Integral of " + f.String() + ": " + antiderivative.String() + " + C",
		LaTeX:      `\int (` + f.LaTeX() + `) \, dx = ` + antiderivative.LaTeX() + ` + C`,
		expression: antiderivative,
	}, nil
}

func limit(node *parser.ExprNode, point string) (*Result, error) {
	if strings.TrimSpace(point) == "" {
		return nil, locerr.Syntax(-1, locerr.ErrEmptyExpression, "limit point is empty")
	}
	pointNode, err := parser.Parse(point)
	if err != nil {
		return nil, err
	}

	numeric := converter{numeric: true}
	f, err := numeric.convert(node)
	if err != nil {
		return nil, err
	}
	p, err := numeric.convert(pointNode)
	if err != nil {
		return nil, err
	}

	value, err := limitAt(f, p, maxLHopital)
	if err != nil {
		return nil, err
	}

	display, err := converter{}.convert(node)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Operation:  Limit,
		Input:      display.String(),
		Output:     value.String(),
		Summary:    "Limit of " + display.String() + " as x → " + point + ": " + value.String(),
		LaTeX:      `\lim_{x \to ` + p.LaTeX() + `} (` + display.LaTeX() + `) = ` + value.LaTeX(),
		expression: value,
	}
	if v, ok := value.Eval(); ok {
		limitValue := v.Float64()
		res.Value = &limitValue
	}
	return res, nil
}

// limitAt раскрывает неопределённость 0/0 через производные числителя и знаменателя,
// остальное считает gosymbol.Limit
func limitAt(f, p gosymbol.Expr, depth int) (gosymbol.Expr, error) {
	if num, den, ok := quotient(f); ok && depth > 0 {
		numAt, numOk := num.Sub(Variable, p).Simplify().Eval()
		denAt, denOk := den.Sub(Variable, p).Simplify().Eval()
		if denOk && denAt.IsZero() {
			if !numOk || !numAt.IsZero() {
				return nil, locerr.Arithmetic(locerr.ErrDivisionByZero, "limit does not exist at %s", p)
			}
			next := gosymbol.MulOf(gosymbol.Diff(num, Variable), gosymbol.PowOf(gosymbol.Diff(den, Variable), gosymbol.N(-1)))
			return limitAt(next, p, depth-1)
		}
	}

	res := gosymbol.Limit(f, Variable, p)
	if !res.Success {
		return nil, fmt.Errorf("%w: %s", locerr.ErrUnsupportedSymbolic, res.Error)
	}
	return res.Value, nil
}

// quotient делит произведение на числитель и множители со степенью -1
func quotient(e gosymbol.Expr) (num, den gosymbol.Expr, ok bool) {
	if base, isRecip := reciprocal(e); isRecip {
		return gosymbol.N(1), base, true
	}
	m, isMul := e.(*gosymbol.Mul)
	if !isMul {
		return nil, nil, false
	}
	var nums, dens []gosymbol.Expr
	for _, factor := range m.Factors() {
		if base, isRecip := reciprocal(factor); isRecip {
			dens = append(dens, base)
			continue
		}
		nums = append(nums, factor)
	}
	if len(dens) == 0 {
		return nil, nil, false
	}
	return gosymbol.MulOf(nums...), gosymbol.MulOf(dens...), true
}

func reciprocal(e gosymbol.Expr) (gosymbol.Expr, bool) {
	pow, isPow := e.(*gosymbol.Pow)
	if !isPow {
		return nil, false
	}
	exp, isNum := pow.ExpExpr().(*gosymbol.Num)
	if !isNum || !exp.IsNegOne() {
		return nil, false
	}
	return pow.Base(), true
}

// At вычисляет полученное выражение в точке x, pi и e подставляются числами
func (r *Result) At(x float64) (float64, error) {
	e := r.expression
	e = gosymbol.Sub(e, "pi", gosymbol.NFloat(math.Pi))
	e = gosymbol.Sub(e, "e", gosymbol.NFloat(math.E))
	e = gosymbol.Sub(e, Variable, gosymbol.NFloat(x))
	v, ok := e.Simplify().Eval()
	if !ok {
		return 0, errors.New("expression has no numeric value at this point")
	}
	return v.Float64(), nil
}
