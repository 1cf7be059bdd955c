package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/njchilds90/gosymbol"

	"github.com/ERRORIK404/Scientific_Calculator/pkg/evaluator"
	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// converter переводит дерево разбора в выражение gosymbol.
// numeric заменяет pi и e числами, иначе они остаются символами
type converter struct {
	numeric bool
}

func (c converter) convert(n *parser.ExprNode) (gosymbol.Expr, error) {
	switch n.Kind {
	case parser.NumberNode:
		return number(n.Text)

	case parser.ConstantNode:
		if c.numeric {
			if n.Op == "pi" {
				return gosymbol.NFloat(math.Pi), nil
			}
			return gosymbol.NFloat(math.E), nil
		}
		return gosymbol.S(n.Op), nil

	case parser.VariableNode:
		return gosymbol.S(n.Op), nil

	case parser.FactorialNode:
		v, err := evaluator.Evaluate(n, nil)
		if err != nil {
			return nil, err
		}
		if !v.IsInt() || !v.BigInt().IsInt64() {
			return nil, unsupported("%s is too large", n)
		}
		return gosymbol.N(v.BigInt().Int64()), nil

	case parser.UnaryNode:
		operand, err := c.convert(n.Left)
		if err != nil {
			return nil, err
		}
		if n.Op == "-" {
			return gosymbol.MulOf(gosymbol.N(-1), operand), nil
		}
		return operand, nil

	case parser.BinaryNode:
		return c.binary(n)

	case parser.CallNode:
		return c.call(n)
	}
	return nil, unsupported("%s", n)
}

func (c converter) binary(n *parser.ExprNode) (gosymbol.Expr, error) {
	if n.Op == "**" && n.Left.Kind == parser.ConstantNode && n.Left.Op == "e" {
		exponent, err := c.convert(n.Right)
		if err != nil {
			return nil, err
		}
		return gosymbol.ExpOf(exponent), nil
	}

	left, err := c.convert(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.convert(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case "+":
		return gosymbol.AddOf(left, right), nil
	case "-":
		return gosymbol.AddOf(left, gosymbol.MulOf(gosymbol.N(-1), right)), nil
	case "*":
		return gosymbol.MulOf(left, right), nil
	case "/":
		return gosymbol.MulOf(left, gosymbol.PowOf(right, gosymbol.N(-1))), nil
	case "**":
		return gosymbol.PowOf(left, right), nil
	}
	return nil, unsupported("operator %s", n.Op)
}

var unary = map[string]func(gosymbol.Expr) gosymbol.Expr{
	"sin":  gosymbol.SinOf,
	"cos":  gosymbol.CosOf,
	"tan":  gosymbol.TanOf,
	"asin": gosymbol.AsinOf,
	"acos": gosymbol.AcosOf,
	"atan": gosymbol.AtanOf,
	"exp":  gosymbol.ExpOf,
	"sqrt": gosymbol.SqrtOf,
	"abs":  gosymbol.AbsOf,
	"cbrt": func(e gosymbol.Expr) gosymbol.Expr { return gosymbol.PowOf(e, gosymbol.F(1, 3)) },
	"log10": func(e gosymbol.Expr) gosymbol.Expr {
		return logOf(e, gosymbol.N(10))
	},
	"log2": func(e gosymbol.Expr) gosymbol.Expr {
		return logOf(e, gosymbol.N(2))
	},
}

func (c converter) call(n *parser.ExprNode) (gosymbol.Expr, error) {
	args := make([]gosymbol.Expr, len(n.Args))
	for i, a := range n.Args {
		v, err := c.convert(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if fn, ok := unary[n.Op]; ok {
		return fn(args[0]), nil
	}
	if n.Op == "log" {
		if len(args) == 2 {
			return logOf(args[0], args[1]), nil
		}
		return gosymbol.LnOf(args[0]), nil
	}
	return nil, unsupported("function %s", n.Op)
}

// logOf логарифм по основанию: ln(x) / ln(base)
func logOf(x, base gosymbol.Expr) gosymbol.Expr {
	return gosymbol.MulOf(gosymbol.LnOf(x), gosymbol.PowOf(gosymbol.LnOf(base), gosymbol.N(-1)))
}

// number сохраняет десятичные литералы точными дробями, когда они помещаются в int64
func number(text string) (gosymbol.Expr, error) {
	if r, ok := new(big.Rat).SetString(text); ok && r.Num().IsInt64() && r.Denom().IsInt64() {
		if r.IsInt() {
			return gosymbol.N(r.Num().Int64()), nil
		}
		return gosymbol.F(r.Num().Int64(), r.Denom().Int64()), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, locerr.Arithmetic(locerr.ErrOverflow, "numeric literal %s out of range", text)
	}
	return gosymbol.NFloat(f), nil
}

func unsupported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", locerr.ErrUnsupportedSymbolic, fmt.Sprintf(format, args...))
}
