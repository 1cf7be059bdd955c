package evaluator

import (
	"math"
	"math/big"

	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// Значения свободных переменных (x на графике). Для обычного калькулятора пусто
type Vars map[string]float64

// EvaluateString разбирает и вычисляет выражение без свободных переменных
func EvaluateString(expression string) (Number, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return Number{}, err
	}
	return Evaluate(node, nil)
}

// Evaluate вычисляет дерево. Доступны только константы, функции из белого списка и vars
func Evaluate(node *parser.ExprNode, vars Vars) (Number, error) {
	switch node.Kind {
	case parser.NumberNode:
		return parseLiteral(node.Text, node.Pos)

	case parser.ConstantNode:
		switch node.Op {
		case "pi":
			return Float(math.Pi), nil
		case "e":
			return Float(math.E), nil
		}
		return Number{}, locerr.Name(node.Pos, node.Op)

	case parser.VariableNode:
		v, ok := vars[node.Op]
		if !ok {
			return Number{}, locerr.Name(node.Pos, node.Op)
		}
		return Float(v), nil

	case parser.FactorialNode:
		n, err := parseLiteral(node.Text, node.Pos)
		if err != nil {
			return Number{}, err
		}
		return factorial(n)

	case parser.UnaryNode:
		operand, err := Evaluate(node.Left, vars)
		if err != nil {
			return Number{}, err
		}
		if node.Op == "+" {
			return operand, nil
		}
		return negate(operand), nil

	case parser.BinaryNode:
		left, err := Evaluate(node.Left, vars)
		if err != nil {
			return Number{}, err
		}
		right, err := Evaluate(node.Right, vars)
		if err != nil {
			return Number{}, err
		}
		return binary(node.Op, left, right)

	case parser.CallNode:
		fn, ok := builtins[node.Op]
		if !ok {
			return Number{}, locerr.Name(node.Pos, node.Op)
		}
		args := make([]Number, 0, len(node.Args))
		for _, a := range node.Args {
			v, err := Evaluate(a, vars)
			if err != nil {
				return Number{}, err
			}
			args = append(args, v)
		}
		return fn(args)
	}
	return Number{}, locerr.Syntax(node.Pos, locerr.ErrIncorrectExpression, "unsupported expression")
}

func negate(n Number) Number {
	if n.IsInt() {
		return Int(new(big.Int).Neg(n.i))
	}
	return Float(-n.f)
}

func binary(op string, a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		return intBinary(op, a.i, b.i)
	}
	x, err := a.Float64()
	if err != nil {
		return Number{}, err
	}
	y, err := b.Float64()
	if err != nil {
		return Number{}, err
	}
	return floatBinary(op, x, y)
}

func intBinary(op string, x, y *big.Int) (Number, error) {
	switch op {
	case "+":
		return checkIntSize(new(big.Int).Add(x, y))
	case "-":
		return checkIntSize(new(big.Int).Sub(x, y))
	case "*":
		return checkIntSize(new(big.Int).Mul(x, y))
	case "/":
		if y.Sign() == 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "division by zero")
		}
		f, _ := new(big.Rat).SetFrac(x, y).Float64()
		return checkFloat(f)
	case "%":
		if y.Sign() == 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "integer modulo by zero")
		}
		r := new(big.Int).Rem(x, y)
		if r.Sign() != 0 && r.Sign() != y.Sign() {
			r.Add(r, y)
		}
		return Int(r), nil
	case "**":
		return intPow(x, y)
	}
	return Number{}, locerr.Syntax(-1, locerr.ErrIncorrectExpression, "unknown operator %q", op)
}

func intPow(base, exp *big.Int) (Number, error) {
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "0.0 cannot be raised to a negative power")
		}
		b, err := Int(base).Float64()
		if err != nil {
			return Number{}, err
		}
		e, err := Int(exp).Float64()
		if err != nil {
			return Number{}, err
		}
		return checkFloat(math.Pow(b, e))
	}

	// 0, 1 и -1 в любой степени остаются маленькими
	if base.CmpAbs(big.NewInt(1)) <= 0 {
		if base.Sign() < 0 && exp.Bit(0) == 0 {
			return IntFrom(1), nil
		}
		if exp.Sign() == 0 {
			return IntFrom(1), nil
		}
		return Int(new(big.Int).Set(base)), nil
	}
	// |base| >= 2, поэтому в результате не меньше (BitLen-1)*exp бит
	if exp.Cmp(big.NewInt(MaxIntBits/int64(base.BitLen()-1))) > 0 {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "integer result too large")
	}
	return checkIntSize(new(big.Int).Exp(base, exp, nil))
}

func floatBinary(op string, x, y float64) (Number, error) {
	switch op {
	case "+":
		return checkFloat(x + y)
	case "-":
		return checkFloat(x - y)
	case "*":
		return checkFloat(x * y)
	case "/":
		if y == 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "float division by zero")
		}
		return checkFloat(x / y)
	case "%":
		if y == 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "float modulo")
		}
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		if r == 0 {
			r = math.Copysign(0, y)
		}
		return checkFloat(r)
	case "**":
		if x == 0 && y < 0 {
			return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "0.0 cannot be raised to a negative power")
		}
		if x < 0 && y != math.Trunc(y) {
			return Number{}, locerr.Domain("negative number cannot be raised to a fractional power")
		}
		return checkFloat(math.Pow(x, y))
	}
	return Number{}, locerr.Syntax(-1, locerr.ErrIncorrectExpression, "unknown operator %q", op)
}
