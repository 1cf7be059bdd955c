package evaluator

import (
	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

type evalFunc func(Vars) (Number, error)

// Compiled дерево, подготовленное к многократному вычислению с разными vars.
// Поддеревья без переменных вычисляются один раз при компиляции, вместе с ошибкой
type Compiled struct {
	eval     evalFunc
	constant bool
}

func Compile(node *parser.ExprNode) *Compiled {
	eval, constant := compile(node)
	return &Compiled{eval: eval, constant: constant}
}

func (c *Compiled) Evaluate(vars Vars) (Number, error) {
	return c.eval(vars)
}

// IsConstant сообщает, что выражение не зависит от переменных
func (c *Compiled) IsConstant() bool { return c.constant }

func compile(node *parser.ExprNode) (evalFunc, bool) {
	switch node.Kind {
	case parser.NumberNode, parser.ConstantNode, parser.FactorialNode:
		return fold(func(Vars) (Number, error) { return Evaluate(node, nil) }), true

	case parser.VariableNode:
		return func(vars Vars) (Number, error) { return Evaluate(node, vars) }, false

	case parser.UnaryNode:
		operand, constant := compile(node.Left)
		eval := func(vars Vars) (Number, error) {
			v, err := operand(vars)
			if err != nil {
				return Number{}, err
			}
			if node.Op == "+" {
				return v, nil
			}
			return negate(v), nil
		}
		return foldIf(eval, constant)

	case parser.BinaryNode:
		left, lc := compile(node.Left)
		right, rc := compile(node.Right)
		eval := func(vars Vars) (Number, error) {
			a, err := left(vars)
			if err != nil {
				return Number{}, err
			}
			b, err := right(vars)
			if err != nil {
				return Number{}, err
			}
			return binary(node.Op, a, b)
		}
		return foldIf(eval, lc && rc)

	case parser.CallNode:
		fn, ok := builtins[node.Op]
		if !ok {
			return fold(func(Vars) (Number, error) { return Number{}, locerr.Name(node.Pos, node.Op) }), true
		}
		args := make([]evalFunc, len(node.Args))
		constant := true
		for i, a := range node.Args {
			var c bool
			args[i], c = compile(a)
			constant = constant && c
		}
		eval := func(vars Vars) (Number, error) {
			values := make([]Number, 0, len(args))
			for _, arg := range args {
				v, err := arg(vars)
				if err != nil {
					return Number{}, err
				}
				values = append(values, v)
			}
			return fn(values)
		}
		return foldIf(eval, constant)
	}
	return func(Vars) (Number, error) { return Evaluate(node, nil) }, false
}

func foldIf(eval evalFunc, constant bool) (evalFunc, bool) {
	if constant {
		return fold(eval), true
	}
	return eval, false
}

// fold вычисляет eval сразу и дальше отдаёт запомненный результат
func fold(eval evalFunc) evalFunc {
	v, err := eval(nil)
	return func(Vars) (Number, error) { return v, err }
}
