package expression_parser

import (
	"strconv"
	"strings"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

type options struct {
	variables map[string]struct{}
}

type Option func(*options)

// WithVariables разрешает в выражении свободные переменные (например, x для графиков)
func WithVariables(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.variables[name] = struct{}{}
		}
	}
}

type parser struct {
	lex  lexer
	tok  token
	opts options
}

// Функция для проверки правильности расставления скобок
func IsValidParentheses(expression string) bool {
	depth := 0
	for _, char := range expression {
		switch char {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return depth == 0
}

func GetPrecedence(operator string) int {
	switch operator {
	case "+", "-":
		return 1
	case "*", "/", "%":
		return 2
	case "**":
		return 4
	default:
		return 0
	}
}

// Parse разбирает выражение рекурсивным спуском и возвращает дерево.
// Все ошибки имеют тип *localerrors.EvalError
func Parse(expression string, opts ...Option) (*ExprNode, error) {
	o := options{variables: map[string]struct{}{}}
	for _, opt := range opts {
		opt(&o)
	}
	for name := range o.variables {
		if IsReserved(name) {
			return nil, locerr.Syntax(-1, nil, "variable %q shadows a built-in name", name)
		}
	}

	if strings.TrimSpace(expression) == "" {
		return nil, locerr.Syntax(-1, locerr.ErrEmptyExpression, "empty expression")
	}
	if !IsValidParentheses(expression) {
		return nil, locerr.Syntax(-1, locerr.ErrIncorrectBracketPlacement, "incorrect placement of brackets")
	}

	p := &parser{lex: lexer{src: expression}, opts: o}
	if err := p.advance(); err != nil {
		return nil, err
	}
	node, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, p.unexpected()
	}
	return node, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokenEOF {
		return locerr.Syntax(p.tok.pos, locerr.ErrIncorrectExpression, "unexpected end of expression")
	}
	return locerr.Syntax(p.tok.pos, locerr.ErrIncorrectExpression, "unexpected %q", p.tok.text)
}

// Бинарные операторы + - * / % разбираются подъёмом по приоритетам, все левоассоциативны
func (p *parser) parseBinary(minPrec int) (*ExprNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.tok.text
		prec := GetPrecedence(op)
		if p.tok.kind != tokenOperator || prec < minPrec || prec > 2 {
			return left, nil
		}
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ExprNode{Kind: BinaryNode, Op: op, Left: left, Right: right, Pos: pos}
	}
}

func (p *parser) parseUnary() (*ExprNode, error) {
	if p.tok.kind == tokenOperator && (p.tok.text == "-" || p.tok.text == "+") {
		op, pos := p.tok.text, p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ExprNode{Kind: UnaryNode, Op: op, Left: operand, Pos: pos}, nil
	}
	return p.parsePower()
}

// Степень правоассоциативна и связывает сильнее унарного минуса слева: -2**2 == -(2**2)
func (p *parser) parsePower() (*ExprNode, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenOperator && p.tok.text == "**" {
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		exponent, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ExprNode{Kind: BinaryNode, Op: "**", Left: base, Right: exponent, Pos: pos}, nil
	}
	return base, nil
}

// Факториал допускается только сразу после целого литерала: 5! но не (2+3)! и не 2.5!
func (p *parser) parsePostfix() (*ExprNode, error) {
	literal := p.tok.kind == tokenNumber
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind == tokenOperator && p.tok.text == "!" {
		if !literal || !node.IsIntegerLiteral() {
			return nil, locerr.Syntax(p.tok.pos, locerr.ErrIncorrectExpression, "factorial '!' applies only to integer literals")
		}
		node = &ExprNode{Kind: FactorialNode, Text: node.Text, Pos: node.Pos}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenOperator && p.tok.text == "!" {
			return nil, locerr.Syntax(p.tok.pos, locerr.ErrIncorrectExpression, "factorial '!' applies only to integer literals")
		}
	}
	return node, nil
}

func (p *parser) parsePrimary() (*ExprNode, error) {
	tok := p.tok
	switch tok.kind {
	case tokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ExprNode{Kind: NumberNode, Text: tok.text, Pos: tok.pos}, nil

	case tokenName:
		return p.parseName()

	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenRParen {
			return nil, p.unexpected()
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected()
}

func (p *parser) parseName() (*ExprNode, error) {
	name := p.tok
	fn, isFunc := LookupFunction(name.text)
	_, isVar := p.opts.variables[name.text]
	if !isFunc && !isVar && !IsConstant(name.text) {
		return nil, locerr.Name(name.pos, name.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if !isFunc {
		if p.tok.kind == tokenLParen {
			return nil, locerr.Syntax(p.tok.pos, locerr.ErrIncorrectExpression, "'%s' is not callable", name.text)
		}
		kind := ConstantNode
		if isVar {
			kind = VariableNode
		}
		return &ExprNode{Kind: kind, Op: name.text, Pos: name.pos}, nil
	}

	if p.tok.kind != tokenLParen {
		return nil, locerr.Syntax(name.pos, locerr.ErrIncorrectExpression, "function '%s' must be called", name.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var args []*ExprNode
	if p.tok.kind != tokenRParen {
		for {
			arg, err := p.parseBinary(1)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.tok.kind != tokenComma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if p.tok.kind != tokenRParen {
		return nil, p.unexpected()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
		return nil, locerr.Syntax(name.pos, locerr.ErrWrongArgumentCount, "%s() takes %s (%d given)", fn.Name, arity(fn), len(args))
	}
	return &ExprNode{Kind: CallNode, Op: fn.Name, Args: args, Pos: name.pos}, nil
}

func arity(fn Function) string {
	switch {
	case fn.MaxArgs < 0:
		return "at least " + plural(fn.MinArgs)
	case fn.MinArgs == fn.MaxArgs:
		return "exactly " + plural(fn.MinArgs)
	default:
		return "from " + strconv.Itoa(fn.MinArgs) + " to " + plural(fn.MaxArgs)
	}
}

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return strconv.Itoa(n) + " arguments"
}
