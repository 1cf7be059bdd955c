package expression_parser

import (
	"strings"
)

type NodeKind int

const (
	NumberNode NodeKind = iota
	ConstantNode
	VariableNode
	UnaryNode
	BinaryNode
	CallNode
	FactorialNode
)

// Узел дерева выражения. Для чисел и факториала исходный текст литерала хранится в Text,
// для операторов, функций, констант и переменных имя хранится в Op
type ExprNode struct {
	Kind  NodeKind
	Op    string
	Text  string
	Left  *ExprNode
	Right *ExprNode
	Args  []*ExprNode
	Pos   int
}

// IsIntegerLiteral сообщает, записано ли число без точки и экспоненты
func (n *ExprNode) IsIntegerLiteral() bool {
	return n.Kind == NumberNode && isIntegerText(n.Text)
}

// String печатает дерево в полностью скобочной форме, удобной для тестов и логов
func (n *ExprNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *ExprNode) write(b *strings.Builder) {
	switch n.Kind {
	case NumberNode:
		b.WriteString(n.Text)
	case ConstantNode, VariableNode:
		b.WriteString(n.Op)
	case FactorialNode:
		b.WriteString(n.Text)
		b.WriteByte('!')
	case UnaryNode:
		b.WriteByte('(')
		b.WriteString(n.Op)
		n.Left.write(b)
		b.WriteByte(')')
	case BinaryNode:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte(' ')
		b.WriteString(n.Op)
		b.WriteByte(' ')
		n.Right.write(b)
		b.WriteByte(')')
	case CallNode:
		b.WriteString(n.Op)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			arg.write(b)
		}
		b.WriteByte(')')
	}
}

// Walk обходит дерево в прямом порядке, пока fn возвращает true
func Walk(n *ExprNode, fn func(*ExprNode) bool) {
	if n == nil || !fn(n) {
		return
	}
	Walk(n.Left, fn)
	Walk(n.Right, fn)
	for _, arg := range n.Args {
		Walk(arg, fn)
	}
}

func isIntegerText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsDigit(r) {
			return false
		}
	}
	return true
}
