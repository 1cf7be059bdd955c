package expression_parser

import (
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenName
	tokenOperator
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Лексер читает выражение лениво: парсер запрашивает токены по одному, поэтому запрещённое имя
// отклоняется раньше, чем будет просмотрен остаток строки
type lexer struct {
	src string
	pos int
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return token{kind: tokenEOF, pos: l.pos}, nil
	}

	start := l.pos
	c := rune(l.src[l.pos])
	switch {
	case IsDigit(c) || (c == '.' && l.pos+1 < len(l.src) && IsDigit(rune(l.src[l.pos+1]))):
		return l.number()
	case isNameStart(c):
		for l.pos < len(l.src) && isNamePart(rune(l.src[l.pos])) {
			l.pos++
		}
		return token{kind: tokenName, text: l.src[start:l.pos], pos: start}, nil
	case c == '*':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '*' {
			l.pos += 2
			return token{kind: tokenOperator, text: "**", pos: start}, nil
		}
		l.pos++
		return token{kind: tokenOperator, text: "*", pos: start}, nil
	case c == '/':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '/' {
			return token{}, locerr.Syntax(start, locerr.ErrInvalidCharacter, "operator '//' is not supported")
		}
		l.pos++
		return token{kind: tokenOperator, text: "/", pos: start}, nil
	case c == '+' || c == '-' || c == '%' || c == '!':
		l.pos++
		return token{kind: tokenOperator, text: string(c), pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokenLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokenRParen, text: ")", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokenComma, text: ",", pos: start}, nil
	}

	// Кавычки, точки доступа к атрибутам, квадратные скобки и прочее сюда не проходят
	return token{}, locerr.Syntax(start, locerr.ErrInvalidCharacter, "invalid character %q", l.src[start:start+runeLen(l.src[start:])])
}

func (l *lexer) number() (token, error) {
	start := l.pos
	digits := func() int {
		n := 0
		for l.pos < len(l.src) && IsDigit(rune(l.src[l.pos])) {
			l.pos++
			n++
		}
		return n
	}

	intDigits := digits()
	isInt := true
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isInt = false
		l.pos++
		digits()
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if digits() == 0 {
			l.pos = save
			return token{}, locerr.Syntax(start, locerr.ErrIncorrectExpression, "invalid decimal literal")
		}
		isInt = false
	}
	if l.pos < len(l.src) && isNamePart(rune(l.src[l.pos])) {
		return token{}, locerr.Syntax(start, locerr.ErrIncorrectExpression, "invalid decimal literal")
	}

	text := l.src[start:l.pos]
	if isInt && intDigits > 1 && text[0] == '0' && !allZeros(text) {
		return token{}, locerr.Syntax(start, locerr.ErrIncorrectExpression, "leading zeros in decimal integer literals are not permitted")
	}
	return token{kind: tokenNumber, text: text, pos: start}, nil
}

func IsDigit(char rune) bool {
	return char >= '0' && char <= '9'
}

func isNameStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c rune) bool {
	return isNameStart(c) || IsDigit(c)
}

func allZeros(s string) bool {
	for _, r := range s {
		if r != '0' {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
