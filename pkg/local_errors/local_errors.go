package localerrors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyExpression           = errors.New("empty expression")
	ErrIncorrectBracketPlacement = errors.New("incorrect placement of brackets")
	ErrInvalidCharacter          = errors.New("invalid character")
	ErrIncorrectExpression       = errors.New("incorrect expression")
	ErrUnknownName               = errors.New("name is not defined")
	ErrWrongArgumentCount        = errors.New("wrong number of arguments")
	ErrDivisionByZero            = errors.New("division by zero")
	ErrOverflow                  = errors.New("numerical result out of range")
	ErrMathDomain                = errors.New("math domain error")
	ErrPrecisionOutOfRange       = errors.New("precision out of range")
	ErrNothingToExport           = errors.New("nothing to export")
	ErrExportNotFound            = errors.New("export not found")
	ErrUserExists                = errors.New("user already exists")
	ErrUserNotFound              = errors.New("user not found")
	ErrInsufficientData          = errors.New("at least 2 values are required")
	ErrInvalidPlotRange          = errors.New("invalid plot range")
	ErrUnsupportedSymbolic       = errors.New("unsupported symbolic expression")
	ErrNoSessionOwner            = errors.New("session owner is unknown")
)

// Вид ошибки вычисления
type Kind string

const (
	KindSyntax     Kind = "SyntaxError"
	KindName       Kind = "NameError"
	KindDomain     Kind = "DomainError"
	KindArithmetic Kind = "ArithmeticError"
)

// Ошибка вычисления выражения: вид, сообщение для пользователя, позиция в исходной строке
type EvalError struct {
	Kind Kind
	Msg  string
	Pos  int // -1 если позиция неизвестна
	Err  error
}

func (e *EvalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Pos >= 0 {
		base += fmt.Sprintf(" (at position %d)", e.Pos+1)
	}
	return base
}

func (e *EvalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func Syntax(pos int, cause error, format string, args ...any) *EvalError {
	return &EvalError{Kind: KindSyntax, Msg: fmt.Sprintf(format, args...), Pos: pos, Err: cause}
}

func Name(pos int, name string) *EvalError {
	return &EvalError{Kind: KindName, Msg: fmt.Sprintf("name '%s' is not defined", name), Pos: pos, Err: ErrUnknownName}
}

func Domain(format string, args ...any) *EvalError {
	return &EvalError{Kind: KindDomain, Msg: fmt.Sprintf(format, args...), Pos: -1, Err: ErrMathDomain}
}

func Arithmetic(cause error, format string, args ...any) *EvalError {
	return &EvalError{Kind: KindArithmetic, Msg: fmt.Sprintf(format, args...), Pos: -1, Err: cause}
}

// Проверка вида ошибки без знания о конкретном пакете, который её создал
func IsKind(err error, kind Kind) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind == kind
	}
	return false
}

// Вид ошибки или пустая строка, если это не ошибка вычисления
func KindOf(err error) Kind {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}
