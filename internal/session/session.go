// Package session хранит состояние одного пользователя калькулятора: строку ввода,
// точность вывода и историю вычислений.
package session

import (
	"time"

	"github.com/ERRORIK404/Scientific_Calculator/pkg/evaluator"
	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
	structs "github.com/ERRORIK404/Scientific_Calculator/pkg/structs"
)

const (
	InitialBuffer    = "0"
	DefaultPrecision = 10
	MinPrecision     = 2
	MaxPrecision     = 15
)

// Session не потокобезопасна: ею владеет ровно один пользователь, а сервер
// сериализует обращения через structs.SafeSessionMap
type Session struct {
	buffer    string
	precision int
	history   *structs.History
	now       func() time.Time
}

type Option func(*Session)

// WithClock подменяет часы, по которым ставится время записи в истории
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithPrecision задаёт начальную точность; значения вне [2, 15] игнорируются
func WithPrecision(p int) Option {
	return func(s *Session) {
		if p >= MinPrecision && p <= MaxPrecision {
			s.precision = p
		}
	}
}

func New(opts ...Option) *Session {
	s := &Session{
		buffer:    InitialBuffer,
		precision: DefaultPrecision,
		history:   structs.NewHistory(structs.HistoryLimit),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Buffer() string { return s.buffer }
func (s *Session) Precision() int { return s.precision }

// Append дописывает токен в строку ввода. Пока в строке "0", любой токен кроме
// "(", ")" и "." заменяет её целиком. Синтаксис здесь не проверяется
func (s *Session) Append(token string) {
	if token == "" {
		return
	}
	if s.buffer == InitialBuffer && !isStructural(token) {
		s.buffer = token
		return
	}
	s.buffer += token
}

func isStructural(token string) bool {
	return token == "(" || token == ")" || token == "."
}

func (s *Session) Clear() {
	s.buffer = InitialBuffer
}

// ToggleSign меняет знак текстом, до вычисления: снимает один ведущий "-" или добавляет его
func (s *Session) ToggleSign() {
	if len(s.buffer) > 0 && s.buffer[0] == '-' {
		s.buffer = s.buffer[1:]
		if s.buffer == "" {
			s.buffer = InitialBuffer
		}
		return
	}
	s.buffer = "-" + s.buffer
}

func (s *Session) SetPrecision(p int) error {
	if p < MinPrecision || p > MaxPrecision {
		return locerr.ErrPrecisionOutOfRange
	}
	s.precision = p
	return nil
}

// Evaluate вычисляет строку ввода, записывает результат в историю и заменяет им строку.
// При ошибке состояние не меняется, а возвращается *localerrors.EvalError
func (s *Session) Evaluate() (string, error) {
	expression := s.buffer

	result, err := Compute(expression, s.precision)
	if err != nil {
		return "", err
	}

	s.history.Push(structs.HistoryEntry{
		Timestamp:  s.now().Format(structs.TimestampLayout),
		Expression: expression,
		Result:     result,
	})
	s.buffer = result
	return result, nil
}

// Compute разбирает и вычисляет выражение, дробный результат округляется до precision знаков
func Compute(expression string, precision int) (string, error) {
	node, err := parser.Parse(expression)
	if err != nil {
		return "", err
	}
	value, err := evaluator.Evaluate(node, nil)
	if err != nil {
		return "", err
	}
	if value.IsInt() {
		return value.String(), nil
	}

	f, err := value.Float64()
	if err != nil {
		return "", err
	}
	rounded, err := evaluator.RoundFloat(f, precision)
	if err != nil {
		return "", err
	}
	return evaluator.FormatFloat(rounded), nil
}
