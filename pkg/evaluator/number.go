package evaluator

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// Предел размера целого результата. Всё, что больше, считается переполнением
const MaxIntBits = 1 << 16

// Число с семантикой калькулятора: целые произвольной точности, остальное float64
type Number struct {
	i *big.Int
	f float64
}

func Int(i *big.Int) Number       { return Number{i: i} }
func IntFrom(v int64) Number      { return Number{i: big.NewInt(v)} }
func Float(f float64) Number      { return Number{f: f} }
func (n Number) IsInt() bool      { return n.i != nil }
func (n Number) BigInt() *big.Int { return n.i }

// Float64 переводит число в float64; слишком большое целое даёт ArithmeticError
func (n Number) Float64() (float64, error) {
	if n.i == nil {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	if math.IsInf(f, 0) {
		return 0, locerr.Arithmetic(locerr.ErrOverflow, "int too large to convert to float")
	}
	return f, nil
}

func (n Number) IsZero() bool {
	if n.i != nil {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

// String возвращает десятичную запись: целые цифрами, дробные в кратчайшей точной форме
func (n Number) String() string {
	if n.i != nil {
		return n.i.String()
	}
	return FormatFloat(n.f)
}

// FormatFloat печатает float так же, как печатает его repr: 4.0, 0.1, 1e+16, 1e-05
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// RoundFloat округляет до ndigits десятичных знаков по правилу "половина к чётному"
// на точном двоичном значении, отрицательные ndigits округляют до десятков, сотен и т.д.
func RoundFloat(f float64, ndigits int) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f, nil
	}
	if ndigits >= 0 {
		if ndigits > 323 {
			return f, nil
		}
		r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', ndigits, 64), 64)
		if err != nil {
			return 0, locerr.Arithmetic(locerr.ErrOverflow, "rounded value too large to represent")
		}
		return r, nil
	}
	if ndigits < -308 {
		return math.Copysign(0, f), nil
	}
	q := math.Pow(10, float64(-ndigits))
	r := math.RoundToEven(f/q) * q
	if math.IsInf(r, 0) {
		return 0, locerr.Arithmetic(locerr.ErrOverflow, "rounded value too large to represent")
	}
	return r, nil
}

func parseLiteral(text string, pos int) (Number, error) {
	if isDigits(text) {
		i, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return Number{}, locerr.Syntax(pos, locerr.ErrIncorrectExpression, "invalid number %q", text)
		}
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return Number{}, locerr.Syntax(pos, locerr.ErrIncorrectExpression, "invalid number %q", text)
		}
		// Исчезающе малые значения округляются к нулю, слишком большие считаются переполнением
		if math.IsInf(f, 0) {
			return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "number %s is too large", text)
		}
	}
	return Float(f), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func checkIntSize(i *big.Int) (Number, error) {
	if i.BitLen() > MaxIntBits {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "integer result too large")
	}
	return Int(i), nil
}

func checkFloat(f float64) (Number, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "numerical result out of range")
	}
	return Float(f), nil
}
