package evaluator

import (
	"math"
	"math/big"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

// Наибольший аргумент факториала, который считается без переполнения
const MaxFactorial = 5000

type builtin func(args []Number) (Number, error)

// Реализации функций из белого списка. Имена совпадают с expression_parser.LookupFunction
var builtins = map[string]builtin{
	"sin":       trig(math.Sin),
	"cos":       trig(math.Cos),
	"tan":       trig(math.Tan),
	"asin":      unitInterval(math.Asin),
	"acos":      unitInterval(math.Acos),
	"atan":      floatFunc(math.Atan),
	"log":       logFunc,
	"log10":     logBase(10, log10),
	"log2":      logBase(2, math.Log2),
	"exp":       floatFunc(math.Exp),
	"sqrt":      sqrtFunc,
	"cbrt":      floatFunc(math.Cbrt),
	"abs":       absFunc,
	"factorial": func(args []Number) (Number, error) { return factorial(args[0]) },
	"min":       extreme(-1),
	"max":       extreme(1),
	"round":     roundFunc,
}

func floatFunc(fn func(float64) float64) builtin {
	return func(args []Number) (Number, error) {
		x, err := args[0].Float64()
		if err != nil {
			return Number{}, err
		}
		r := fn(x)
		if math.IsInf(r, 0) && !math.IsInf(x, 0) {
			return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "math range error")
		}
		return checkFloat(r)
	}
}

func trig(fn func(float64) float64) builtin {
	return func(args []Number) (Number, error) {
		x, err := args[0].Float64()
		if err != nil {
			return Number{}, err
		}
		if math.IsInf(x, 0) {
			return Number{}, locerr.Domain("math domain error")
		}
		return checkFloat(fn(x))
	}
}

func unitInterval(fn func(float64) float64) builtin {
	return func(args []Number) (Number, error) {
		x, err := args[0].Float64()
		if err != nil {
			return Number{}, err
		}
		if x < -1 || x > 1 {
			return Number{}, locerr.Domain("math domain error")
		}
		return checkFloat(fn(x))
	}
}

// logBase: аргумент должен быть положительным; огромные целые идут через натуральный логарифм
func logBase(base float64, fn func(float64) float64) builtin {
	return func(args []Number) (Number, error) {
		if x, err := args[0].Float64(); err == nil {
			if x <= 0 || math.IsNaN(x) {
				return Number{}, locerr.Domain("math domain error")
			}
			return checkFloat(fn(x))
		}
		l, err := naturalLog(args[0])
		if err != nil {
			return Number{}, err
		}
		return checkFloat(l / math.Log(base))
	}
}

// math.Log10 теряет последний знак на точных степенях десяти: log10(1000) должен быть 3.0
func log10(x float64) float64 {
	r := math.Log10(x)
	if k := math.Round(r); k == r || math.Pow(10, k) == x {
		return k
	}
	return r
}

func naturalLog(n Number) (float64, error) {
	if n.IsInt() {
		if n.i.Sign() <= 0 {
			return 0, locerr.Domain("math domain error")
		}
		// Очень большие целые: log(m * 2^k) = log(m) + k*ln2
		if n.i.BitLen() > 1000 {
			shift := uint(n.i.BitLen() - 64)
			m, _ := new(big.Float).SetInt(new(big.Int).Rsh(n.i, shift)).Float64()
			return math.Log(m) + float64(shift)*math.Ln2, nil
		}
	}
	x, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if x <= 0 || math.IsNaN(x) {
		return 0, locerr.Domain("math domain error")
	}
	return math.Log(x), nil
}

func logFunc(args []Number) (Number, error) {
	l, err := naturalLog(args[0])
	if err != nil {
		return Number{}, err
	}
	if len(args) == 1 {
		return checkFloat(l)
	}
	b, err := naturalLog(args[1])
	if err != nil {
		return Number{}, err
	}
	if b == 0 {
		return Number{}, locerr.Arithmetic(locerr.ErrDivisionByZero, "float division by zero")
	}
	return checkFloat(l / b)
}

func sqrtFunc(args []Number) (Number, error) {
	x, err := args[0].Float64()
	if err != nil {
		return Number{}, err
	}
	if x < 0 {
		return Number{}, locerr.Domain("math domain error")
	}
	return checkFloat(math.Sqrt(x))
}

func absFunc(args []Number) (Number, error) {
	if args[0].IsInt() {
		return Int(new(big.Int).Abs(args[0].i)), nil
	}
	return Float(math.Abs(args[0].f)), nil
}

func factorial(n Number) (Number, error) {
	if !n.IsInt() {
		return Number{}, locerr.Domain("factorial() only accepts integral values")
	}
	if n.i.Sign() < 0 {
		return Number{}, locerr.Domain("factorial() not defined for negative values")
	}
	if !n.i.IsInt64() || n.i.Int64() > MaxFactorial {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "factorial() argument should not exceed %d", MaxFactorial)
	}
	return Int(new(big.Int).MulRange(1, n.i.Int64())), nil
}

// extreme возвращает min (sign=-1) или max (sign=1); при равенстве побеждает первый аргумент
func extreme(sign int) builtin {
	return func(args []Number) (Number, error) {
		best := args[0]
		for _, candidate := range args[1:] {
			c, err := compare(candidate, best)
			if err != nil {
				return Number{}, err
			}
			if c == sign {
				best = candidate
			}
		}
		return best, nil
	}
}

func compare(a, b Number) (int, error) {
	if a.IsInt() && b.IsInt() {
		return a.i.Cmp(b.i), nil
	}
	x, y := toBigFloat(a), toBigFloat(b)
	if x == nil || y == nil {
		return 0, locerr.Domain("cannot compare nan")
	}
	return x.Cmp(y), nil
}

func toBigFloat(n Number) *big.Float {
	if n.IsInt() {
		return new(big.Float).SetInt(n.i)
	}
	if math.IsNaN(n.f) {
		return nil
	}
	return big.NewFloat(n.f)
}

func roundFunc(args []Number) (Number, error) {
	x := args[0]
	if len(args) == 1 {
		if x.IsInt() {
			return x, nil
		}
		if math.IsNaN(x.f) {
			return Number{}, locerr.Domain("cannot convert float NaN to integer")
		}
		if math.IsInf(x.f, 0) {
			return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "cannot convert float infinity to integer")
		}
		i, _ := big.NewFloat(math.RoundToEven(x.f)).Int(nil)
		return Int(i), nil
	}

	nd := args[1]
	if !nd.IsInt() {
		return Number{}, locerr.Domain("'float' object cannot be interpreted as an integer")
	}
	if !nd.i.IsInt64() {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "ndigits too large")
	}
	ndigits := nd.i.Int64()
	if x.IsInt() {
		return roundInt(x.i, ndigits)
	}
	if ndigits > math.MaxInt32 || ndigits < math.MinInt32 {
		return Number{}, locerr.Arithmetic(locerr.ErrOverflow, "ndigits too large")
	}
	r, err := RoundFloat(x.f, int(ndigits))
	if err != nil {
		return Number{}, err
	}
	return Float(r), nil
}

// Целое с отрицательным числом знаков округляется до 10^-ndigits, половина к чётному
func roundInt(x *big.Int, ndigits int64) (Number, error) {
	if ndigits >= 0 {
		return Int(new(big.Int).Set(x)), nil
	}
	if -ndigits > int64(x.BitLen())+1 {
		return IntFrom(0), nil
	}
	q := new(big.Int).Exp(big.NewInt(10), big.NewInt(-ndigits), nil)
	div, mod := new(big.Int).DivMod(x, q, new(big.Int))
	twice := new(big.Int).Lsh(mod, 1)
	if c := twice.Cmp(q); c > 0 || (c == 0 && div.Bit(0) == 1) {
		div.Add(div, big.NewInt(1))
	}
	return Int(div.Mul(div, q)), nil
}
