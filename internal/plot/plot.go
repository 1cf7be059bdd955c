// Package plot считает точки графика y = f(x) и рисует его текстом.
package plot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ERRORIK404/Scientific_Calculator/pkg/evaluator"
	parser "github.com/ERRORIK404/Scientific_Calculator/pkg/expression_parser"
	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

const (
	Variable  = "x"
	MinPoints = 100
	MaxPoints = 10000
)

type Options struct {
	XMin       float64 `json:"x_min"`
	XMax       float64 `json:"x_max"`
	Points     int     `json:"points"`
	ShowGrid   bool    `json:"show_grid"`
	ShowLegend bool    `json:"show_legend"`
}

func DefaultOptions() Options {
	return Options{XMin: -10, XMax: 10, Points: 1000, ShowGrid: true, ShowLegend: true}
}

func (o Options) Validate() error {
	if math.IsNaN(o.XMin) || math.IsNaN(o.XMax) || math.IsInf(o.XMin, 0) || math.IsInf(o.XMax, 0) {
		return fmt.Errorf("%w: bounds must be finite", locerr.ErrInvalidPlotRange)
	}
	if o.XMin >= o.XMax {
		return fmt.Errorf("%w: x_min must be less than x_max", locerr.ErrInvalidPlotRange)
	}
	if o.Points < MinPoints || o.Points > MaxPoints {
		return fmt.Errorf("%w: points must be between %d and %d", locerr.ErrInvalidPlotRange, MinPoints, MaxPoints)
	}
	return nil
}

// Series точки графика. Там, где функция не определена, Y равен NaN
type Series struct {
	Expression string    `json:"expression"`
	X          []float64 `json:"x"`
	Y          []float64 `json:"y"`
	Options    Options   `json:"options"`
}

// Sample вычисляет f(x) на равномерной сетке. Ошибки разбора прерывают построение,
// ошибки области определения и переполнения дают разрыв в точке
func Sample(expression string, opts Options) (*Series, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	node, err := parser.Parse(expression, parser.WithVariables(Variable))
	if err != nil {
		return nil, err
	}

	compiled := evaluator.Compile(node)

	xs := make([]float64, opts.Points)
	floats.Span(xs, opts.XMin, opts.XMax)
	xs[len(xs)-1] = opts.XMax

	ys := make([]float64, len(xs))
	defined := 0
	for i, x := range xs {
		y, err := pointValue(compiled, x)
		if err != nil {
			return nil, err
		}
		if !math.IsNaN(y) {
			defined++
		}
		ys[i] = y
	}

	if defined == 0 {
		return nil, locerr.Domain("function is undefined on [%g, %g]", opts.XMin, opts.XMax)
	}

	return &Series{Expression: expression, X: xs, Y: ys, Options: opts}, nil
}

func pointValue(compiled *evaluator.Compiled, x float64) (float64, error) {
	v, err := compiled.Evaluate(evaluator.Vars{Variable: x})
	if err != nil {
		if locerr.IsKind(err, locerr.KindDomain) || locerr.IsKind(err, locerr.KindArithmetic) {
			return math.NaN(), nil
		}
		return 0, err
	}
	y, err := v.Float64()
	if err != nil || math.IsInf(y, 0) {
		return math.NaN(), nil
	}
	return y, nil
}

// YRange возвращает минимум и максимум по определённым точкам
func (s *Series) YRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, y := range s.Y {
		if math.IsNaN(y) {
			continue
		}
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
		ok = true
	}
	return lo, hi, ok
}
