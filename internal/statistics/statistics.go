// Package statistics считает описательную статистику набора чисел.
package statistics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

const MinValues = 2

// Summary итог анализа. Mode равен nil, когда все значения различны
type Summary struct {
	Count    int      `json:"count"`
	Mean     float64  `json:"mean"`
	Median   float64  `json:"median"`
	Mode     *float64 `json:"mode"`
	StdDev   float64  `json:"std_dev"`
	Variance float64  `json:"variance"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Range    float64  `json:"range"`
}

type Row struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseData разбирает список через запятую, пустые элементы пропускаются
func ParseData(input string) ([]float64, error) {
	var data []float64
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("could not convert string to float: '%s'", field)
		}
		data = append(data, v)
	}
	return data, nil
}

// Describe считает выборочные показатели, нужно хотя бы два значения
func Describe(data []float64) (*Summary, error) {
	if len(data) < MinValues {
		return nil, locerr.ErrInsufficientData
	}

	sample := stats.Sample{Xs: append([]float64(nil), data...)}
	lo, hi := sample.Bounds()

	return &Summary{
		Count:    len(data),
		Mean:     sample.Mean(),
		Median:   sample.Copy().Sort().Quantile(0.5),
		Mode:     mode(data),
		StdDev:   sample.StdDev(),
		Variance: sample.Variance(),
		Min:      lo,
		Max:      hi,
		Range:    hi - lo,
	}, nil
}

// mode возвращает самое частое значение; при равенстве частот первое встреченное
func mode(data []float64) *float64 {
	_, top := stat.Mode(data, nil)
	if top <= 1 {
		return nil
	}
	counts := make(map[float64]float64, len(data))
	for _, v := range data {
		counts[v]++
	}
	for _, v := range data {
		if counts[v] == top {
			return &v
		}
	}
	return nil
}

// Rows готовит показатели к выводу, дробные значения с precision знаками
func (s *Summary) Rows(precision int) []Row {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', precision, 64) }

	modeText := "no unique mode"
	if s.Mode != nil {
		modeText = f(*s.Mode)
	}
	return []Row{
		{"Count", strconv.Itoa(s.Count)},
		{"Mean", f(s.Mean)},
		{"Median", f(s.Median)},
		{"Mode", modeText},
		{"Standard deviation", f(s.StdDev)},
		{"Variance", f(s.Variance)},
		{"Minimum", f(s.Min)},
		{"Maximum", f(s.Max)},
		{"Range", f(s.Range)},
	}
}
