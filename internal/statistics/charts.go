package statistics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

const MaxBins = 20

type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []uint    `json:"counts"`
}

// NewHistogram раскладывает данные по min(20, n/2) равным корзинам
func NewHistogram(data []float64) (*Histogram, error) {
	if len(data) < MinValues {
		return nil, locerr.ErrInsufficientData
	}
	bins := min(MaxBins, len(data)/2)

	lo, hi := stats.Bounds(data)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	hist := stats.NewLinearHist(lo, hi, bins)
	for _, v := range data {
		hist.Add(v)
	}
	_, counts, over := hist.Counts()
	counts = append([]uint(nil), counts...)
	// максимум попадает ровно на правую границу и считается в последнюю корзину
	counts[len(counts)-1] += over

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = hist.BinToValue(float64(i))
	}
	edges[bins] = hi

	return &Histogram{Edges: edges, Counts: counts}, nil
}

// Render рисует горизонтальные столбцы, самый высокий длиной width
func (h *Histogram) Render(width int) string {
	width = max(width, 10)
	var top uint
	for _, c := range h.Counts {
		top = max(top, c)
	}

	labels := make([]string, len(h.Counts))
	pad := 0
	for i := range h.Counts {
		labels[i] = "[" + short(h.Edges[i]) + ", " + short(h.Edges[i+1]) + ")"
		pad = max(pad, len(labels[i]))
	}

	var b strings.Builder
	for i, c := range h.Counts {
		bar := 0
		if top > 0 {
			bar = int(math.Round(float64(c) / float64(top) * float64(width)))
		}
		b.WriteString(labels[i])
		b.WriteString(strings.Repeat(" ", pad-len(labels[i])))
		b.WriteString(" │")
		b.WriteString(strings.Repeat("█", bar))
		b.WriteString(" ")
		b.WriteString(strconv.FormatUint(uint64(c), 10))
		b.WriteByte('\n')
	}
	return b.String()
}

// BoxPlot квартильная сводка; усы до крайних значений в пределах 1.5 IQR
type BoxPlot struct {
	LowerWhisker float64   `json:"lower_whisker"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers"`
}

func NewBoxPlot(data []float64) (*BoxPlot, error) {
	if len(data) < MinValues {
		return nil, locerr.ErrInsufficientData
	}
	sample := stats.Sample{Xs: append([]float64(nil), data...)}
	sample.Sort()

	box := &BoxPlot{
		Q1:       sample.Quantile(0.25),
		Median:   sample.Quantile(0.5),
		Q3:       sample.Quantile(0.75),
		Outliers: []float64{},
	}
	iqr := box.Q3 - box.Q1
	lowFence, highFence := box.Q1-1.5*iqr, box.Q3+1.5*iqr

	box.LowerWhisker, box.UpperWhisker = box.Q1, box.Q3
	for _, v := range sample.Xs {
		if v < lowFence || v > highFence {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		box.LowerWhisker = math.Min(box.LowerWhisker, v)
		box.UpperWhisker = math.Max(box.UpperWhisker, v)
	}
	sort.Float64s(box.Outliers)
	return box, nil
}

// Render рисует ящик в одну строку: ├──[  │  ]──┤, выбросы отмечены o
func (p *BoxPlot) Render(width int) string {
	width = max(width, 20)
	lo, hi := p.LowerWhisker, p.UpperWhisker
	for _, o := range p.Outliers {
		lo, hi = math.Min(lo, o), math.Max(hi, o)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	col := func(v float64) int {
		return int(math.Round((v - lo) / (hi - lo) * float64(width-1)))
	}

	line := []rune(strings.Repeat(" ", width))
	for c := col(p.LowerWhisker); c <= col(p.UpperWhisker); c++ {
		line[c] = '─'
	}
	for c := col(p.Q1); c <= col(p.Q3); c++ {
		line[c] = '█'
	}
	line[col(p.LowerWhisker)] = '├'
	line[col(p.UpperWhisker)] = '┤'
	line[col(p.Median)] = '│'
	for _, o := range p.Outliers {
		line[col(o)] = 'o'
	}

	var b strings.Builder
	b.WriteString(string(line))
	b.WriteByte('\n')
	b.WriteString("min " + short(p.LowerWhisker) + "  Q1 " + short(p.Q1) + "  median " + short(p.Median) +
		"  Q3 " + short(p.Q3) + "  max " + short(p.UpperWhisker))
	b.WriteByte('\n')
	return b.String()
}

func short(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
