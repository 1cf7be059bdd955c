package plot

import (
	"math"
	"strconv"
	"strings"
)

const (
	pointRune = '•'
	gridRune  = '·'
	hAxisRune = '─'
	vAxisRune = '│'
	crossRune = '┼'
)

// Render рисует график в прямоугольнике width x height символов
func Render(s *Series, width, height int) string {
	width = max(width, 20)
	height = max(height, 5)

	ymin, ymax, ok := s.YRange()
	if !ok {
		return "no values to plot\n"
	}
	if ymin == ymax {
		ymin--
		ymax++
	}
	xmin, xmax := s.Options.XMin, s.Options.XMax

	col := func(x float64) int {
		return int(math.Round((x - xmin) / (xmax - xmin) * float64(width-1)))
	}
	row := func(y float64) int {
		return int(math.Round((ymax - y) / (ymax - ymin) * float64(height-1)))
	}

	canvas := make([][]rune, height)
	for r := range canvas {
		canvas[r] = []rune(strings.Repeat(" ", width))
	}

	if s.Options.ShowGrid {
		for r := 0; r < height; r += 4 {
			for c := 0; c < width; c += 2 {
				canvas[r][c] = gridRune
			}
		}
		for c := 0; c < width; c += 10 {
			for r := 0; r < height; r++ {
				canvas[r][c] = gridRune
			}
		}
	}

	axisRow, axisCol := -1, -1
	if ymin <= 0 && 0 <= ymax {
		axisRow = row(0)
		for c := range canvas[axisRow] {
			canvas[axisRow][c] = hAxisRune
		}
	}
	if xmin <= 0 && 0 <= xmax {
		axisCol = col(0)
		for r := range canvas {
			canvas[r][axisCol] = vAxisRune
		}
	}
	if axisRow >= 0 && axisCol >= 0 {
		canvas[axisRow][axisCol] = crossRune
	}

	for i, x := range s.X {
		y := s.Y[i]
		if math.IsNaN(y) {
			continue
		}
		canvas[row(y)][col(x)] = pointRune
	}

	top, bottom := label(ymax), label(ymin)
	margin := max(len(top), len(bottom))

	var b strings.Builder
	for r, line := range canvas {
		prefix := ""
		switch r {
		case 0:
			prefix = top
		case height - 1:
			prefix = bottom
		}
		b.WriteString(strings.Repeat(" ", margin-len(prefix)))
		b.WriteString(prefix)
		b.WriteString(" ┤")
		b.WriteString(string(line))
		b.WriteByte('\n')
	}

	left, right := label(xmin), label(xmax)
	gap := max(width-len(left)-len(right), 1)
	b.WriteString(strings.Repeat(" ", margin+2))
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')

	if s.Options.ShowLegend {
		b.WriteString(strings.Repeat(" ", margin+2))
		b.WriteString(string(pointRune))
		b.WriteString(" f(x) = ")
		b.WriteString(s.Expression)
		b.WriteByte('\n')
	}
	return b.String()
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
