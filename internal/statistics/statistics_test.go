package statistics

import (
	"errors"
	"math"
	"strings"
	"testing"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseData(t *testing.T) {
	data, err := ParseData(" 1, 2.5 ,, -3e1, ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{1, 2.5, -30}
	if len(data) != len(want) {
		t.Fatalf("expected %v, got %v", want, data)
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, data)
		}
	}

	for _, bad := range []string{"1, two", "1; 2", "nan, 1", "inf"} {
		if _, err := ParseData(bad); err == nil {
			t.Errorf("ParseData(%q) expected error", bad)
		}
	}
}

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Count != 8 || !near(s.Mean, 5) || !near(s.Median, 4.5) {
		t.Fatalf("unexpected center %+v", s)
	}
	if s.Mode == nil || *s.Mode != 4 {
		t.Fatalf("expected mode 4, got %v", s.Mode)
	}
	if !near(s.Variance, 32.0/7) || !near(s.StdDev, math.Sqrt(32.0/7)) {
		t.Fatalf("expected sample variance, got %v", s.Variance)
	}
	if s.Min != 2 || s.Max != 9 || s.Range != 7 {
		t.Fatalf("unexpected bounds %+v", s)
	}
}

func TestDescribeOddMedianAndNoMode(t *testing.T) {
	s, err := Describe([]float64{5, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	if !near(s.Median, 3) {
		t.Fatalf("expected median 3, got %v", s.Median)
	}
	if s.Mode != nil {
		t.Fatalf("distinct values have no unique mode, got %v", *s.Mode)
	}
	rows := s.Rows(2)
	if rows[3].Value != "no unique mode" || rows[1].Value != "3.00" || rows[0].Value != "3" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestModeTieTakesFirstSeen(t *testing.T) {
	s, err := Describe([]float64{3, 1, 3, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode == nil || *s.Mode != 3 {
		t.Fatalf("expected first seen mode 3, got %v", s.Mode)
	}
}

func TestInsufficientData(t *testing.T) {
	if _, err := Describe([]float64{1}); !errors.Is(err, locerr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := NewHistogram(nil); !errors.Is(err, locerr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := NewBoxPlot([]float64{1}); !errors.Is(err, locerr.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestHistogram(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	h, err := NewHistogram(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Counts) != 5 || len(h.Edges) != 6 {
		t.Fatalf("expected 5 bins, got %d", len(h.Counts))
	}
	var total uint
	for _, c := range h.Counts {
		total += c
	}
	if total != uint(len(data)) {
		t.Fatalf("every value must be counted, got %d", total)
	}
	if h.Edges[0] != 1 || h.Edges[5] != 10 {
		t.Fatalf("unexpected edges %v", h.Edges)
	}
	if !strings.Contains(h.Render(20), "█") {
		t.Fatalf("expected bars in histogram")
	}
}

func TestHistogramBinLimitAndFlatData(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}
	h, err := NewHistogram(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Counts) != MaxBins {
		t.Fatalf("expected %d bins, got %d", MaxBins, len(h.Counts))
	}

	flat, err := NewHistogram([]float64{7, 7, 7})
	if err != nil {
		t.Fatal(err)
	}
	if len(flat.Counts) != 1 || flat.Counts[0] != 3 {
		t.Fatalf("unexpected flat histogram %+v", flat)
	}
}

func TestBoxPlot(t *testing.T) {
	box, err := NewBoxPlot([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	if err != nil {
		t.Fatal(err)
	}
	if !near(box.Median, 5) {
		t.Fatalf("expected median 5, got %v", box.Median)
	}
	if len(box.Outliers) != 1 || box.Outliers[0] != 100 {
		t.Fatalf("expected 100 as outlier, got %v", box.Outliers)
	}
	if box.LowerWhisker != 1 || box.UpperWhisker != 8 {
		t.Fatalf("unexpected whiskers %v..%v", box.LowerWhisker, box.UpperWhisker)
	}
	if box.Q1 > box.Median || box.Median > box.Q3 {
		t.Fatalf("quartiles out of order %+v", box)
	}
	out := box.Render(40)
	if !strings.Contains(out, "o") || !strings.Contains(out, "median 5") {
		t.Fatalf("unexpected render:\n%s", out)
	}
}
