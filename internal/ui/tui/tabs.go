package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ERRORIK404/Scientific_Calculator/internal/plot"
	"github.com/ERRORIK404/Scientific_Calculator/internal/statistics"
	"github.com/ERRORIK404/Scientific_Calculator/internal/symbolic"
)

var operations = []symbolic.Operation{symbolic.Derivative, symbolic.Integral, symbolic.Limit}

// updateInputTab обслуживает вкладки с полем ввода: enter запускает расчёт,
// pgup/pgdown листают результат, остальное уходит в поле
func (m model) updateInputTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		switch m.active {
		case tabPlot:
			m.runPlot()
		case tabStatistics:
			m.runStatistics()
		case tabAdvanced:
			m.runSymbolic()
		}
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd

	case "ctrl+o":
		if m.active == tabAdvanced {
			m.operation = (m.operation + 1) % len(operations)
		}
		return m, nil

	case "up", "down":
		if m.active == tabAdvanced {
			m.advFocus = 1 - m.advFocus
			m.advInput.Blur()
			m.pointInput.Blur()
			m.focusedInput().Focus()
		}
		return m, nil
	}

	in := m.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m *model) plotOptions() plot.Options {
	p := m.deps.Preferences.Plot
	opts := plot.Options{XMin: p.XMin, XMax: p.XMax, Points: p.Points, ShowGrid: true, ShowLegend: true}
	if p.ShowGrid != nil {
		opts.ShowGrid = *p.ShowGrid
	}
	if p.ShowLegend != nil {
		opts.ShowLegend = *p.ShowLegend
	}
	return opts
}

func (m *model) runPlot() {
	expression := strings.TrimSpace(m.plotInput.Value())
	series, err := plot.Sample(expression, m.plotOptions())
	if err != nil {
		m.log.Info("plot.failed", "expression", expression, "err", err)
		m.setError(err)
		return
	}
	m.setResult(plot.Render(series, m.output.Width, max(m.output.Height-3, 5)))
	m.setToast("")
}

func (m *model) runStatistics() {
	data, err := statistics.ParseData(m.statsInput.Value())
	if err != nil {
		m.toast, m.isError = err.Error(), true
		return
	}
	summary, err := statistics.Describe(data)
	if err != nil {
		m.setError(err)
		return
	}

	var rows [][2]string
	for _, r := range summary.Rows(m.calc.Precision()) {
		rows = append(rows, [2]string{r.Name, r.Value})
	}

	var b strings.Builder
	b.WriteString(table(rows))
	if h, err := statistics.NewHistogram(data); err == nil {
		b.WriteString("\nHistogram\n")
		b.WriteString(h.Render(m.output.Width))
	}
	if p, err := statistics.NewBoxPlot(data); err == nil {
		b.WriteString("\nBox plot\n")
		b.WriteString(p.Render(m.output.Width))
	}
	m.setResult(b.String())
	m.setToast("")
}

func (m *model) runSymbolic() {
	op := operations[m.operation]
	res, err := symbolic.Compute(m.advInput.Value(), op, m.pointInput.Value())
	if err != nil {
		m.log.Info("symbolic.failed", "operation", op, "err", err)
		m.setError(err)
		return
	}
	rows := [][2]string{
		{"Input", res.Input},
		{"Result", res.Output},
		{"Summary", res.Summary},
		{"LaTeX", res.LaTeX},
	}
	if res.Value != nil {
		rows = append(rows, [2]string{"Value", fmt.Sprint(*res.Value)})
	}
	m.setResult(table(rows))
	m.setToast("")
}

func (m model) plotView() string {
	return m.inputView("f(x) =", m.plotInput.View(),
		fmt.Sprintf("enter plot • x from %g to %g", m.deps.Preferences.Plot.XMin, m.deps.Preferences.Plot.XMax))
}

func (m model) statisticsView() string {
	return m.inputView("Data:", m.statsInput.View(), "enter analyze • pgup/pgdown scroll")
}

func (m model) advancedView() string {
	var ops []string
	for i, op := range operations {
		style := m.theme.Tab
		if i == m.operation {
			style = m.theme.ActiveTab
		}
		ops = append(ops, style.Render(string(op)))
	}
	input := m.advInput.View()
	if operations[m.operation] == symbolic.Limit {
		input += "\n" + m.pointInput.View()
	}
	return strings.Join(ops, " ") + "\n" +
		m.inputView("f(x) =", input, "enter compute • ctrl+o operation • up/down field")
}

func (m model) inputView(label, input, help string) string {
	return m.theme.Card.Render(label+" "+input) + "\n" +
		m.output.View() + "\n" +
		m.theme.Help.Render(help)
}
