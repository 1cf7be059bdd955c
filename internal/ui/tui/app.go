// Package tui терминальный интерфейс калькулятора на bubbletea.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
)

type tab int

const (
	tabCalculator tab = iota
	tabPlot
	tabStatistics
	tabAdvanced
	tabCount
)

var tabNames = [tabCount]string{"Calculator", "Plot", "Statistics", "Advanced"}

const (
	defaultWidth  = 100
	defaultHeight = 30
	sidebarWidth  = 34
)

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	active tab
	width  int
	height int

	calc *session.Session

	plotInput  textinput.Model
	statsInput textinput.Model
	advInput   textinput.Model
	pointInput textinput.Model
	operation  int
	advFocus   int

	output viewport.Model
	// Содержимое области вывода для каждой вкладки кроме калькулятора
	results [tabCount]string

	toast   string
	isError bool
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.ExportDir == "" {
		deps.ExportDir = "."
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	newInput := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 512
		return in
	}

	m := model{
		theme:      NewTheme(deps.Preferences.Accent),
		deps:       deps,
		log:        log,
		width:      defaultWidth,
		height:     defaultHeight,
		calc:       session.New(session.WithPrecision(deps.Preferences.Precision), session.WithClock(deps.Now)),
		plotInput:  newInput("f(x), for example sin(x)/x"),
		statsInput: newInput("comma separated values, for example 1, 2, 2, 3"),
		advInput:   newInput("f(x), for example x**2 + 3*x"),
		pointInput: newInput("limit point, for example 0 or pi"),
		output:     viewport.New(defaultWidth-sidebarWidth-6, defaultHeight-12),
	}
	return m
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.output.Width = max(msg.Width-sidebarWidth-6, 20)
		m.output.Height = max(msg.Height-12, 5)
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.log.Error("history.export.failed", "path", msg.path, "err", msg.err)
			m.setError(fmt.Errorf("export: %w", msg.err))
			return m, nil
		}
		m.log.Info("history.exported", "path", msg.path)
		m.setToast("History exported to " + msg.path)
		return m, nil

	case preferencesSavedMsg:
		if msg.err != nil {
			m.log.Warn("preferences.save.failed", "err", msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m.switchTab((m.active + 1) % tabCount), nil
		case "shift+tab":
			return m.switchTab((m.active + tabCount - 1) % tabCount), nil
		}

		if m.active == tabCalculator {
			return m.updateCalculator(msg)
		}
		return m.updateInputTab(msg)
	}

	if m.active != tabCalculator {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) switchTab(t tab) model {
	m.active = t
	m.plotInput.Blur()
	m.statsInput.Blur()
	m.advInput.Blur()
	m.pointInput.Blur()
	if in := m.focusedInput(); in != nil {
		in.Focus()
	}
	m.output.SetContent(m.results[t])
	m.output.GotoTop()
	m.toast = ""
	return m
}

// focusedInput возвращает поле ввода активной вкладки
func (m *model) focusedInput() *textinput.Model {
	switch m.active {
	case tabPlot:
		return &m.plotInput
	case tabStatistics:
		return &m.statsInput
	case tabAdvanced:
		if m.advFocus == 1 {
			return &m.pointInput
		}
		return &m.advInput
	}
	return nil
}

func (m *model) setToast(s string) {
	m.toast = s
	m.isError = false
}

func (m *model) setError(err error) {
	m.toast = userMessage(err)
	m.isError = true
}

func (m *model) setResult(content string) {
	m.results[m.active] = content
	m.output.SetContent(content)
	m.output.GotoTop()
}

func (m model) View() string {
	var tabs []string
	for i, name := range tabNames {
		style := m.theme.Tab
		if tab(i) == m.active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(name))
	}
	header := m.theme.Title.Render("Scientific Calculator") + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch m.active {
	case tabCalculator:
		body = m.calculatorView()
	case tabPlot:
		body = m.plotView()
	case tabStatistics:
		body = m.statisticsView()
	case tabAdvanced:
		body = m.advancedView()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(max(m.width-sidebarWidth-4, 30)).Render(body),
		m.historyView(),
	)

	status := m.theme.Help.Render(fmt.Sprintf("precision %d • tab switch • esc quit", m.calc.Precision()))
	if m.toast != "" {
		style := m.theme.Toast
		if m.isError {
			style = m.theme.Error
		}
		status = style.Render(m.toast) + "\n" + status
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(header + "\n\n" + main + "\n" + status)
}

func (m model) historyView() string {
	entries := m.calc.RecentHistory()
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("History"))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(m.theme.Subtitle.Render("no calculations yet"))
	}
	for _, e := range entries {
		b.WriteString(clampString(e.String(), sidebarWidth-4))
		b.WriteString("\n")
	}
	return m.theme.Card.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}
