package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// Константы вставляются в строку ввода как литералы
const (
	piLiteral = "3.141592653589793"
	eLiteral  = "2.718281828459045"
)

// Заглавные буквы заняты командами, имена функций набираются строчными
var calculatorKeys = [][2]string{
	{"0-9 + - * / % ( ) . !", "type expression"},
	{"enter, =", "evaluate"},
	{"C", "clear"},
	{"N", "toggle sign"},
	{"P, E", "insert pi, e"},
	{"[, ]", "precision down, up"},
	{"X", "export history"},
	{"H", "clear history"},
}

func (m model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "enter", "=":
		expression := m.calc.Buffer()
		result, err := m.calc.Evaluate()
		if err != nil {
			m.log.Info("session.evaluate.failed", "expression", expression, "err", err)
			m.setError(err)
			return m, nil
		}
		m.setToast(expression + " = " + result)
		return m, nil

	case "C":
		m.calc.Clear()
		m.toast = ""
		return m, nil

	case "N":
		m.calc.ToggleSign()
		return m, nil

	case "P":
		m.calc.Append(piLiteral)
		return m, nil

	case "E":
		m.calc.Append(eLiteral)
		return m, nil

	case "[", "]":
		p := m.calc.Precision() - 1
		if key == "]" {
			p = m.calc.Precision() + 1
		}
		if err := m.calc.SetPrecision(p); err != nil {
			m.setError(err)
			return m, nil
		}
		m.deps.Preferences.Precision = p
		m.setToast("Precision " + strconv.Itoa(p))
		return m, cmdSavePreferences(m.deps.PreferencesPath, m.deps.Preferences)

	case "X":
		content, err := m.calc.ExportHistory()
		if err != nil {
			m.setError(err)
			return m, nil
		}
		return m, cmdExport(m.deps.ExportDir, content, m.deps)

	case "H":
		m.calc.ClearHistory()
		m.setToast("History cleared")
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.calc.Append(string(msg.Runes))
	case tea.KeySpace:
		m.calc.Append(" ")
	}
	return m, nil
}

func (m model) calculatorView() string {
	display := m.theme.Display.Width(max(m.width-sidebarWidth-10, 30)).Render(m.calc.Buffer())
	help := m.theme.Help.Render(table(calculatorKeys))
	return fmt.Sprintf("%s\n\n%s", display, help)
}
