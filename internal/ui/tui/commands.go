package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
)

// cmdExport пишет уже собранный документ, сама сессия в команду не передаётся
func cmdExport(dir, content string, deps Deps) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, session.ExportFileName(deps.Now()))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return exportDoneMsg{path: path, err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func cmdSavePreferences(path string, prefs conf.Preferences) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return preferencesSavedMsg{err: conf.SavePreferences(path, prefs)}
	}
}
