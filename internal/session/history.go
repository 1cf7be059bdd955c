package session

import (
	"strings"
	"time"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
	structs "github.com/ERRORIK404/Scientific_Calculator/pkg/structs"
)

const (
	// Сколько последних записей показывается на экране, хранится до structs.HistoryLimit
	VisibleHistory = 10
	ExportHeader   = "=== ADVANCED CALCULATOR HISTORY ==="
)

// History возвращает копию всей истории, новые записи первыми
func (s *Session) History() []structs.HistoryEntry {
	return s.history.Entries()
}

// RecentHistory возвращает записи, которые показываются пользователю
func (s *Session) RecentHistory() []structs.HistoryEntry {
	entries := s.history.Entries()
	if len(entries) > VisibleHistory {
		entries = entries[:VisibleHistory]
	}
	return entries
}

func (s *Session) ClearHistory() {
	s.history.Clear()
}

// ExportHistory собирает текстовый документ для скачивания. Состояние не меняется
func (s *Session) ExportHistory() (string, error) {
	entries := s.history.Entries()
	if len(entries) == 0 {
		return "", locerr.ErrNothingToExport
	}

	var b strings.Builder
	b.WriteString(ExportHeader)
	b.WriteString("\n\n")
	for _, entry := range entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// ExportFileName возвращает имя файла выгрузки, например calculator_history_20261015_093000.txt
func ExportFileName(now time.Time) string {
	return "calculator_history_" + now.Format("20060102_150405") + ".txt"
}
