package tui

import (
	"log/slog"
	"time"

	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
)

type Deps struct {
	Preferences conf.Preferences
	// Куда сохранять настройки после смены точности. Пусто, значит не сохранять
	PreferencesPath string
	// Каталог для файлов выгрузки истории
	ExportDir string

	Now    func() time.Time
	Logger *slog.Logger
}
