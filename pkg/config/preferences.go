package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Preferences настройки терминального интерфейса из YAML
type Preferences struct {
	Precision int             `yaml:"precision"`
	Accent    string          `yaml:"accent"`
	Plot      PlotPreferences `yaml:"plot"`
}

type PlotPreferences struct {
	XMin       float64 `yaml:"x_min"`
	XMax       float64 `yaml:"x_max"`
	Points     int     `yaml:"points"`
	ShowGrid   *bool   `yaml:"show_grid"`
	ShowLegend *bool   `yaml:"show_legend"`
}

func DefaultPreferences() Preferences {
	on := true
	return Preferences{
		Precision: defaultPrecision,
		Accent:    "#7D56F4",
		Plot: PlotPreferences{
			XMin:       -10,
			XMax:       10,
			Points:     1000,
			ShowGrid:   &on,
			ShowLegend: &on,
		},
	}
}

// LoadPreferences накладывает файл на значения по умолчанию. Нет файла, значит умолчания
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences %s: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("parse preferences %s: %w", path, err)
	}
	if err := prefs.validate(); err != nil {
		return DefaultPreferences(), fmt.Errorf("preferences %s: %w", path, err)
	}
	return prefs, nil
}

func (p Preferences) validate() error {
	if p.Precision < 2 || p.Precision > 15 {
		return fmt.Errorf("precision %d out of range [2, 15]", p.Precision)
	}
	if p.Plot.XMin >= p.Plot.XMax {
		return fmt.Errorf("plot x_min must be less than x_max")
	}
	if p.Plot.Points < 100 || p.Plot.Points > 10000 {
		return fmt.Errorf("plot points %d out of range [100, 10000]", p.Plot.Points)
	}
	return nil
}

// SavePreferences записывает настройки, чтобы точность и оформление пережили перезапуск
func SavePreferences(path string, p Preferences) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
