package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ERRORIK404/Scientific_Calculator/internal/ui/tui"
	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/logger"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}
}

func runTUI() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	cleanup, err := logger.Setup(logger.Config{Root: wd, Debug: debug})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
	} else {
		defer cleanup()
	}

	prefs, err := conf.LoadPreferences(cfg.PREFERENCES_FILE)
	if err != nil {
		logger.L().Warn("preferences.load.failed", "path", cfg.PREFERENCES_FILE, "err", err)
	}

	return tui.Run(tui.Deps{
		Preferences:     prefs,
		PreferencesPath: cfg.PREFERENCES_FILE,
		ExportDir:       wd,
		Logger:          logger.L(),
	})
}
