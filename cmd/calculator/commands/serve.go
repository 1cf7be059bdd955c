package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	db "github.com/ERRORIK404/Scientific_Calculator/database"
	app "github.com/ERRORIK404/Scientific_Calculator/internal/calculator_application"
	"github.com/ERRORIK404/Scientific_Calculator/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and gRPC APIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.RequireSecret(); err != nil {
				return err
			}

			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			cleanup, err := logger.Setup(logger.Config{Root: wd, Debug: debug, Stderr: true})
			if err != nil {
				return err
			}
			defer cleanup()

			database, err := db.InitDB(cfg.DB_PATH)
			if err != nil {
				logger.L().Error("db.init.failed", "path", cfg.DB_PATH, "err", err)
				return err
			}
			defer database.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.New(cfg, database).Run(ctx)
		},
	}
}
