// Package commands команды консольной утилиты calculator.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	conf "github.com/ERRORIK404/Scientific_Calculator/pkg/config"
)

var (
	envFile string
	debug   bool
	cfg     *conf.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:           "calculator",
		Short:         "Scientific calculator with plotting, statistics and symbolic math",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := conf.LoadConfig(envFile)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(tuiCmd(), evalCmd(), serveCmd(), remoteCmd(), tokenCmd())
	root.SetErr(os.Stderr)
	return root.Execute()
}
