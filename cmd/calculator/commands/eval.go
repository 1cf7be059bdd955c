package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ERRORIK404/Scientific_Calculator/internal/session"
)

func evalCmd() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate one expression and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("precision") {
				precision = cfg.DEFAULT_PRECISION
			}
			if precision < session.MinPrecision || precision > session.MaxPrecision {
				return fmt.Errorf("precision must be between %d and %d", session.MinPrecision, session.MaxPrecision)
			}

			result, err := session.Compute(strings.Join(args, " "), precision)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().IntVar(&precision, "precision", session.DefaultPrecision, "decimal places for non-integer results")
	return cmd
}
