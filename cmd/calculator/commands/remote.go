package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	remote "github.com/ERRORIK404/Scientific_Calculator/internal/remote_application"
)

func remoteCmd() *cobra.Command {
	var (
		addr    string
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remote [expression]",
		Short: "Evaluate an expression in your server session over gRPC",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.GRPC_ADDR
			}
			client, err := remote.Dial(addr, token)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			result, err := client.Evaluate(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "gRPC address (default GRPC_ADDR)")
	cmd.Flags().StringVar(&token, "token", "", "JWT from the token command")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func tokenCmd() *cobra.Command {
	var login, password, url string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Log in through the HTTP API and print a JWT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = "http://" + cfg.HTTP_ADDR
				if strings.HasPrefix(cfg.HTTP_ADDR, ":") {
					url = "http://localhost" + cfg.HTTP_ADDR
				}
			}
			token, err := remote.Login(cmd.Context(), http.DefaultClient, url, login, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&login, "login", "", "account login")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&url, "url", "", "HTTP API base URL (default from HTTP_ADDR)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
