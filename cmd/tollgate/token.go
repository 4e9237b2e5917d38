package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389/tollgate/internal/auth"
	"github.com/2389/tollgate/internal/config"
)

// newTokenCmd issues a token offline with the configured secret. Useful for
// smoke-testing protected routes without going through /auth/login.
func newTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject = strings.TrimSpace(subject)
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}

			cfg, err := config.Load(getConfigPath())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			codec, err := auth.NewJWTCodec([]byte(cfg.Auth.JWTSecret))
			if err != nil {
				return fmt.Errorf("creating token codec: %w", err)
			}

			token, err := codec.Issue(subject)
			if err != nil {
				return fmt.Errorf("issuing token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Now().Add(auth.TokenTTL).UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject (user ID) to embed in the token")
	return cmd
}
