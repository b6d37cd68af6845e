package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-answer/internal/httpserver"
)

var (
	flagSubject string
	flagTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Issue a bearer token for POST /api/archive/refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AdminSecret == "" {
			return fmt.Errorf("ADMIN_JWT_SECRET is not set")
		}
		tok, exp, err := httpserver.SignAdminToken(cfg.AdminSecret, flagSubject, flagTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&flagSubject, "subject", "admin", "token subject")
	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", 24*time.Hour, "token lifetime")
}
