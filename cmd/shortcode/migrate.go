package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paraglidehq/shortcode/postgres"
)

func newMigrateCmd(o *rootOptions) *cobra.Command {
	var (
		dsn     string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Install shortcode_encode and shortcode_decode into PostgreSQL",
		Long: `Store the active configuration in PostgreSQL and install SQL functions
that produce the same codes as this tool. Fails if the database already
holds a different configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				return errors.New("--dsn is required")
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db, o.codec.Config()); err != nil {
				return err
			}
			log.Infof("installed shortcode functions (base %d, offset %d)", o.codec.Base(), o.codec.Offset())
			return nil
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "migration timeout")
	return cmd
}
