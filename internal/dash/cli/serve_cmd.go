package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/dash/internal/dash/app"
	"github.com/aussiebroadwan/dash/internal/dash/seed"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			application, err := app.New(cfg, app.NewLogger(cfg))
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run(cmd.Context())
		},
	}
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}

			db, err := app.OpenStore(cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			if err := db.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.DatabaseFile)
			return err
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load roles, users and activity from a YAML fixture",
		Long: "Load roles, users and activity from a YAML fixture. Without --file the\n" +
			"built-in demo fixture is used. Existing roles and users are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fx, err := loadFixture(file)
			if err != nil {
				return err
			}

			cfg, err := opts.config()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg)
			ctx := slogx.WithContext(cmd.Context(), logger)

			db, err := app.OpenStore(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := &seed.Seeder{
				Store:    db,
				Users:    &service.UserService{Store: db, Issuer: cfg.Issuer},
				Activity: &service.ActivityService{Store: db},
			}
			res, err := seeder.Apply(ctx, fx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", res)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (default: built-in demo data)")
	return cmd
}

func loadFixture(file string) (seed.Fixture, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.Load(file)
}
