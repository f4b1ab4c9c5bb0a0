// Package cli implements workoutctl, the operator tool for the workout
// backend: schema migration, catalog seeding, table export and import, and
// shared-link issue and inspection without going through HTTP.
package cli

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-workout-backend/internal/config"
	"github.com/tbourn/go-workout-backend/internal/repo"
)

// Opener opens the database for a command.
type Opener func(cfg config.DBConfig) (*gorm.DB, error)

// Options configure the root command. Zero values use the environment and
// repo.Open.
type Options struct {
	Open    Opener
	LoadEnv bool
}

// app is the state shared by subcommands once the root pre-run completed.
type app struct {
	opts Options
	cfg  config.Config

	driver, path, url string

	db *gorm.DB
}

// NewRootCmd builds the workoutctl command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Open == nil {
		opts.Open = func(cfg config.DBConfig) (*gorm.DB, error) { return repo.Open(cfg, false) }
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "workoutctl",
		Short:         "Operate the workout tracker database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.driver, "db-driver", "", "database driver: sqlite or postgres (default $DB_DRIVER)")
	root.PersistentFlags().StringVar(&a.path, "db-path", "", "sqlite file (default $DB_PATH)")
	root.PersistentFlags().StringVar(&a.url, "database-url", "", "postgres DSN (default $DATABASE_URL)")

	root.AddCommand(a.migrateCmd())
	root.AddCommand(a.seedCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.linkCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.opts.LoadEnv {
		_ = godotenv.Load()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.driver != "" {
		cfg.DB.Driver = a.driver
	}
	if a.path != "" {
		cfg.DB.Path = a.path
	}
	if a.url != "" {
		cfg.DB.URL = a.url
	}
	a.cfg = cfg

	db, err := a.opts.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("open %s database: %w", cfg.DB.Driver, err)
	}
	a.db = db
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	a.db = nil
	return sqlDB.Close()
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := repo.AutoMigrate(a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d tables\n", len(repo.Models()))
			return nil
		},
	}
}

func printCounts(w io.Writer, verb string, counts []repo.TableCount) {
	total := 0
	for _, c := range counts {
		fmt.Fprintf(w, "%-22s %6d\n", c.Table, c.Rows)
		total += c.Rows
	}
	fmt.Fprintf(w, "%s %d rows across %d tables\n", verb, total, len(counts))
}
