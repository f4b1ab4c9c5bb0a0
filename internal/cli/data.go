package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-workout-backend/internal/catalog"
	"github.com/tbourn/go-workout-backend/internal/repo"
	"github.com/tbourn/go-workout-backend/internal/services"
)

func (a *app) seedCmd() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data",
	}

	var file string
	exercises := &cobra.Command{
		Use:     "exercises",
		Short:   "Add catalog exercises that are not present yet",
		Example: "workoutctl seed exercises --file ./catalog.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := catalog.Default()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				if entries, err = catalog.Load(f); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
			}
			if err := repo.AutoMigrate(a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			svc := &services.ExerciseService{DB: a.db}
			added, err := svc.Seed(cmd.Context(), entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %d of %d exercises\n", added, len(entries))
			return nil
		},
	}
	exercises.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file (default: built-in catalog)")

	seed.AddCommand(exercises)
	return seed
}

func (a *app) exportCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every table to <dir>/<table>.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts, err := repo.ExportTables(cmd.Context(), a.db, dir)
			if err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), "exported", counts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "target directory")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load <dir>/<table>.json files written by export",
		Long: "Load table files in dependency order inside one transaction. " +
			"Rows whose id already exists are kept as they are.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !st.IsDir() {
				return errors.New(dir + " is not a directory")
			}
			if err := repo.AutoMigrate(a.db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			counts, err := repo.ImportTables(cmd.Context(), a.db, dir)
			if err != nil {
				return err
			}
			printCounts(cmd.OutOrStdout(), "imported", counts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "source directory")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}
