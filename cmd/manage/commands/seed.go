package commands

import (
	"fmt"

	"go-candidate-backend/internal/app"
	"go-candidate-backend/internal/seed"

	"github.com/spf13/cobra"
)

var seedMigrate bool

// seedCmd loads sample data
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample candidates and resumes",
	Long: `Insert a few sample candidates with resumes. Nothing is written when the
store already holds candidates.

Examples:
  manage seed
  manage seed --migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		storage, err := app.OpenStorage(cmd.Context(), cfg, seedMigrate)
		if err != nil {
			return err
		}
		defer storage.Close()

		uc := app.NewUsecases(storage.Store, nil)
		result, err := seed.Run(cmd.Context(), uc.Candidates, uc.Resumes)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Skipped {
			fmt.Fprintln(out, "Store already has candidates, skipping seed")
			return nil
		}
		fmt.Fprintf(out, "Seeded %d candidates and %d resumes\n", result.Candidates, result.Resumes)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedMigrate, "migrate", false, "Create the schema before seeding")
}
