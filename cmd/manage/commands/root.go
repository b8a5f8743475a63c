package commands

import (
	"fmt"
	"os"

	"go-candidate-backend/config"
	"go-candidate-backend/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL   string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "manage",
	Short: "Administrative tasks for the candidate backend",
	Long: `manage runs one-off tasks against the candidate backend's storage.

Commands:
  migrate  - Create the candidates and resumes tables
  seed     - Insert sample candidates when the store is empty
  openapi  - Print the OpenAPI document`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(migrateCmd, seedCmd, openapiCmd)
}

// loadConfig reads the environment and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dbURL != "" {
		cfg.DBUrl = dbURL
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger.InitWithWriter(os.Stderr, level)
	return cfg, nil
}
