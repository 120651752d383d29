// Command saberctl runs resolver lookups from the terminal and maintains the
// Memgraph institution catalogue.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/saber/internal/app"
	"github.com/agenthands/saber/internal/logging"
)

var (
	configPath string
	verbose    bool

	current *app.App

	// newApp is replaced in tests.
	newApp = func(ctx context.Context) (*app.App, error) {
		cfg, err := app.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		level := cfg.Server.LogLevel
		if verbose {
			level = "debug"
		} else if level == "info" {
			level = "warn"
		}
		logger, err := logging.New(level)
		if err != nil {
			return nil, err
		}
		return app.New(ctx, cfg, logger)
	}
)

var rootCmd = &cobra.Command{
	Use:           "saberctl",
	Short:         "Saber 11 institution resolver tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		err := current.Close(context.Background())
		current = nil
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default: $CONFIG_PATH or config/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	validateCmd.Flags().String("municipality", "", "municipality hint")
	catalogRemoveCmd.Flags().String("municipality", "", "municipality of the entry")

	catalogCmd.AddCommand(catalogListCmd, catalogImportCmd, catalogRemoveCmd)
	rootCmd.AddCommand(searchCmd, validateCmd, catalogCmd)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
