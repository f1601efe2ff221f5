// cmd/cli/main.go
package main

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/keshon/wavebot/internal/storage"
	v "github.com/keshon/wavebot/internal/version"
)

type cliConfig struct {
	StoragePath string `env:"STORAGE_PATH" envDefault:"datastore.json"`
}

var rootCmd = &cobra.Command{
	Use:          "wavebot-cli",
	Short:        "Operator tools for " + v.AppName,
	Long:         `Inspect and edit the bot's datastore and list the registered command paths.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	_ = godotenv.Load()

	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		cfg.StoragePath = "datastore.json"
	}
	rootCmd.PersistentFlags().String("storage", cfg.StoragePath, "Path to the datastore file")
}

// openStore opens the datastore named by --storage.
func openStore(cmd *cobra.Command) (*storage.Storage, error) {
	path, err := cmd.Flags().GetString("storage")
	if err != nil {
		return nil, err
	}
	store, err := storage.New(path)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", path, err)
	}
	return store, nil
}
