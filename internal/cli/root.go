// Package cli wires configuration, logging and storage into the cuppa
// commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cuppa/internal/config"
	"cuppa/internal/kv"
	"cuppa/internal/log"
	"cuppa/internal/services"
	"cuppa/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "cuppa",
	Short:         "Drink habit tracker",
	Long:          "cuppa tracks drink purchases against a monthly budget and rewards logging with coins spendable on cup skins.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; absence is not an error.
		_ = godotenv.Load()

		cfg = config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := log.New(log.Config{
			Level:     log.ParseLevel(cfg.LogLevel),
			Component: "cuppa",
		})
		log.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openBackend builds the configured kv backend. The returned closer is a
// no-op for the memory backend.
func openBackend() (kv.Store, io.Closer, error) {
	switch cfg.DataBackend {
	case "sqlite":
		db, err := kv.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		return db, db, nil
	default:
		return kv.NewMemory(), nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// newHabitService assembles the service stack on top of the given backend.
func newHabitService(backend kv.Store) *services.HabitService {
	return services.NewHabitService(
		store.NewDrinkLogStore(backend),
		store.NewBudgetStore(backend),
		store.NewCoinStore(backend),
		store.NewCupStore(backend),
	)
}
