package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	resetLogs  bool
	resetCoins bool
	resetCups  bool
	resetAll   bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored state",
	Long:  "Reset clears selected parts of the persisted state: the drink ledger, the coin balance, or cup ownership and selection.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if resetAll {
			resetLogs, resetCoins, resetCups = true, true, true
		}
		if !resetLogs && !resetCoins && !resetCups {
			return fmt.Errorf("nothing to reset: pass --logs, --coins, --cups or --all")
		}

		backend, closer, err := openBackend()
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx := cmd.Context()
		habits := newHabitService(backend)

		if resetLogs {
			if err := habits.ClearLogs(ctx); err != nil {
				return fmt.Errorf("clear logs: %w", err)
			}
			slog.Info("Drink ledger cleared")
		}
		if resetCoins {
			if err := habits.ResetCoins(ctx); err != nil {
				return fmt.Errorf("reset coins: %w", err)
			}
			slog.Info("Coin balance reset")
		}
		if resetCups {
			if err := habits.ResetCups(ctx); err != nil {
				return fmt.Errorf("reset cups: %w", err)
			}
			slog.Info("Cup ownership reset")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetLogs, "logs", false, "clear the drink ledger")
	resetCmd.Flags().BoolVar(&resetCoins, "coins", false, "reset the coin balance")
	resetCmd.Flags().BoolVar(&resetCups, "cups", false, "reset cup ownership and selection")
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "reset everything")
	rootCmd.AddCommand(resetCmd)
}
