package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/analytics"
)

// addLeaderboardCommands adds the grouped performance commands.
func addLeaderboardCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Grouped performance summaries",
		Long:  "Rank symbols or order types by total PnL over the filtered trade collection.",
	}

	cmd.AddCommand(newSymbolLeaderboardCmd(app))
	cmd.AddCommand(newOrderTypeLeaderboardCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSymbolLeaderboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Rank symbols by total PnL",
		Example: `  tradelog leaderboard symbols
  tradelog leaderboard symbols --from 2024-01-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			perf := analytics.SymbolLeaderboard(trades)

			if output.IsJSON() {
				return output.JSON(perf)
			}

			if len(perf) == 0 {
				output.Info("No trades match the current filter.")
				return nil
			}

			table := NewTable(output, "Symbol", "Trades", "Win Rate", "Total PnL", "Avg PnL")
			for _, p := range perf {
				table.AddRow(
					TruncateString(p.Symbol, 16),
					fmt.Sprintf("%d", p.Trades),
					FormatRate(p.WinRate),
					output.FormatPnL(p.TotalPnL),
					FormatMoney(p.AvgPnL),
				)
			}
			table.Render()

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newOrderTypeLeaderboardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ordertypes",
		Short: "Rank order types by total PnL",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			perf := analytics.OrderTypeLeaderboard(trades)

			if output.IsJSON() {
				return output.JSON(perf)
			}

			if len(perf) == 0 {
				output.Info("No trades match the current filter.")
				return nil
			}

			table := NewTable(output, "Order Type", "Trades", "Win Rate", "Total PnL", "Avg PnL")
			for _, p := range perf {
				table.AddRow(
					TruncateString(p.OrderType, 16),
					fmt.Sprintf("%d", p.Trades),
					FormatRate(p.WinRate),
					output.FormatPnL(p.TotalPnL),
					FormatMoney(p.AvgPnL),
				)
			}
			table.Render()

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}
