package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/analytics"
)

// addStatsCommands adds the performance analysis commands.
func addStatsCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newEquityCmd(app))
	rootCmd.AddCommand(newDailyCmd(app))
	rootCmd.AddCommand(newHourlyCmd(app))
}

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show headline performance metrics",
		Long:  "Compute win rate, PnL totals, drawdown and timing statistics over the filtered trade collection.",
		Example: `  tradelog stats
  tradelog stats --symbol BTCUSDT --from 2024-01-01 --to 2024-03-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			m := analytics.ComputeMetrics(trades)
			curve := analytics.BuildEquityCurve(trades)
			maxDDPct := analytics.MaxDrawdownPercent(curve)
			worst := analytics.WorstTradingHour(analytics.PnLByHour(trades))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"metrics":            m,
					"maxDrawdownPercent": maxDDPct,
					"worstHour":          worst,
				})
			}

			if len(trades) == 0 {
				output.Info("No trades match the current filter.")
				output.Println()
				output.Dim("Tip: load a CSV first with 'tradelog import <file.csv>'.")
				return nil
			}

			output.Bold("Summary")
			output.Printf("  Total Trades:  %d\n", m.TradeCount)
			output.Printf("  Win Rate:      %s\n", FormatRate(m.WinRate))
			output.Printf("  Total PnL:     %s\n", output.FormatPnL(m.TotalPnL))
			output.Printf("  Total Fees:    %s\n", FormatMoney(m.TotalFees))
			output.Printf("  Gross PnL:     %s\n", output.FormatPnL(m.GrossPnL))
			output.Println()

			output.Bold("Performance")
			output.Printf("  Avg Win:       %s\n", FormatMoney(m.AvgWin))
			output.Printf("  Avg Loss:      %s\n", FormatMoney(m.AvgLoss))
			output.Printf("  Largest Win:   %s\n", FormatMoney(m.LargestWin))
			output.Printf("  Largest Loss:  %s\n", FormatMoney(m.LargestLoss))
			output.Printf("  Avg Duration:  %s\n", FormatDuration(m.AvgDurationMinutes))
			output.Printf("  Max Drawdown:  %s\n", output.FormatPercent(maxDDPct))
			output.Printf("  Worst Hour:    %s (%s)\n", FormatHour(worst.Hour), output.FormatPnL(worst.PnL))
			output.Println()

			output.Bold("Direction")
			output.Printf("  Long/Short:    %d/%d\n", m.LongCount, m.ShortCount)

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the equity and drawdown curve",
		Long:  "Fold the filtered trades into a cumulative equity curve with rolling peak and drawdown, in close-time order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			curve := analytics.BuildEquityCurve(trades)

			if output.IsJSON() {
				return output.JSON(curve)
			}

			if len(curve) == 0 {
				output.Info("No trades match the current filter.")
				return nil
			}

			table := NewTable(output, "Time", "PnL", "Equity", "Peak", "Drawdown")
			for _, p := range curve {
				table.AddRow(
					FormatTimestamp(p.Time),
					output.FormatPnL(p.PnL),
					FormatMoney(p.Equity),
					FormatMoney(p.Peak),
					FormatMoney(p.Drawdown),
				)
			}
			table.Render()

			output.Println()
			output.Printf("Max drawdown: %s (%s)\n",
				FormatMoney(analytics.MaxDrawdown(curve)),
				FormatPercent(analytics.MaxDrawdownPercent(curve)))

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newDailyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show PnL per UTC calendar day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			days := analytics.PnLByDay(trades)

			if output.IsJSON() {
				return output.JSON(days)
			}

			if len(days) == 0 {
				output.Info("No trades match the current filter.")
				return nil
			}

			table := NewTable(output, "Day", "PnL")
			for _, d := range days {
				table.AddRow(d.Day, output.FormatPnL(d.PnL))
			}
			table.Render()

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

func newHourlyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hourly",
		Short: "Show PnL per UTC hour of day",
		Long:  "Sum PnL into 24 hour-of-day buckets (all hours present, zero-filled) and mark the worst trading hour.",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			hours := analytics.PnLByHour(trades)
			worst := analytics.WorstTradingHour(hours)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"hours":     hours,
					"worstHour": worst,
				})
			}

			table := NewTable(output, "Hour", "PnL", "")
			for _, h := range hours {
				marker := ""
				if h.Hour == worst.Hour {
					marker = output.Red("◀ worst")
				}
				table.AddRow(FormatHour(h.Hour), output.FormatPnL(h.PnL), marker)
			}
			table.Render()

			return nil
		},
	}

	addFilterFlags(cmd)
	return cmd
}

// tradeCountLabel pluralizes trade counts for summaries.
func tradeCountLabel(n int) string {
	if n == 1 {
		return "1 trade"
	}
	return fmt.Sprintf("%d trades", n)
}
