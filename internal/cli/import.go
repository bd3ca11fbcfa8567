package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradelog/internal/errors"
	"tradelog/internal/ingest"
	"tradelog/internal/logging"
)

// addImportCommand adds the CSV import command.
func addImportCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from a CSV file",
		Long: `Import a CSV of closed trades, replacing the stored collection.

Column names are matched against known aliases per field (trade_id/id,
symbol/market/pair, side/direction, and so on); missing or malformed
values fall back to defaults instead of rejecting the row. Journal notes
are keyed by trade ID and survive re-imports.`,
		Example: `  tradelog import trades.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if app.Store == nil {
				output.Error("Store not initialized.")
				return apperrors.ErrStorageUnavailable
			}

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				output.Error("Cannot open %s: %v", path, err)
				return err
			}
			defer f.Close()

			trades, err := ingest.ParseTrades(f)
			if err != nil {
				// Parse failure leaves the stored collection untouched.
				output.Error("Import failed: %v", err)
				return err
			}

			if err := app.Store.ReplaceTrades(ctx, trades); err != nil {
				output.Error("Failed to store trades: %v", err)
				return err
			}

			logging.LogImport(app.Logger, path, len(trades))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"file":   path,
					"trades": len(trades),
				})
			}

			output.Success("✓ Imported %d trades from %s", len(trades), path)
			return nil
		},
	}

	rootCmd.AddCommand(cmd)
}
