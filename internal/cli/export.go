package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"tradelog/internal/logging"
)

// addExportCommand adds the JSON export command.
func addExportCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "export <file.json>",
		Short: "Export trades to a JSON file",
		Long:  "Write the filtered trade collection to a JSON file as an array of normalized trades.",
		Example: `  tradelog export trades.json
  tradelog export btc.json --symbol BTCUSDT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			trades, err := loadFilteredTrades(ctx, app, cmd)
			if err != nil {
				output.Error("Failed to load trades: %v", err)
				return err
			}

			data, err := json.MarshalIndent(trades, "", "  ")
			if err != nil {
				output.Error("Failed to encode trades: %v", err)
				return err
			}

			path := args[0]
			if err := os.WriteFile(path, data, 0644); err != nil {
				output.Error("Failed to write %s: %v", path, err)
				return err
			}

			logging.LogExport(app.Logger, path, len(trades))

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"file":   path,
					"trades": len(trades),
				})
			}

			output.Success("✓ Exported %s to %s", tradeCountLabel(len(trades)), path)
			return nil
		},
	}

	addFilterFlags(cmd)
	rootCmd.AddCommand(cmd)
}
