package cli

import (
	"context"

	"github.com/spf13/cobra"

	"tradelog/internal/analytics"
	apperrors "tradelog/internal/errors"
	"tradelog/internal/models"
)

// addFilterFlags registers the shared trade filter flags on an analysis
// command.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "ALL", "filter by symbol (ALL for no constraint)")
	cmd.Flags().String("from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end date, inclusive (YYYY-MM-DD)")
}

// filterFromFlags builds a Filter from a command's flags.
func filterFromFlags(cmd *cobra.Command) analytics.Filter {
	symbol, _ := cmd.Flags().GetString("symbol")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	return analytics.Filter{Symbol: symbol, From: from, To: to}
}

// loadFilteredTrades reads the stored trade collection and applies the
// command's filter flags.
func loadFilteredTrades(ctx context.Context, app *App, cmd *cobra.Command) ([]models.Trade, error) {
	if app.Store == nil {
		return nil, apperrors.ErrStorageUnavailable
	}

	trades, err := app.Store.GetTrades(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "loading trades")
	}
	return analytics.Apply(trades, filterFromFlags(cmd)), nil
}
