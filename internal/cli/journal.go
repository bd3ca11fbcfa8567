package cli

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradelog/internal/errors"
	"tradelog/internal/journal"
	"tradelog/internal/logging"
)

// addJournalCommands adds the per-trade note commands.
func addJournalCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Per-trade notes and tags",
		Long: `Attach free-text notes and tags to trades by trade ID.

Notes live alongside the trade database and are keyed by trade ID, so
they survive re-imports of the same CSV.`,
	}

	cmd.AddCommand(newJournalNoteCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalClearCmd(app))
	cmd.AddCommand(newJournalListCmd(app))

	rootCmd.AddCommand(cmd)
}

func journalStore(app *App) (*journal.Store, error) {
	if app.Journal == nil {
		return nil, apperrors.ErrStorageUnavailable
	}
	return app.Journal, nil
}

func newJournalNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note <trade-id>",
		Short: "Set or update a trade's note and tags",
		Example: `  tradelog journal note t1 --note "FOMO entry, exited late"
  tradelog journal note t1 --tags breakout,london`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			js, err := journalStore(app)
			if err != nil {
				output.Error("Journal unavailable: %v", err)
				return err
			}

			var patch journal.NotePatch
			if cmd.Flags().Changed("note") {
				note, _ := cmd.Flags().GetString("note")
				patch.Note = &note
			}
			if cmd.Flags().Changed("tags") {
				raw, _ := cmd.Flags().GetString("tags")
				tags := splitTags(raw)
				patch.Tags = &tags
			}

			tradeID := args[0]
			entry, err := js.Update(ctx, tradeID, patch)
			if err != nil {
				output.Error("Failed to save note: %v", err)
				return err
			}

			logging.LogJournalUpdate(app.Logger, tradeID, false)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"tradeId": tradeID,
					"entry":   entry,
				})
			}

			output.Success("✓ Note saved for %s", tradeID)
			return nil
		},
	}

	cmd.Flags().String("note", "", "free-text note")
	cmd.Flags().String("tags", "", "comma-separated tags (replaces existing tags)")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show a trade's note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			js, err := journalStore(app)
			if err != nil {
				output.Error("Journal unavailable: %v", err)
				return err
			}

			tradeID := args[0]
			entry, ok := js.Load(ctx)[tradeID]
			if !ok {
				if output.IsJSON() {
					return output.JSON(nil)
				}
				output.Info("No note for %s.", tradeID)
				return nil
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}

			output.Bold(tradeID)
			if entry.Note != "" {
				output.Printf("  %s\n", entry.Note)
			}
			if len(entry.Tags) > 0 {
				output.Dim("  tags: %s", strings.Join(entry.Tags, ", "))
			}
			output.Dim("  updated: %s", FormatTimestamp(entry.UpdatedAt))
			return nil
		},
	}
}

func newJournalClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <trade-id>",
		Short: "Remove a trade's note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			js, err := journalStore(app)
			if err != nil {
				output.Error("Journal unavailable: %v", err)
				return err
			}

			tradeID := args[0]
			if err := js.Clear(ctx, tradeID); err != nil {
				output.Error("Failed to clear note: %v", err)
				return err
			}

			logging.LogJournalUpdate(app.Logger, tradeID, true)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"tradeId": tradeID, "cleared": true})
			}

			output.Success("✓ Note cleared for %s", tradeID)
			return nil
		},
	}
}

func newJournalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all journaled trades",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			js, err := journalStore(app)
			if err != nil {
				output.Error("Journal unavailable: %v", err)
				return err
			}

			j := js.Load(ctx)

			if output.IsJSON() {
				return output.JSON(j)
			}

			if len(j) == 0 {
				output.Info("Journal is empty.")
				return nil
			}

			ids := make([]string, 0, len(j))
			for id := range j {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			table := NewTable(output, "Trade", "Note", "Tags", "Updated")
			for _, id := range ids {
				entry := j[id]
				table.AddRow(
					TruncateString(id, 20),
					TruncateString(entry.Note, 40),
					TruncateString(strings.Join(entry.Tags, ","), 24),
					FormatTimestamp(entry.UpdatedAt),
				)
			}
			table.Render()

			return nil
		},
	}
}

// splitTags parses a comma-separated tag list, dropping blanks.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
