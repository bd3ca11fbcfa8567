package analytics

import (
	"time"

	"tradelog/internal/models"
)

// FilterAllSymbols disables the symbol constraint.
const FilterAllSymbols = "ALL"

// Filter narrows a trade collection by symbol and calendar date range.
// From and To are YYYY-MM-DD dates; From is inclusive from 00:00:00.000
// UTC, To is inclusive through 23:59:59.999 UTC. Empty or unparseable
// bounds mean no constraint on that side.
type Filter struct {
	Symbol string
	From   string
	To     string
}

// dateBound parses a calendar date into a UTC millisecond bound, at the
// start or end of the day. ok is false for empty or unparseable input.
func dateBound(date string, endOfDay bool) (int64, bool) {
	if date == "" {
		return 0, false
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}
	if endOfDay {
		return d.Add(24*time.Hour - time.Millisecond).UnixMilli(), true
	}
	return d.UnixMilli(), true
}

// Apply returns the trades matching the filter, in input order. The
// input is never mutated. Trades with unparseable timestamps are
// excluded whenever a date bound is active.
func Apply(trades []models.Trade, f Filter) []models.Trade {
	fromMs, hasFrom := dateBound(f.From, false)
	toMs, hasTo := dateBound(f.To, true)
	bySymbol := f.Symbol != "" && f.Symbol != FilterAllSymbols

	out := make([]models.Trade, 0, len(trades))
	for _, t := range trades {
		if bySymbol && t.Symbol != f.Symbol {
			continue
		}
		if hasFrom || hasTo {
			ts, ok := tradeTime(t)
			if !ok {
				continue
			}
			ms := ts.UnixMilli()
			if hasFrom && ms < fromMs {
				continue
			}
			if hasTo && ms > toMs {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
