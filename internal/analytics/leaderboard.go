package analytics

import (
	"sort"
	"strings"

	"tradelog/internal/models"
)

type group struct {
	key  string
	pnls []float64
}

// groupPnls collects per-trade PnL by key in first-seen order, so that
// equal-total groups sort deterministically later.
func groupPnls(trades []models.Trade, keyOf func(models.Trade) string) []group {
	index := make(map[string]int)
	var groups []group
	for _, t := range trades {
		key := keyOf(t)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].pnls = append(groups[i].pnls, PnL(t))
	}
	return groups
}

func winRate(pnls []float64) float64 {
	if len(pnls) == 0 {
		return 0
	}
	wins := 0
	for _, p := range pnls {
		if p > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(pnls))
}

// SymbolLeaderboard groups trades by symbol (fallback "UNKNOWN") and
// returns per-symbol performance sorted descending by total PnL.
func SymbolLeaderboard(trades []models.Trade) []models.SymbolPerf {
	groups := groupPnls(trades, func(t models.Trade) string {
		if t.Symbol == "" {
			return "UNKNOWN"
		}
		return t.Symbol
	})

	perf := make([]models.SymbolPerf, 0, len(groups))
	for _, g := range groups {
		var total float64
		for _, p := range g.pnls {
			total += p
		}
		perf = append(perf, models.SymbolPerf{
			Symbol:   g.key,
			Trades:   len(g.pnls),
			WinRate:  winRate(g.pnls),
			TotalPnL: total,
			AvgPnL:   total / float64(len(g.pnls)),
		})
	}
	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].TotalPnL > perf[j].TotalPnL
	})
	return perf
}

// OrderTypeLeaderboard groups trades by trimmed order type (fallback
// "unknown") and returns per-type performance sorted descending by
// total PnL.
func OrderTypeLeaderboard(trades []models.Trade) []models.OrderTypePerf {
	groups := groupPnls(trades, func(t models.Trade) string {
		if t.OrderType != nil {
			if key := strings.TrimSpace(*t.OrderType); key != "" {
				return key
			}
		}
		return "unknown"
	})

	perf := make([]models.OrderTypePerf, 0, len(groups))
	for _, g := range groups {
		var total float64
		for _, p := range g.pnls {
			total += p
		}
		perf = append(perf, models.OrderTypePerf{
			OrderType: g.key,
			Trades:    len(g.pnls),
			WinRate:   winRate(g.pnls),
			TotalPnL:  total,
			AvgPnL:    total / float64(len(g.pnls)),
		})
	}
	sort.SliceStable(perf, func(i, j int) bool {
		return perf[i].TotalPnL > perf[j].TotalPnL
	})
	return perf
}
