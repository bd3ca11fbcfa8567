package analytics

import (
	"sort"

	"tradelog/internal/models"
)

// BuildEquityCurve folds a trade collection into the running account
// curve, in ascending close-time order (open time as fallback). Trades
// with unparseable timestamps sort as the epoch. Equal sort keys keep
// their relative input order. Initial equity and peak are 0.
func BuildEquityCurve(trades []models.Trade) []models.EquityPoint {
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})

	points := make([]models.EquityPoint, 0, len(sorted))
	var equity, peak float64
	for _, t := range sorted {
		pnl := PnL(t)
		equity += pnl
		if equity > peak {
			peak = equity
		}

		label := t.CloseTime
		if label == "" {
			label = t.OpenTime
		}
		points = append(points, models.EquityPoint{
			Time:     label,
			PnL:      pnl,
			Equity:   equity,
			Peak:     peak,
			Drawdown: equity - peak,
		})
	}
	return points
}

// sortKey is the millisecond timestamp used to order the curve.
// Unparseable times collapse to 0.
func sortKey(t models.Trade) int64 {
	ts, ok := tradeTime(t)
	if !ok {
		return 0
	}
	return ts.UnixMilli()
}

// MaxDrawdown returns the most negative drawdown observed across the
// curve, or 0 when no points exist.
func MaxDrawdown(points []models.EquityPoint) float64 {
	var min float64
	for _, p := range points {
		if p.Drawdown < min {
			min = p.Drawdown
		}
	}
	return min
}

// MaxDrawdownPercent expresses the maximum drawdown as a percentage of
// the highest peak reached. When equity never rose above 0 the result
// is 0.
func MaxDrawdownPercent(points []models.EquityPoint) float64 {
	var maxPeak float64
	for _, p := range points {
		if p.Peak > maxPeak {
			maxPeak = p.Peak
		}
	}
	if maxPeak <= 0 {
		return 0
	}
	return MaxDrawdown(points) / maxPeak * 100
}
