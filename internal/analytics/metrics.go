// Package analytics computes performance statistics over a trade
// collection. All functions are pure, single-pass reductions: they never
// mutate their input and have a defined zero result for empty input.
package analytics

import (
	"time"

	"tradelog/internal/models"
)

// PnL returns the signed profit of one trade.
//
// A realized PnL from the source file is the source of truth and is
// returned unchanged. Otherwise the profit is computed as
// (exit - entry) * size * direction - fees.
func PnL(t models.Trade) float64 {
	if t.RealizedPnL != nil {
		return *t.RealizedPnL
	}
	return (t.ExitPrice-t.EntryPrice)*t.Size*t.Side.Direction() - t.Fees
}

// tradeTime returns the sort/bucket key of a trade: close time when
// present, open time otherwise. Unparseable values report ok=false; the
// caller decides whether that maps to the epoch or to exclusion.
func tradeTime(t models.Trade) (time.Time, bool) {
	s := t.CloseTime
	if s == "" {
		s = t.OpenTime
	}
	return parseTimestamp(s)
}

// parseTimestamp parses an RFC 3339 timestamp, the shape the normalizer
// emits. Raw passthrough text from unparseable source values fails here
// and is treated as epoch-invalid by aggregation.
func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

// durationMinutes returns the open-to-close duration of a trade in
// minutes, or 0 when either timestamp is unparseable or the close is not
// after the open.
func durationMinutes(t models.Trade) float64 {
	opened, okOpen := parseTimestamp(t.OpenTime)
	closed, okClose := parseTimestamp(t.CloseTime)
	if !okOpen || !okClose || !closed.After(opened) {
		return 0
	}
	return closed.Sub(opened).Minutes()
}

// ComputeMetrics computes the headline performance summary of a trade
// collection. An empty collection yields the zero Metrics value.
func ComputeMetrics(trades []models.Trade) models.Metrics {
	m := models.Metrics{TradeCount: len(trades)}
	if len(trades) == 0 {
		return m
	}

	var winSum, lossSum float64
	var winCount, lossCount int
	var durationSum float64

	for _, t := range trades {
		pnl := PnL(t)
		m.TotalPnL += pnl
		m.TotalFees += t.Fees
		durationSum += durationMinutes(t)

		if pnl > 0 {
			winCount++
			winSum += pnl
			if pnl > m.LargestWin {
				m.LargestWin = pnl
			}
		} else if pnl < 0 {
			lossCount++
			lossSum += pnl
			if pnl < m.LargestLoss {
				m.LargestLoss = pnl
			}
		}

		if t.Side == models.SideShort {
			m.ShortCount++
		} else {
			m.LongCount++
		}
	}

	m.GrossPnL = m.TotalPnL + m.TotalFees
	m.WinRate = float64(winCount) / float64(m.TradeCount)
	if winCount > 0 {
		m.AvgWin = winSum / float64(winCount)
	}
	if lossCount > 0 {
		m.AvgLoss = lossSum / float64(lossCount)
	}
	m.AvgDurationMinutes = durationSum / float64(m.TradeCount)
	if m.ShortCount > 0 {
		m.LongShortRatio = float64(m.LongCount) / float64(m.ShortCount)
	}

	return m
}
