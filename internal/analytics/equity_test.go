package analytics

import (
	"testing"

	"tradelog/internal/models"
)

func TestBuildEquityCurve(t *testing.T) {
	trades := []models.Trade{
		{
			TradeID: "t2", Side: models.SideShort, CloseTime: "2024-01-01T11:30:00.000Z",
			EntryPrice: 100, ExitPrice: 85, Size: 1,
		},
		{
			TradeID: "t1", Side: models.SideLong, CloseTime: "2024-01-01T10:30:00.000Z",
			EntryPrice: 100, ExitPrice: 120, Size: 1, Fees: 1,
		},
	}

	curve := BuildEquityCurve(trades)
	if len(curve) != 2 {
		t.Fatalf("len(curve) = %d, want 2", len(curve))
	}

	// Sorted by close time, t1 first despite input order.
	if curve[0].Time != "2024-01-01T10:30:00.000Z" {
		t.Errorf("first point time = %q, want t1's close time", curve[0].Time)
	}
	if !almostEqual(curve[0].PnL, 19) || !almostEqual(curve[0].Equity, 19) {
		t.Errorf("first point pnl/equity = %v/%v, want 19/19", curve[0].PnL, curve[0].Equity)
	}
	if !almostEqual(curve[1].Equity, 34) || !almostEqual(curve[1].Peak, 34) {
		t.Errorf("second point equity/peak = %v/%v, want 34/34", curve[1].Equity, curve[1].Peak)
	}
	for i, p := range curve {
		if p.Drawdown > 0 {
			t.Errorf("point %d drawdown = %v, want <= 0", i, p.Drawdown)
		}
	}
}

func TestBuildEquityCurveDrawdown(t *testing.T) {
	trades := []models.Trade{
		{CloseTime: "2024-01-01T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(100)},
		{CloseTime: "2024-01-02T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(-40)},
		{CloseTime: "2024-01-03T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(10)},
	}

	curve := BuildEquityCurve(trades)

	if !almostEqual(curve[1].Peak, 100) {
		t.Errorf("peak after loss = %v, want 100", curve[1].Peak)
	}
	if !almostEqual(curve[1].Drawdown, -40) {
		t.Errorf("drawdown after loss = %v, want -40", curve[1].Drawdown)
	}
	if !almostEqual(curve[2].Drawdown, -30) {
		t.Errorf("drawdown after partial recovery = %v, want -30", curve[2].Drawdown)
	}

	if !almostEqual(MaxDrawdown(curve), -40) {
		t.Errorf("MaxDrawdown = %v, want -40", MaxDrawdown(curve))
	}
	if !almostEqual(MaxDrawdownPercent(curve), -40) {
		t.Errorf("MaxDrawdownPercent = %v, want -40", MaxDrawdownPercent(curve))
	}
}

func TestBuildEquityCurveStableOnEqualTimes(t *testing.T) {
	trades := []models.Trade{
		{TradeID: "a", CloseTime: "2024-01-01T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(1)},
		{TradeID: "b", CloseTime: "2024-01-01T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(2)},
	}

	curve := BuildEquityCurve(trades)
	if !almostEqual(curve[0].PnL, 1) || !almostEqual(curve[1].PnL, 2) {
		t.Errorf("equal close times must keep input order, got %v then %v", curve[0].PnL, curve[1].PnL)
	}
}

func TestBuildEquityCurveInvalidTimesSortFirst(t *testing.T) {
	trades := []models.Trade{
		{TradeID: "valid", CloseTime: "2024-01-01T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(5)},
		{TradeID: "invalid", CloseTime: "not a timestamp", Side: models.SideLong, RealizedPnL: floatPtr(1)},
	}

	curve := BuildEquityCurve(trades)
	if curve[0].Time != "not a timestamp" {
		t.Errorf("invalid timestamp should sort as epoch, got first point %q", curve[0].Time)
	}
}

func TestBuildEquityCurveDoesNotMutateInput(t *testing.T) {
	trades := []models.Trade{
		{TradeID: "b", CloseTime: "2024-01-02T00:00:00.000Z"},
		{TradeID: "a", CloseTime: "2024-01-01T00:00:00.000Z"},
	}

	BuildEquityCurve(trades)
	if trades[0].TradeID != "b" || trades[1].TradeID != "a" {
		t.Error("input slice was reordered")
	}
}

func TestMaxDrawdownEmpty(t *testing.T) {
	if got := MaxDrawdown(nil); got != 0 {
		t.Errorf("MaxDrawdown(nil) = %v, want 0", got)
	}
	if got := MaxDrawdownPercent(nil); got != 0 {
		t.Errorf("MaxDrawdownPercent(nil) = %v, want 0", got)
	}
}

func TestMaxDrawdownPercentNeverProfitable(t *testing.T) {
	trades := []models.Trade{
		{CloseTime: "2024-01-01T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(-10)},
		{CloseTime: "2024-01-02T10:00:00.000Z", Side: models.SideLong, RealizedPnL: floatPtr(-5)},
	}
	curve := BuildEquityCurve(trades)
	if got := MaxDrawdownPercent(curve); got != 0 {
		t.Errorf("MaxDrawdownPercent with peak 0 = %v, want 0", got)
	}
}
