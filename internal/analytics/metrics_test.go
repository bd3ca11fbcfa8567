package analytics

import (
	"math"
	"testing"

	"tradelog/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPnL(t *testing.T) {
	tests := []struct {
		name  string
		trade models.Trade
		want  float64
	}{
		{
			name: "long trade computed from prices",
			trade: models.Trade{
				Side: models.SideLong, EntryPrice: 100, ExitPrice: 120, Size: 1, Fees: 1,
			},
			want: 19,
		},
		{
			name: "short trade profits when price falls",
			trade: models.Trade{
				Side: models.SideShort, EntryPrice: 100, ExitPrice: 85, Size: 1,
			},
			want: 15,
		},
		{
			name: "size scales the result",
			trade: models.Trade{
				Side: models.SideLong, EntryPrice: 10, ExitPrice: 12, Size: 5, Fees: 2,
			},
			want: 8,
		},
		{
			name: "realized pnl overrides the formula",
			trade: models.Trade{
				Side: models.SideLong, EntryPrice: 100, ExitPrice: 120, Size: 1,
				RealizedPnL: floatPtr(-3.5),
			},
			want: -3.5,
		},
		{
			name:  "zero value trade",
			trade: models.Trade{Side: models.SideLong},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PnL(tt.trade); !almostEqual(got, tt.want) {
				t.Errorf("PnL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.TradeCount != 0 || m.WinRate != 0 || m.TotalPnL != 0 {
		t.Errorf("empty input should yield zero metrics, got %+v", m)
	}
}

func TestComputeMetrics(t *testing.T) {
	trades := []models.Trade{
		{
			TradeID: "t1", Symbol: "BTCUSDT", Side: models.SideLong,
			OpenTime: "2024-01-01T10:00:00.000Z", CloseTime: "2024-01-01T10:30:00.000Z",
			EntryPrice: 100, ExitPrice: 120, Size: 1, Fees: 1,
		},
		{
			TradeID: "t2", Symbol: "BTCUSDT", Side: models.SideShort,
			OpenTime: "2024-01-01T11:00:00.000Z", CloseTime: "2024-01-01T11:30:00.000Z",
			EntryPrice: 100, ExitPrice: 85, Size: 1, Fees: 0,
		},
		{
			TradeID: "t3", Symbol: "ETHUSDT", Side: models.SideLong,
			OpenTime: "2024-01-02T09:00:00.000Z", CloseTime: "2024-01-02T10:00:00.000Z",
			EntryPrice: 50, ExitPrice: 40, Size: 1, Fees: 2,
		},
	}

	m := ComputeMetrics(trades)

	if m.TradeCount != 3 {
		t.Errorf("TradeCount = %d, want 3", m.TradeCount)
	}
	// PnLs: 19, 15, -12
	if !almostEqual(m.TotalPnL, 22) {
		t.Errorf("TotalPnL = %v, want 22", m.TotalPnL)
	}
	if !almostEqual(m.TotalFees, 3) {
		t.Errorf("TotalFees = %v, want 3", m.TotalFees)
	}
	if !almostEqual(m.GrossPnL, 25) {
		t.Errorf("GrossPnL = %v, want 25", m.GrossPnL)
	}
	if !almostEqual(m.WinRate, 2.0/3.0) {
		t.Errorf("WinRate = %v, want 2/3", m.WinRate)
	}
	if !almostEqual(m.AvgWin, 17) {
		t.Errorf("AvgWin = %v, want 17", m.AvgWin)
	}
	if !almostEqual(m.AvgLoss, -12) {
		t.Errorf("AvgLoss = %v, want -12", m.AvgLoss)
	}
	if !almostEqual(m.LargestWin, 19) {
		t.Errorf("LargestWin = %v, want 19", m.LargestWin)
	}
	if !almostEqual(m.LargestLoss, -12) {
		t.Errorf("LargestLoss = %v, want -12", m.LargestLoss)
	}
	// Durations: 30, 30, 60 minutes
	if !almostEqual(m.AvgDurationMinutes, 40) {
		t.Errorf("AvgDurationMinutes = %v, want 40", m.AvgDurationMinutes)
	}
	if m.LongCount != 2 || m.ShortCount != 1 {
		t.Errorf("Long/Short = %d/%d, want 2/1", m.LongCount, m.ShortCount)
	}
	if !almostEqual(m.LongShortRatio, 2) {
		t.Errorf("LongShortRatio = %v, want 2", m.LongShortRatio)
	}
}

func TestComputeMetricsNoShorts(t *testing.T) {
	trades := []models.Trade{
		{Side: models.SideLong, EntryPrice: 1, ExitPrice: 2, Size: 1},
	}
	m := ComputeMetrics(trades)
	if m.LongShortRatio != 0 {
		t.Errorf("LongShortRatio with no shorts = %v, want 0", m.LongShortRatio)
	}
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name  string
		trade models.Trade
		want  float64
	}{
		{
			name:  "half hour",
			trade: models.Trade{OpenTime: "2024-01-01T10:00:00.000Z", CloseTime: "2024-01-01T10:30:00.000Z"},
			want:  30,
		},
		{
			name:  "unparseable open time",
			trade: models.Trade{OpenTime: "soon", CloseTime: "2024-01-01T10:30:00.000Z"},
			want:  0,
		},
		{
			name:  "close before open",
			trade: models.Trade{OpenTime: "2024-01-01T11:00:00.000Z", CloseTime: "2024-01-01T10:00:00.000Z"},
			want:  0,
		},
		{
			name:  "missing timestamps",
			trade: models.Trade{},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := durationMinutes(tt.trade); !almostEqual(got, tt.want) {
				t.Errorf("durationMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTradeTimeFallsBackToOpenTime(t *testing.T) {
	trade := models.Trade{OpenTime: "2024-01-01T10:00:00.000Z"}
	ts, ok := tradeTime(trade)
	if !ok {
		t.Fatal("expected parseable time from open time fallback")
	}
	if ts.UTC().Hour() != 10 {
		t.Errorf("hour = %d, want 10", ts.UTC().Hour())
	}
}

func floatPtr(f float64) *float64 { return &f }
