// Package models defines the core data types shared across the application.
package models

// Side is the direction of a trade.
type Side string

const (
	// SideLong is a long (buy) position.
	SideLong Side = "LONG"
	// SideShort is a short (sell) position.
	SideShort Side = "SHORT"
)

// Direction returns +1 for long trades and -1 for short trades.
func (s Side) Direction() float64 {
	if s == SideShort {
		return -1
	}
	return 1
}

// Trade represents one closed position imported from a CSV file.
//
// OpenTime and CloseTime hold RFC 3339 timestamps when the source value
// was parseable, otherwise the raw text is kept verbatim. OrderType and
// RealizedPnL are nil when the source column was absent; fallbacks are
// applied at aggregation time, not at parse time.
type Trade struct {
	TradeID     string   `json:"tradeId"`
	Symbol      string   `json:"symbol"`
	Side        Side     `json:"side"`
	OpenTime    string   `json:"openTime"`
	CloseTime   string   `json:"closeTime"`
	EntryPrice  float64  `json:"entryPrice"`
	ExitPrice   float64  `json:"exitPrice"`
	Size        float64  `json:"size"`
	Fees        float64  `json:"fees"`
	OrderType   *string  `json:"orderType,omitempty"`
	RealizedPnL *float64 `json:"realizedPnl,omitempty"`
}

// EquityPoint is one trade's contribution to the running account curve.
// Drawdown is Equity minus Peak and is always <= 0.
type EquityPoint struct {
	Time     string  `json:"time"`
	PnL      float64 `json:"pnl"`
	Equity   float64 `json:"equity"`
	Peak     float64 `json:"peak"`
	Drawdown float64 `json:"drawdown"`
}

// DayPoint is the summed PnL of one UTC calendar day (YYYY-MM-DD).
type DayPoint struct {
	Day string  `json:"day"`
	PnL float64 `json:"pnl"`
}

// HourPoint is the summed PnL of one UTC hour of day (0-23).
type HourPoint struct {
	Hour int     `json:"hour"`
	PnL  float64 `json:"pnl"`
}

// SymbolPerf is aggregated performance for one traded instrument.
type SymbolPerf struct {
	Symbol   string  `json:"symbol"`
	Trades   int     `json:"trades"`
	WinRate  float64 `json:"winRate"`
	TotalPnL float64 `json:"totalPnl"`
	AvgPnL   float64 `json:"avgPnl"`
}

// OrderTypePerf is aggregated performance for one order type.
type OrderTypePerf struct {
	OrderType string  `json:"orderType"`
	Trades    int     `json:"trades"`
	WinRate   float64 `json:"winRate"`
	TotalPnL  float64 `json:"totalPnl"`
	AvgPnL    float64 `json:"avgPnl"`
}

// TradeNote is a user annotation attached to a trade ID.
type TradeNote struct {
	Note      string   `json:"note"`
	Tags      []string `json:"tags"`
	UpdatedAt string   `json:"updatedAt"`
}

// Journal is the persisted mapping from trade ID to note.
type Journal map[string]TradeNote

// Metrics is the headline performance summary of a trade collection.
type Metrics struct {
	TradeCount         int     `json:"tradeCount"`
	WinRate            float64 `json:"winRate"`
	TotalPnL           float64 `json:"totalPnl"`
	TotalFees          float64 `json:"totalFees"`
	GrossPnL           float64 `json:"grossPnl"`
	AvgWin             float64 `json:"avgWin"`
	AvgLoss            float64 `json:"avgLoss"`
	LargestWin         float64 `json:"largestWin"`
	LargestLoss        float64 `json:"largestLoss"`
	AvgDurationMinutes float64 `json:"avgDurationMinutes"`
	LongCount          int     `json:"longCount"`
	ShortCount         int     `json:"shortCount"`
	LongShortRatio     float64 `json:"longShortRatio"`
}
