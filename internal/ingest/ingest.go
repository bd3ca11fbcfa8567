// Package ingest parses CSV exports of closed trades into canonical
// Trade records. Column names vary between platforms, so each logical
// field resolves through an ordered list of accepted header aliases;
// unresolvable values fall back to defaults rather than failing the row.
package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	apperrors "tradelog/internal/errors"
	"tradelog/internal/models"
)

// fieldAliases maps each logical trade field to the accepted CSV header
// names, in priority order. First non-empty match wins.
var fieldAliases = map[string][]string{
	"tradeId":     {"trade_id", "tradeId", "id", "uuid"},
	"symbol":      {"symbol", "market", "pair", "instrument"},
	"side":        {"side", "direction", "type"},
	"openTime":    {"open_time", "openTime", "entry_time", "timestamp_open", "opened_at"},
	"closeTime":   {"close_time", "closeTime", "exit_time", "timestamp_close", "closed_at"},
	"entryPrice":  {"entry_price", "entryPrice", "open_price", "price_entry"},
	"exitPrice":   {"exit_price", "exitPrice", "close_price", "price_exit"},
	"size":        {"size", "qty", "quantity", "amount"},
	"fees":        {"fees", "fee", "total_fees", "commission"},
	"orderType":   {"order_type", "orderType", "type_order"},
	"realizedPnl": {"realized_pnl", "pnl", "profit", "realizedPnl"},
}

// timestampLayouts are the source formats the normalizer understands.
// Anything else is kept verbatim and treated as epoch-invalid downstream.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	time.RFC1123,
	time.RFC1123Z,
}

// pick resolves a logical field against a row, returning the first
// non-empty aliased value.
func pick(row map[string]string, field string) (string, bool) {
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// toNumber coerces a raw cell to a float, stripping thousands
// separators. Any failure yields the fallback.
func toNumber(raw string, fallback float64) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return fallback
	}
	return n
}

// normalizeSide maps textual side variants onto LONG/SHORT. Unrecognized
// values default to LONG.
func normalizeSide(raw string) models.Side {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY", "LONG":
		return models.SideLong
	case "SELL", "SHORT":
		return models.SideShort
	default:
		return models.SideLong
	}
}

// normalizeTimestamp converts a raw value to RFC 3339 UTC when a known
// layout matches; otherwise the original text is kept verbatim.
func normalizeTimestamp(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Format("2006-01-02T15:04:05.000Z07:00")
		}
	}
	return s
}

// rowEmpty reports whether a row has no non-empty cells.
func rowEmpty(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseTrades reads a header-keyed CSV stream and returns one Trade per
// non-empty row, preserving row order. Missing or malformed fields fall
// back per-field; only a structurally unreadable file is an error.
func ParseTrades(r io.Reader) ([]models.Trade, error) {
	rows, err := gocsv.CSVToMaps(r)
	if err != nil {
		return nil, apperrors.NewParseError("csv", "unreadable file", err)
	}

	trades := make([]models.Trade, 0, len(rows))
	for _, row := range rows {
		if rowEmpty(row) {
			continue
		}
		trades = append(trades, normalizeRow(row, len(trades)))
	}
	return trades, nil
}

// normalizeRow maps one CSV row onto a Trade. idx is the zero-based
// position among kept rows, used for the synthetic trade ID fallback.
func normalizeRow(row map[string]string, idx int) models.Trade {
	tradeID, ok := pick(row, "tradeId")
	if !ok {
		tradeID = fmt.Sprintf("row-%d", idx+1)
	}

	symbol, ok := pick(row, "symbol")
	if !ok {
		symbol = "UNKNOWN"
	}

	sideRaw, _ := pick(row, "side")
	openRaw, _ := pick(row, "openTime")
	closeRaw, _ := pick(row, "closeTime")
	entryRaw, _ := pick(row, "entryPrice")
	exitRaw, _ := pick(row, "exitPrice")
	sizeRaw, _ := pick(row, "size")
	feesRaw, _ := pick(row, "fees")

	t := models.Trade{
		TradeID:    tradeID,
		Symbol:     symbol,
		Side:       normalizeSide(sideRaw),
		OpenTime:   normalizeTimestamp(openRaw),
		CloseTime:  normalizeTimestamp(closeRaw),
		EntryPrice: toNumber(entryRaw, 0),
		ExitPrice:  toNumber(exitRaw, 0),
		Size:       toNumber(sizeRaw, 0),
		Fees:       toNumber(feesRaw, 0),
	}

	if orderType, ok := pick(row, "orderType"); ok {
		t.OrderType = &orderType
	}
	if pnlRaw, ok := pick(row, "realizedPnl"); ok {
		pnl := toNumber(pnlRaw, 0)
		t.RealizedPnL = &pnl
	}

	return t
}
