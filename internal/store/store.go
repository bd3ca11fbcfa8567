// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"tradelog/internal/models"
)

// DataStore defines the interface for data persistence.
//
// The trade collection is replaced wholesale on import and read back in
// original row order. The key-value surface holds opaque serialized
// blobs (the journal mapping lives under a single fixed key).
type DataStore interface {
	// Trades
	ReplaceTrades(ctx context.Context, trades []models.Trade) error
	GetTrades(ctx context.Context) ([]models.Trade, error)
	CountTrades(ctx context.Context) (int, error)

	// Key-value blobs
	GetValue(ctx context.Context, key string) (string, error)
	SetValue(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}
