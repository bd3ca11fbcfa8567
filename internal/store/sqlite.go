package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tradelog/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Imported trade collection; row_idx preserves CSV row order
	CREATE TABLE IF NOT EXISTS trades (
		row_idx INTEGER PRIMARY KEY AUTOINCREMENT,
		trade_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		side TEXT NOT NULL,
		open_time TEXT NOT NULL,
		close_time TEXT NOT NULL,
		entry_price REAL NOT NULL,
		exit_price REAL NOT NULL,
		size REAL NOT NULL,
		fees REAL NOT NULL,
		order_type TEXT,
		realized_pnl REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Opaque key-value blobs (journal mapping and friends)
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);
	CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReplaceTrades swaps the stored trade collection for a new one in a
// single transaction. A re-import replaces the whole list; journal
// entries are untouched and stay keyed by trade ID.
func (s *SQLiteStore) ReplaceTrades(ctx context.Context, trades []models.Trade) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trades"); err != nil {
		return fmt.Errorf("failed to clear trades: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades (trade_id, symbol, side, open_time, close_time, entry_price, exit_price, size, fees, order_type, realized_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		var orderType sql.NullString
		if t.OrderType != nil {
			orderType = sql.NullString{String: *t.OrderType, Valid: true}
		}
		var realizedPnl sql.NullFloat64
		if t.RealizedPnL != nil {
			realizedPnl = sql.NullFloat64{Float64: *t.RealizedPnL, Valid: true}
		}

		_, err := stmt.ExecContext(ctx, t.TradeID, t.Symbol, string(t.Side), t.OpenTime, t.CloseTime, t.EntryPrice, t.ExitPrice, t.Size, t.Fees, orderType, realizedPnl)
		if err != nil {
			return fmt.Errorf("failed to insert trade: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTrades retrieves the stored trade collection in original row order.
func (s *SQLiteStore) GetTrades(ctx context.Context) ([]models.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trade_id, symbol, side, open_time, close_time, entry_price, exit_price, size, fees, order_type, realized_pnl
		FROM trades
		ORDER BY row_idx ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var side string
		var orderType sql.NullString
		var realizedPnl sql.NullFloat64

		if err := rows.Scan(&t.TradeID, &t.Symbol, &side, &t.OpenTime, &t.CloseTime, &t.EntryPrice, &t.ExitPrice, &t.Size, &t.Fees, &orderType, &realizedPnl); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}

		t.Side = models.Side(side)
		if orderType.Valid {
			v := orderType.String
			t.OrderType = &v
		}
		if realizedPnl.Valid {
			v := realizedPnl.Float64
			t.RealizedPnL = &v
		}
		trades = append(trades, t)
	}

	return trades, rows.Err()
}

// CountTrades returns the number of stored trades.
func (s *SQLiteStore) CountTrades(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}

// GetValue returns the blob stored under key, or an empty string when
// the key is absent.
func (s *SQLiteStore) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get value: %w", err)
	}
	return value, nil
}

// SetValue overwrites the blob stored under key.
func (s *SQLiteStore) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}
	return nil
}
