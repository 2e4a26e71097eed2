// Package store keeps daily bars in PostgreSQL and serves them as a market-data provider.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/marketdata"
)

// PriceStore implements marketdata.Provider on top of daily_prices
// ⭐ SSOT: 가격 데이터 저장소는 여기서만
type PriceStore struct {
	pool *pgxpool.Pool
}

// NewPriceStore creates a new price store
func NewPriceStore(pool *pgxpool.Pool) *PriceStore {
	return &PriceStore{pool: pool}
}

// Name identifies the provider in logs
func (s *PriceStore) Name() string { return "postgres" }

// EnsureSchema creates daily_prices if needed
func (s *PriceStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create daily_prices: %w", err)
	}
	return nil
}

// DailyBars returns every stored bar of symbol, oldest first
func (s *PriceStore) DailyBars(ctx context.Context, symbol string) ([]contracts.DailyBar, error) {
	query := `
		SELECT trade_date, open_price, high_price, low_price, close_price, volume
		FROM daily_prices
		WHERE symbol = $1
		ORDER BY trade_date ASC
	`

	rows, err := s.pool.Query(ctx, query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var bars []contracts.DailyBar
	for rows.Next() {
		var b contracts.DailyBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan daily price: %w", err)
		}
		b.Date = contracts.CalendarDate(b.Date)
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(bars) == 0 {
		return nil, marketdata.ErrNoData
	}
	return bars, nil
}

// LastPrice returns the latest stored close
func (s *PriceStore) LastPrice(ctx context.Context, symbol string) (contracts.Quote, error) {
	query := `
		SELECT trade_date, close_price
		FROM daily_prices
		WHERE symbol = $1
		ORDER BY trade_date DESC
		LIMIT 1
	`

	q := contracts.Quote{Symbol: symbol, Currency: "TWD"}
	err := s.pool.QueryRow(ctx, query, symbol).Scan(&q.Time, &q.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return contracts.Quote{}, marketdata.ErrNoData
	}
	if err != nil {
		return contracts.Quote{}, fmt.Errorf("failed to query last price: %w", err)
	}
	return q, nil
}

// SaveBars upserts bars for symbol in one batch
func (s *PriceStore) SaveBars(ctx context.Context, symbol string, bars []contracts.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_prices (symbol, trade_date, open_price, high_price, low_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(query, symbol, contracts.CalendarDate(b.Date), b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save %d bars for %s: %w", len(bars), symbol, err)
	}
	return nil
}

// deleteSymbol removes every bar of symbol
func (s *PriceStore) deleteSymbol(ctx context.Context, symbol string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM daily_prices WHERE symbol = $1`, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", symbol, err)
	}
	return tag.RowsAffected(), nil
}
