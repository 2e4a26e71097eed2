package marketdata

import (
	"context"
	"errors"

	"github.com/wonny/twdiff/internal/contracts"
)

// ErrNoData means the provider knows nothing about the symbol (or has no bars for it).
// Callers treat it as an empty series, not as a failure.
var ErrNoData = errors.New("marketdata: no data for symbol")

// Provider is a source of daily history and live quotes
// ⭐ SSOT: 외부 시세 소스는 이 인터페이스로만 접근
type Provider interface {
	// DailyBars returns the full split/dividend adjusted daily history, oldest first
	DailyBars(ctx context.Context, symbol string) ([]contracts.DailyBar, error)

	// LastPrice returns the last traded price
	LastPrice(ctx context.Context, symbol string) (contracts.Quote, error)
}

// Name returns a short provider name for logs
func Name(p Provider) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}
