package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/marketdata"
	"github.com/wonny/twdiff/pkg/logger"
)

// DefaultSuffixes: TWSE listed first, then TPEx (OTC)
var DefaultSuffixes = []string{".TW", ".TWO"}

// Resolver finds which exchange suffix a bare code trades under
// ⭐ SSOT: suffix fallback 은 여기서만
type Resolver struct {
	provider marketdata.Provider
	suffixes []string
	logger   *logger.Logger
}

// New creates a resolver trying suffixes in the given order
func New(provider marketdata.Provider, suffixes []string, log *logger.Logger) *Resolver {
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	return &Resolver{
		provider: provider,
		suffixes: append([]string(nil), suffixes...),
		logger:   log,
	}
}

// Suffixes returns the candidate order
func (r *Resolver) Suffixes() []string {
	return append([]string(nil), r.suffixes...)
}

// Resolve returns the first candidate symbol with a non-empty daily series.
// Candidates are never merged. When nothing is found the outcome is NotFound;
// an error is returned only if some candidate failed for a reason other than
// missing data, since the instrument may exist behind that failure.
func (r *Resolver) Resolve(ctx context.Context, code string) (contracts.Resolution, error) {
	log := logger.FromContext(ctx, r.logger).WithFields(map[string]interface{}{
		"stage": contracts.StageResolve,
		"code":  code,
	})

	var lastErr error
	for _, suffix := range r.suffixes {
		if err := ctx.Err(); err != nil {
			return contracts.Resolution{}, err
		}

		symbol := code + suffix
		bars, err := r.provider.DailyBars(ctx, symbol)
		switch {
		case errors.Is(err, marketdata.ErrNoData):
			log.WithField("symbol", symbol).Debug("No data for candidate")
			continue
		case err != nil:
			log.WithError(err).WithField("symbol", symbol).Warn("Candidate lookup failed")
			lastErr = err
			continue
		case len(bars) == 0:
			continue
		}

		log.WithFields(map[string]interface{}{
			"symbol": symbol,
			"bars":   len(bars),
		}).Info("Resolved symbol")
		return contracts.FoundAt(code, symbol, bars), nil
	}

	if lastErr != nil {
		return contracts.Resolution{}, fmt.Errorf("resolve %s: %w", code, lastErr)
	}
	return contracts.NotFound(code), nil
}

// LivePrice fetches the last traded price; callers treat failure as non-fatal
func (r *Resolver) LivePrice(ctx context.Context, symbol string) (contracts.Quote, error) {
	q, err := r.provider.LastPrice(ctx, symbol)
	if err != nil {
		return contracts.Quote{}, fmt.Errorf("live price %s: %w", symbol, err)
	}
	return q, nil
}
