// Package marketdatatest provides an in-memory marketdata.Provider for tests.
package marketdatatest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/marketdata"
)

// Provider serves canned bars and quotes and records every call
type Provider struct {
	mu sync.Mutex

	Bars      map[string][]contracts.DailyBar
	BarErrs   map[string]error
	Quotes    map[string]float64
	QuoteErrs map[string]error

	BarCalls   []string
	QuoteCalls []string
}

// New returns an empty provider; unknown symbols answer marketdata.ErrNoData
func New() *Provider {
	return &Provider{
		Bars:      map[string][]contracts.DailyBar{},
		BarErrs:   map[string]error{},
		Quotes:    map[string]float64{},
		QuoteErrs: map[string]error{},
	}
}

// Name implements the optional name hook
func (p *Provider) Name() string { return "memory" }

// DailyBars implements marketdata.Provider
func (p *Provider) DailyBars(ctx context.Context, symbol string) ([]contracts.DailyBar, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.BarCalls = append(p.BarCalls, symbol)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := p.BarErrs[symbol]; ok {
		return nil, err
	}
	bars, ok := p.Bars[symbol]
	if !ok {
		return nil, marketdata.ErrNoData
	}
	return bars, nil
}

// LastPrice implements marketdata.Provider
func (p *Provider) LastPrice(ctx context.Context, symbol string) (contracts.Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.QuoteCalls = append(p.QuoteCalls, symbol)
	if err, ok := p.QuoteErrs[symbol]; ok {
		return contracts.Quote{}, err
	}
	price, ok := p.Quotes[symbol]
	if !ok {
		return contracts.Quote{}, errors.New("no quote")
	}
	return contracts.Quote{Symbol: symbol, Price: price, Currency: "TWD"}, nil
}

// Calls returns a copy of the symbols DailyBars was asked for
func (p *Provider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.BarCalls...)
}

// Bar builds a bar on a calendar date
func Bar(year int, month time.Month, day int, open, close float64) contracts.DailyBar {
	return contracts.DailyBar{
		Date:  time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		Open:  open,
		Close: close,
	}
}
