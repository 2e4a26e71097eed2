package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/pkg/logger"
)

// DailyBars fetches the full daily history of symbol, adjusted for splits and dividends
func (c *Client) DailyBars(ctx context.Context, symbol string) ([]contracts.DailyBar, error) {
	params := url.Values{}
	params.Set("range", "max")
	params.Set("interval", "1d")
	params.Set("events", "div,splits")
	params.Set("includeAdjustedClose", "true")

	result, err := c.fetchChart(ctx, symbol, params)
	if err != nil {
		return nil, err
	}

	bars := parseBars(result)
	if len(bars) == 0 {
		return nil, errNoData("no bars")
	}

	logger.FromContext(ctx, c.logger).WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(bars),
		"first":  bars[0].Date.Format("2006-01-02"),
		"last":   bars[len(bars)-1].Date.Format("2006-01-02"),
	}).Debug("Fetched daily bars")

	return bars, nil
}

// LastPrice reads the regular market price from the chart meta
func (c *Client) LastPrice(ctx context.Context, symbol string) (contracts.Quote, error) {
	params := url.Values{}
	params.Set("range", "1d")
	params.Set("interval", "1d")

	result, err := c.fetchChart(ctx, symbol, params)
	if err != nil {
		return contracts.Quote{}, err
	}

	meta := result.Meta
	if meta.RegularMarketPrice == nil || *meta.RegularMarketPrice <= 0 {
		return contracts.Quote{}, fmt.Errorf("yahoo: no regular market price for %s", symbol)
	}

	q := contracts.Quote{
		Symbol:   symbol,
		Price:    *meta.RegularMarketPrice,
		Currency: meta.Currency,
	}
	if meta.RegularMarketTime > 0 {
		q.Time = time.Unix(meta.RegularMarketTime, 0).In(meta.location())
	}
	return q, nil
}

// parseBars converts chart columns into bars.
// Days with null open/close are skipped; a repeated date keeps the later row.
// When adjclose is present, prices are scaled by adjclose/close.
func parseBars(result *chartResult) []contracts.DailyBar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	var adj []*float64
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	loc := result.Meta.location()
	bars := make([]contracts.DailyBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		open := at(quote.Open, i)
		closePrice := at(quote.Close, i)
		if open == nil || closePrice == nil || *closePrice == 0 {
			continue
		}

		factor := 1.0
		if a := at(adj, i); a != nil {
			factor = *a / *closePrice
		}

		bar := contracts.DailyBar{
			Date:  contracts.CalendarDate(time.Unix(ts, 0).In(loc)),
			Open:  *open * factor,
			Close: *closePrice * factor,
		}
		if h := at(quote.High, i); h != nil {
			bar.High = *h * factor
		}
		if l := at(quote.Low, i); l != nil {
			bar.Low = *l * factor
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}

		if n := len(bars); n > 0 && bars[n-1].Date.Equal(bar.Date) {
			bars[n-1] = bar
			continue
		}
		bars = append(bars, bar)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}

func at(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}
