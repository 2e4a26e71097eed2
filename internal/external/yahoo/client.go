package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	_ "time/tzdata" // exchange time zones on hosts without zoneinfo

	"github.com/wonny/twdiff/pkg/httputil"
	"github.com/wonny/twdiff/pkg/logger"
)

// Response bodies above this size are rejected
const maxBodyBytes = 32 << 20

// defaultZone is used when the chart meta carries no usable time zone
const defaultZone = "Asia/Taipei"

// Client handles communication with the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
// httpClient is cloned; the caller's client is left untouched.
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		httpClient: httpClient.Clone().WithHeader("Accept", "application/json"),
		logger:     log,
		baseURL:    baseURL,
	}
}

// Name identifies the provider in logs
func (c *Client) Name() string { return "yahoo" }

// fetchChart calls /v8/finance/chart/{symbol}
func (c *Client) fetchChart(ctx context.Context, symbol string, params url.Values) (*chartResult, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return decodeChart(resp.StatusCode, body)
}

// decodeChart maps a chart response to its single result.
// Unknown symbols come back as 404 with chart.error.code "Not Found".
func decodeChart(status int, body []byte) (*chartResult, error) {
	var chart chartResponse
	decodeErr := json.Unmarshal(body, &chart)

	if chart.Chart.Error != nil && chart.Chart.Error.Code == "Not Found" {
		return nil, errNoData(chart.Chart.Error.Description)
	}
	if status == http.StatusNotFound {
		return nil, errNoData("status 404")
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode response failed: %w", decodeErr)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error %s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, errNoData("empty result")
	}

	return &chart.Chart.Result[0], nil
}

// location returns the exchange time zone of a chart
func (m chartMeta) location() *time.Location {
	if m.ExchangeTimezoneName != "" {
		if loc, err := time.LoadLocation(m.ExchangeTimezoneName); err == nil {
			return loc
		}
	}
	if m.GMTOffset != 0 {
		return time.FixedZone("exchange", m.GMTOffset)
	}
	loc, err := time.LoadLocation(defaultZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
