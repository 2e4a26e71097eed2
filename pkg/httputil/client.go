package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/twdiff/pkg/config"
	"github.com/wonny/twdiff/pkg/logger"
)

// Client is an HTTP client wrapper with retry, rate limiting and logging
// ⭐ SSOT: 모든 외부 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient  *http.Client
	logger      *logger.Logger
	retryConfig RetryConfig
	limiter     *rate.Limiter
	headers     http.Header
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Enabled      bool
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.Yahoo.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		retryConfig: RetryConfig{
			MaxRetries:   3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     10 * time.Second,
			Enabled:      true,
		},
		headers: http.Header{},
	}

	if cfg.Yahoo.UserAgent != "" {
		c.headers.Set("User-Agent", cfg.Yahoo.UserAgent)
	}
	if cfg.Yahoo.RateLimit > 0 {
		c.WithRateLimit(cfg.Yahoo.RateLimit)
	}

	return c
}

// WithRetry configures retry behavior
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retryConfig.MaxRetries = maxRetries
	c.retryConfig.InitialDelay = initialDelay
	c.retryConfig.Enabled = true
	return c
}

// DisableRetry disables automatic retry
func (c *Client) DisableRetry() *Client {
	c.retryConfig.Enabled = false
	return c
}

// WithRateLimit caps outgoing requests to rps per second (burst 1)
func (c *Client) WithRateLimit(rps float64) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	return c
}

// WithHeader sets a header sent with every request
func (c *Client) WithHeader(key, value string) *Client {
	c.headers.Set(key, value)
	return c
}

// Clone returns a copy whose headers and retry settings can change independently.
// The copy shares the underlying http.Client and rate limiter.
func (c *Client) Clone() *Client {
	clone := *c
	clone.headers = c.headers.Clone()
	return &clone
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	return c.do(req)
}

// do executes the request with retry logic and logging
func (c *Client) do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	startTime := time.Now()
	url := req.URL.String()

	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    url,
	}).Debug("HTTP request started")

	if c.retryConfig.Enabled {
		resp, err = c.doWithRetry(req)
	} else {
		resp, err = c.send(req)
	}

	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"duration": duration,
		}).Warn("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// send waits for the limiter and performs a single attempt
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}
	return c.httpClient.Do(req)
}

// doWithRetry executes the request with exponential backoff retry
func (c *Client) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	delay := c.retryConfig.InitialDelay

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		resp, err = c.send(req)

		if err == nil && !IsRetryableError(resp.StatusCode) {
			return resp, nil
		}

		// Last attempt - hand back whatever we got
		if attempt == c.retryConfig.MaxRetries {
			break
		}

		// Context already done: no point retrying
		if req.Context().Err() != nil {
			break
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		c.logger.WithFields(map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay,
			"url":     req.URL.String(),
		}).Warn("Retrying HTTP request")

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.retryConfig.MaxDelay {
			delay = c.retryConfig.MaxDelay
		}
	}

	return resp, err
}

// IsRetryableError checks if a status code should be retried
func IsRetryableError(statusCode int) bool {
	// Retry on 5xx server errors and 429 Too Many Requests
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
