package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/twdiff/internal/api/handlers"
	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/marketdata/marketdatatest"
	"github.com/wonny/twdiff/internal/render"
	"github.com/wonny/twdiff/internal/report"
	"github.com/wonny/twdiff/internal/resolver"
	"github.com/wonny/twdiff/pkg/database"
	"github.com/wonny/twdiff/pkg/logger"
)

func newTestRouter(t *testing.T, p *marketdatatest.Provider, db handlers.DBHealthChecker) http.Handler {
	t.Helper()

	log := logger.Nop()
	html, err := render.NewHTMLRenderer()
	require.NoError(t, err)

	svc := report.NewService(resolver.New(p, nil, log), log)
	return NewRouter(
		handlers.NewReportHandler(svc, html, "2399", log),
		handlers.NewHealthHandler("twdiff", "memory", db),
		log,
	)
}

func sampleProvider() *marketdatatest.Provider {
	p := marketdatatest.New()
	p.Bars["2399.TW"] = []contracts.DailyBar{
		marketdatatest.Bar(2023, time.December, 1, 8.0, 9.5),
		marketdatatest.Bar(2024, time.January, 1, 10.0, 12.0),
		marketdatatest.Bar(2024, time.January, 31, 11.0, 9.5),
	}
	p.Quotes["2399.TW"] = 23.45
	return p
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestIndex(t *testing.T) {
	p := sampleProvider()
	rec := get(t, newTestRouter(t, p, nil), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	doc := parse(t, rec)
	assert.Equal(t, "2399", doc.Find("input[name=code]").AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("table").Length())
	assert.Empty(t, p.Calls(), "index page does not fetch")
}

func TestReportPage(t *testing.T) {
	rec := get(t, newTestRouter(t, sampleProvider(), nil), "/report?code=2399")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.True(t, doc.Find(".banner").HasClass("banner-success"))
	assert.Equal(t, "23.45", doc.Find(".live-price .price").Text())

	rows := doc.Find("table.matrix tbody tr")
	require.Equal(t, 3, rows.Length(), "2023, 2024, Total")

	jan := rows.Eq(1).Find("td").Eq(0)
	assert.Equal(t, "-0.50", jan.Text())
	assert.True(t, jan.HasClass("cell-negative"))

	dec := rows.Eq(0).Find("td").Eq(11)
	assert.Equal(t, "1.50", dec.Text())
	assert.True(t, dec.HasClass("cell-positive"))

	assert.Equal(t, contracts.TotalLabel, strings.TrimSpace(rows.Eq(2).Find("th").Text()))
}

func TestReportPage_Failures(t *testing.T) {
	upstream := marketdatatest.New()
	upstream.BarErrs["2399.TW"] = errors.New("unexpected status code: 503")

	tests := []struct {
		name     string
		provider *marketdatatest.Provider
		target   string
		status   int
		banner   string
	}{
		{"empty code", sampleProvider(), "/report?code=", http.StatusBadRequest, "banner-warning"},
		{"missing code", sampleProvider(), "/report", http.StatusBadRequest, "banner-warning"},
		{"letters", sampleProvider(), "/report?code=abc", http.StatusBadRequest, "banner-warning"},
		{"not found", sampleProvider(), "/report?code=0000", http.StatusNotFound, "banner-error"},
		{"upstream", upstream, "/report?code=2399", http.StatusBadGateway, "banner-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(t, tt.provider, nil), tt.target)
			assert.Equal(t, tt.status, rec.Code)

			doc := parse(t, rec)
			assert.True(t, doc.Find(".banner").HasClass(tt.banner))
			assert.Equal(t, 0, doc.Find("table").Length())
		})
	}
}

func TestGetReportJSON(t *testing.T) {
	rec := get(t, newTestRouter(t, sampleProvider(), nil), "/api/reports/2399")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Code      string             `json:"code"`
		Symbol    string             `json:"symbol"`
		Status    string             `json:"status"`
		Banners   []contracts.Banner `json:"banners"`
		LivePrice *contracts.Quote   `json:"live_price"`
		Matrix    struct {
			Rows []struct {
				Kind  string     `json:"kind"`
				Year  int        `json:"year"`
				Cells []*float64 `json:"cells"`
			} `json:"rows"`
		} `json:"matrix"`
		Total struct {
			Kind  string     `json:"kind"`
			Cells []*float64 `json:"cells"`
		} `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2399", body.Code)
	assert.Equal(t, "2399.TW", body.Symbol)
	assert.Equal(t, "ok", body.Status)
	require.NotNil(t, body.LivePrice)
	assert.Equal(t, 23.45, body.LivePrice.Price)

	require.Len(t, body.Matrix.Rows, 2)
	assert.Equal(t, "year", body.Matrix.Rows[1].Kind)
	assert.Equal(t, 2024, body.Matrix.Rows[1].Year)
	require.Len(t, body.Matrix.Rows[1].Cells, 12)
	require.NotNil(t, body.Matrix.Rows[1].Cells[0])
	assert.Equal(t, -0.5, *body.Matrix.Rows[1].Cells[0])
	assert.Nil(t, body.Matrix.Rows[1].Cells[1], "blank months are null")

	assert.Equal(t, "total", body.Total.Kind)
	require.NotNil(t, body.Total.Cells[1])
	assert.Equal(t, 0.0, *body.Total.Cells[1])
}

// Bad upstream prices must not break the JSON body after the status line is sent
func TestGetReportJSON_NonFinitePrices(t *testing.T) {
	p := marketdatatest.New()
	p.Bars["2399.TW"] = []contracts.DailyBar{
		marketdatatest.Bar(2024, time.January, 2, 10.0, 12.0),
		marketdatatest.Bar(2024, time.February, 1, 11.0, math.Inf(1)),
		marketdatatest.Bar(2024, time.March, 1, math.NaN(), 9.0),
	}
	p.Quotes["2399.TW"] = math.NaN()

	rec := get(t, newTestRouter(t, p, nil), "/api/reports/2399")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		LivePrice struct {
			Price *float64 `json:"price"`
		} `json:"live_price"`
		Months []struct {
			Difference *float64 `json:"difference"`
			ClosePrice *float64 `json:"close_price"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	assert.Equal(t, "ok", body.Status)
	assert.Nil(t, body.LivePrice.Price)
	require.Len(t, body.Months, 3)
	require.NotNil(t, body.Months[0].Difference)
	assert.Equal(t, 2.0, *body.Months[0].Difference)
	assert.Nil(t, body.Months[1].Difference)
	assert.Nil(t, body.Months[1].ClosePrice)
	assert.Nil(t, body.Months[2].Difference)
}

func TestGetReportJSON_Status(t *testing.T) {
	router := newTestRouter(t, sampleProvider(), nil)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/api/reports/abc").Code)
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/reports/0000").Code)
}

type fakeDB struct{ healthy bool }

func (f fakeDB) HealthCheck(ctx context.Context) database.HealthStatus {
	if !f.healthy {
		return database.HealthStatus{Error: "connection refused"}
	}
	return database.HealthStatus{Healthy: true, TotalConns: 1}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		db     handlers.DBHealthChecker
		code   int
		status string
	}{
		{"no database", nil, http.StatusOK, "ok"},
		{"healthy database", fakeDB{healthy: true}, http.StatusOK, "ok"},
		{"database down", fakeDB{healthy: false}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestRouter(t, sampleProvider(), tt.db), "/health")
			assert.Equal(t, tt.code, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, "twdiff", body["service"])
			_, hasDB := body["database"]
			assert.Equal(t, tt.db != nil, hasDB)
		})
	}
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(t, sampleProvider(), nil)

	rec := get(t, router, "/health")
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := recoveryMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/reports/2399", nil)
	rec := httptest.NewRecorder()
	newTestRouter(t, sampleProvider(), nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
