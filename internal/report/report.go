// Package report runs the validate → resolve → quote → aggregate pipeline for one query.
package report

import (
	"time"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/render"
)

// Status is the outcome of one report query
type Status string

const (
	StatusOK            Status = "ok"
	StatusInvalidInput  Status = "invalid_input"
	StatusNotFound      Status = "not_found"
	StatusUpstreamError Status = "upstream_error"
)

// Failed reports whether the query produced no table
func (s Status) Failed() bool {
	return s != StatusOK
}

// User-facing messages
const (
	msgInvalidInput = "Please enter a valid Taiwan stock code (digits only, e.g. 2399)"
	msgNotFound     = "No such stock: %s. Please check the code."
	msgUpstream     = "Market data is unavailable right now, please try again later"
	msgFound        = "Fetched %s"
	msgNoLivePrice  = "Live price is unavailable"
)

// Report is the render instruction set for one query.
// Built fresh per request; nothing is shared between queries.
type Report struct {
	Code        string                     `json:"code"`
	Symbol      string                     `json:"symbol,omitempty"`
	Status      Status                     `json:"status"`
	Banners     []contracts.Banner         `json:"banners"`
	LivePrice   *contracts.Quote           `json:"live_price,omitempty"`
	Months      []contracts.MonthlySummary `json:"months,omitempty"`
	Matrix      *contracts.PivotMatrix     `json:"matrix,omitempty"`
	Total       *contracts.PivotRow        `json:"total,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`

	// Bars is the resolved daily series, kept for snapshotting
	Bars []contracts.DailyBar `json:"-"`
}

// HasTable reports whether there is a matrix to show
func (r Report) HasTable() bool {
	return r.Matrix != nil && !r.Matrix.Empty()
}

// Page converts the report into the HTML/terminal view model
func (r Report) Page() render.Page {
	return render.Page{
		Code:      r.Code,
		Symbol:    r.Symbol,
		Banners:   r.Banners,
		LivePrice: r.LivePrice,
		Matrix:    r.Matrix,
	}
}

func (r *Report) addBanner(b contracts.Banner) {
	r.Banners = append(r.Banners, b)
}
