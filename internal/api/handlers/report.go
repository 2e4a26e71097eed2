package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/render"
	"github.com/wonny/twdiff/internal/report"
	"github.com/wonny/twdiff/pkg/logger"
)

// ReportRunner builds one report per query
type ReportRunner interface {
	Run(ctx context.Context, rawCode string) report.Report
}

// PageRenderer writes one HTML report page
type PageRenderer interface {
	Render(w io.Writer, page render.Page) error
}

// ReportHandler serves the report page and its JSON twin
// ⭐ SSOT: 리포트 HTTP 핸들러는 이 구조체에서만
type ReportHandler struct {
	service     ReportRunner
	html        PageRenderer
	defaultCode string
	logger      *logger.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportRunner, html PageRenderer, defaultCode string, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service:     service,
		html:        html,
		defaultCode: defaultCode,
		logger:      log,
	}
}

// Index renders the empty form prefilled with the default code
// GET /
func (h *ReportHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, render.Page{Code: h.defaultCode})
}

// Page runs the pipeline and renders the full HTML report
// GET /report?code=2399
func (h *ReportHandler) Page(w http.ResponseWriter, r *http.Request) {
	rep := h.service.Run(r.Context(), r.URL.Query().Get("code"))
	h.renderPage(w, r, statusCode(rep.Status), rep.Page())
}

// GetReport returns the report as JSON
// GET /api/reports/{code}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	rep := h.service.Run(r.Context(), code)
	respondJSON(w, statusCode(rep.Status), rep)
}

func (h *ReportHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, page render.Page) {
	log := logger.FromContext(r.Context(), h.logger).WithFields(map[string]interface{}{
		"stage":  contracts.StageRender,
		"code":   page.Code,
		"symbol": page.Symbol,
	})

	var buf bytes.Buffer
	if err := h.html.Render(&buf, page); err != nil {
		log.WithError(err).Error("Failed to render report page")
		respondError(w, http.StatusInternalServerError, "Failed to render report")
		return
	}
	log.Debug("Report page rendered")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// statusCode maps a report status to its HTTP status
func statusCode(s report.Status) int {
	switch s {
	case report.StatusOK:
		return http.StatusOK
	case report.StatusInvalidInput:
		return http.StatusBadRequest
	case report.StatusNotFound:
		return http.StatusNotFound
	case report.StatusUpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
