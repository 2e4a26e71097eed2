package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/twdiff/internal/api/handlers"
	"github.com/wonny/twdiff/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(reportHandler *handlers.ReportHandler, healthHandler *handlers.HealthHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")

	// Browser UI
	r.HandleFunc("/", reportHandler.Index).Methods("GET")
	r.HandleFunc("/report", reportHandler.Page).Methods("GET")

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/reports/{code}", reportHandler.GetReport).Methods("GET")

	// Apply middleware (outermost first)
	r.Use(requestIDMiddleware(log))
	r.Use(loggingMiddleware())
	r.Use(recoveryMiddleware())

	return r
}
