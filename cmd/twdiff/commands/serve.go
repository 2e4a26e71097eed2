package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/twdiff/internal/api"
	"github.com/wonny/twdiff/internal/api/handlers"
	"github.com/wonny/twdiff/internal/marketdata"
	"github.com/wonny/twdiff/internal/render"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Starts the HTTP server.

Endpoints:
  GET  /                    - Query form
  GET  /report?code=2399    - Monthly difference table
  GET  /api/reports/{code}  - Same report as JSON
  GET  /health              - Health check

Example:
  go run ./cmd/twdiff serve
  go run ./cmd/twdiff serve --port 9000`,
	RunE: runServe,
}

var (
	servePort string
)

func init() {
	rootCmd.AddCommand(serveCmd)

	// Flags
	serveCmd.Flags().StringVar(&servePort, "port", "", "listen port (default PORT or 8089)")
}

func runServe(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== twdiff server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := newLogger(cfg, os.Stdout)

	// 3. Wire provider, cache and report service
	a, err := newApp(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	// 4. Create handlers
	html, err := render.NewHTMLRenderer()
	if err != nil {
		return err
	}

	var dbCheck handlers.DBHealthChecker
	if a.db != nil {
		dbCheck = a.db
	}

	reportHandler := handlers.NewReportHandler(a.service, html, cfg.DefaultCode, log)
	healthHandler := handlers.NewHealthHandler("twdiff", marketdata.Name(a.provider), dbCheck)

	// 5. Create router and server
	router := api.NewRouter(reportHandler, healthHandler, log)
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	fmt.Fprintln(out, "\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a listen failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
