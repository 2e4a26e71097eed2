package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/render"
	"github.com/wonny/twdiff/internal/report"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <code>",
	Short: "Print the monthly difference table for one stock",
	Long: `Runs the report once and prints it as a colored table.

Exit status is non-zero when the code is invalid, the stock is not found
or market data is unavailable. Logs go to stderr.

Example:
  go run ./cmd/twdiff report 2399
  go run ./cmd/twdiff report 2399 --no-color
  go run ./cmd/twdiff report 2399 --save   # snapshot bars into PostgreSQL`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	reportNoColor bool
	reportSave    bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().BoolVar(&reportNoColor, "no-color", false, "plain text output")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "upsert the fetched bars into daily_prices (needs DATABASE_URL)")
}

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger (stderr keeps stdout clean for the table)
	log := newLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// 3. Wire and run
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	rep := a.service.Run(ctx, args[0])

	PrintReportHeader(out, rep)
	if err := render.NewTerminalRenderer(!reportNoColor).Render(out, rep.Page()); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"stage":  contracts.StageRender,
		"symbol": rep.Symbol,
		"status": rep.Status,
	}).Debug("Report table printed")

	if rep.Status.Failed() {
		return fmt.Errorf("report %q: %s", args[0], rep.Status)
	}

	// 4. Optional snapshot
	if reportSave {
		if err := a.openStore(ctx); err != nil {
			return err
		}
		if err := a.store.SaveBars(ctx, rep.Symbol, rep.Bars); err != nil {
			return err
		}
		PrintSuccess(out, fmt.Sprintf("Saved %d bars for %s", len(rep.Bars), rep.Symbol))
	}

	return nil
}

// statusTag returns the header tag for a report status
func statusTag(s report.Status) string {
	if s.Failed() {
		return "FAILED"
	}
	return "OK"
}
