package commands

import (
	"fmt"
	"io"

	"github.com/wonny/twdiff/internal/report"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

// PrintReportHeader prints the query header
func PrintReportHeader(w io.Writer, rep report.Report) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  Monthly open/close difference [%s]\n", statusTag(rep.Status))
	PrintSeparator(w)
	fmt.Fprintf(w, "  Code      : %s\n", rep.Code)

	// Optional symbol
	if rep.Symbol != "" {
		fmt.Fprintf(w, "  Symbol    : %s\n", rep.Symbol)
	}

	// Optional coverage
	if n := len(rep.Months); n > 0 {
		fmt.Fprintf(w, "  Period    : %s ~ %s (%d months)\n", rep.Months[0].YearMonth, rep.Months[n-1].YearMonth, n)
	}

	fmt.Fprintf(w, "  Generated : %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	PrintSeparator(w)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, "───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════")
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}
