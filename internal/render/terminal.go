package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wonny/twdiff/internal/contracts"
)

const (
	labelWidth = 7
	cellWidth  = 10
)

// TerminalRenderer prints the matrix as an aligned, colored table
type TerminalRenderer struct {
	color bool

	header lipgloss.Style
	label  lipgloss.Style
	cell   lipgloss.Style
	rule   lipgloss.Style
}

// NewTerminalRenderer returns a renderer; color=false prints plain text
func NewTerminalRenderer(color bool) *TerminalRenderer {
	return &TerminalRenderer{
		color:  color,
		header: lipgloss.NewStyle().Bold(true).Width(cellWidth).Align(lipgloss.Right),
		label:  lipgloss.NewStyle().Bold(true).Width(labelWidth).Align(lipgloss.Left),
		cell:   lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right),
		rule:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// styleFor returns the lipgloss style of one cell
func (r *TerminalRenderer) styleFor(c contracts.Cell) lipgloss.Style {
	if !r.color {
		return r.cell
	}
	switch Colorize(c) {
	case StylePositive:
		return r.cell.Background(lipgloss.Color(PositiveBackground)).Foreground(lipgloss.Color(HighlightForeground))
	case StyleNegative:
		return r.cell.Background(lipgloss.Color(NegativeBackground)).Foreground(lipgloss.Color(HighlightForeground))
	default:
		return r.cell
	}
}

// Table renders the year rows, a separator and the total row
func (r *TerminalRenderer) Table(m contracts.PivotMatrix) string {
	if m.Empty() {
		return ""
	}

	lines := make([]string, 0, len(m.Rows)+3)

	head := []string{r.label.Render("Year")}
	for _, h := range MonthHeaders() {
		head = append(head, r.header.Render(h))
	}
	headLine := lipgloss.JoinHorizontal(lipgloss.Top, head...)
	lines = append(lines, headLine)

	width := lipgloss.Width(headLine)
	separator := strings.Repeat("─", width)
	if r.color {
		separator = r.rule.Render(separator)
	}
	lines = append(lines, separator)

	for _, row := range m.WithTotal() {
		if row.Kind == contracts.RowTotal {
			lines = append(lines, separator)
		}
		parts := []string{r.label.Render(row.Label())}
		for _, c := range row.Cells {
			parts = append(parts, r.styleFor(c).Render(FormatCell(c)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}

	return strings.Join(lines, "\n")
}

// Banner renders one status line prefixed by its level
func (r *TerminalRenderer) Banner(b contracts.Banner) string {
	prefix := "[" + strings.ToUpper(string(b.Level)) + "]"
	if r.color {
		prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(bannerColors[b.Level])).Render(prefix)
	}
	return prefix + " " + b.Text
}

var bannerColors = map[contracts.Level]string{
	contracts.LevelInfo:    "12",
	contracts.LevelSuccess: "10",
	contracts.LevelWarning: "11",
	contracts.LevelError:   "9",
}

// Render writes banners, the live price line and the table
func (r *TerminalRenderer) Render(w io.Writer, page Page) error {
	var b strings.Builder

	for _, banner := range page.Banners {
		b.WriteString(r.Banner(banner))
		b.WriteByte('\n')
	}
	if q := page.LivePrice; q != nil {
		b.WriteString("Live price " + q.Symbol + ": " + FormatPrice(q.Price))
		if q.Currency != "" {
			b.WriteString(" " + q.Currency)
		}
		b.WriteByte('\n')
	}
	if page.Matrix != nil && !page.Matrix.Empty() {
		b.WriteByte('\n')
		b.WriteString(r.Table(*page.Matrix))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
