package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/wonny/twdiff/internal/contracts"
)

//go:embed templates/report.html
var reportTemplate string

// DefaultTitle is the page heading
const DefaultTitle = "Taiwan Stock Monthly Open/Close Difference"

// Page is everything the HTML view needs for one request
type Page struct {
	Title     string
	Code      string // value prefilled in the input field
	Symbol    string
	Banners   []contracts.Banner
	LivePrice *contracts.Quote
	Matrix    *contracts.PivotMatrix // nil → no table
}

// Rows returns the year rows plus the total row, or nil when there is no table
func (p Page) Rows() []contracts.PivotRow {
	if p.Matrix == nil || p.Matrix.Empty() {
		return nil
	}
	return p.Matrix.WithTotal()
}

// Months returns the column headers
func (p Page) Months() []string {
	return MonthHeaders()
}

// HTMLRenderer executes the embedded page template
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded template
func NewHTMLRenderer() (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"cell":  FormatCell,
		"price": FormatPrice,
		"cellClass": func(c contracts.Cell) string {
			return "cell-" + Colorize(c).String()
		},
		"cellCSS": func(c contracts.Cell) template.CSS {
			return template.CSS(Colorize(c).CSS())
		},
	}

	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render writes the page to w. Output is buffered so a template error never
// leaves a half-written response.
func (r *HTMLRenderer) Render(w io.Writer, page Page) error {
	if page.Title == "" {
		page.Title = DefaultTitle
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to execute report template: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
