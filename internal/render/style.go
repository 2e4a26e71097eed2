// Package render turns a pivot matrix into styled HTML or terminal output.
package render

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/wonny/twdiff/internal/contracts"
)

// Style is the highlight applied to a single cell
type Style int

const (
	StyleNone     Style = iota
	StylePositive       // net-positive month
	StyleNegative       // net-negative month
)

// ⭐ SSOT: 셀 색상 (양수=따뜻한 색, 음수=차가운 색)
const (
	PositiveBackground  = "#cc6666"
	NegativeBackground  = "#669966"
	HighlightForeground = "#ffffff"
)

// Colorize maps a cell to its style by sign alone.
// Blank, NaN and zero cells are unstyled; ±Inf follow their sign.
func Colorize(c contracts.Cell) Style {
	if c.Blank() {
		return StyleNone
	}
	switch {
	case c.Value > 0:
		return StylePositive
	case c.Value < 0:
		return StyleNegative
	default:
		return StyleNone
	}
}

// String returns the style name, also used as the CSS class suffix
func (s Style) String() string {
	switch s {
	case StylePositive:
		return "positive"
	case StyleNegative:
		return "negative"
	default:
		return "none"
	}
}

// CSS returns the inline declaration for the style; empty for StyleNone
func (s Style) CSS() string {
	switch s {
	case StylePositive:
		return "background-color: " + PositiveBackground + "; color: " + HighlightForeground
	case StyleNegative:
		return "background-color: " + NegativeBackground + "; color: " + HighlightForeground
	default:
		return ""
	}
}

// FormatCell renders a value with two decimals, rounding half away from zero.
// Blank cells render as "".
func FormatCell(c contracts.Cell) string {
	if c.Blank() {
		return ""
	}
	if math.IsInf(c.Value, 1) {
		return "+Inf"
	}
	if math.IsInf(c.Value, -1) {
		return "-Inf"
	}
	return decimal.NewFromFloat(c.Value).StringFixed(2)
}

// FormatPrice renders a quote price with two decimals
func FormatPrice(price float64) string {
	return FormatCell(contracts.ValueCell(price))
}

// MonthHeaders returns the column headers 1..12
func MonthHeaders() []string {
	headers := make([]string, contracts.MonthsPerYear)
	for i := range headers {
		headers[i] = strconv.Itoa(i + 1)
	}
	return headers
}
