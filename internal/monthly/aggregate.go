// Package monthly turns a daily series into per-month open/close differences
// and pivots them into a Year × Month matrix.
package monthly

import (
	"sort"

	"github.com/wonny/twdiff/internal/contracts"
)

// Aggregate is Pivot(Summarize(bars))
func Aggregate(bars []contracts.DailyBar) contracts.PivotMatrix {
	return Pivot(Summarize(bars))
}

// Summarize returns one summary per calendar month present in bars, oldest first.
// Each summary pairs the first bar's open with the last bar's close of that month.
func Summarize(bars []contracts.DailyBar) []contracts.MonthlySummary {
	if len(bars) == 0 {
		return nil
	}

	normalized := make([]contracts.DailyBar, len(bars))
	for i, b := range bars {
		b.Date = contracts.CalendarDate(b.Date)
		normalized[i] = b
	}
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Date.Before(normalized[j].Date)
	})

	var summaries []contracts.MonthlySummary
	for _, b := range normalized {
		ym := contracts.YearMonthOf(b.Date)

		n := len(summaries)
		if n == 0 || summaries[n-1].YearMonth != ym {
			summaries = append(summaries, contracts.MonthlySummary{
				YearMonth: ym,
				OpenDate:  b.Date,
				OpenPrice: b.Open,
			})
			n++
		}

		s := &summaries[n-1]
		s.CloseDate = b.Date
		s.ClosePrice = b.Close
		s.Difference = s.ClosePrice - s.OpenPrice
	}

	return summaries
}

// Pivot arranges summaries into rows by year (ascending) and columns by month.
// Months without a summary stay blank.
func Pivot(summaries []contracts.MonthlySummary) contracts.PivotMatrix {
	byYear := make(map[int]*contracts.PivotRow)
	var years []int

	for _, s := range summaries {
		row, ok := byYear[s.YearMonth.Year]
		if !ok {
			row = &contracts.PivotRow{Kind: contracts.RowYear, Year: s.YearMonth.Year}
			byYear[s.YearMonth.Year] = row
			years = append(years, s.YearMonth.Year)
		}
		row.Cells[int(s.YearMonth.Month)-1] = contracts.ValueCell(s.Difference)
	}

	sort.Ints(years)

	m := contracts.PivotMatrix{Rows: make([]contracts.PivotRow, 0, len(years))}
	for _, y := range years {
		m.Rows = append(m.Rows, *byYear[y])
	}
	return m
}
