package monthly

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/twdiff/internal/contracts"
	"github.com/wonny/twdiff/internal/marketdata/marketdatatest"
)

var bar = marketdatatest.Bar

func TestSummarize_JanuaryExample(t *testing.T) {
	bars := []contracts.DailyBar{
		bar(2024, time.January, 1, 10.0, 12.0),
		bar(2024, time.January, 31, 11.0, 9.5),
	}

	got := Summarize(bars)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, contracts.YearMonth{Year: 2024, Month: time.January}, s.YearMonth)
	assert.Equal(t, 10.0, s.OpenPrice)
	assert.Equal(t, 9.5, s.ClosePrice)
	assert.Equal(t, -0.5, s.Difference)
	assert.Equal(t, 1, s.OpenDate.Day())
	assert.Equal(t, 31, s.CloseDate.Day())
}

func TestSummarize_SingleTradingDay(t *testing.T) {
	got := Summarize([]contracts.DailyBar{bar(2024, time.February, 15, 20.0, 20.75)})
	require.Len(t, got, 1)

	assert.True(t, got[0].SingleDay())
	assert.Equal(t, 0.75, got[0].Difference)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
	assert.True(t, Aggregate(nil).Empty())
}

func TestSummarize_NormalizesTimezone(t *testing.T) {
	taipei := time.FixedZone("CST", 8*3600)
	bars := []contracts.DailyBar{
		// 2024-02-01 01:00 Taipei is still January in UTC; the wall-clock date decides
		{Date: time.Date(2024, 1, 31, 9, 0, 0, 0, taipei), Open: 5, Close: 6},
		{Date: time.Date(2024, 2, 1, 1, 0, 0, 0, taipei), Open: 7, Close: 8},
	}

	got := Summarize(bars)
	require.Len(t, got, 2)
	assert.Equal(t, time.January, got[0].YearMonth.Month)
	assert.Equal(t, time.February, got[1].YearMonth.Month)
	assert.Equal(t, time.UTC, got[1].OpenDate.Location())
	assert.Equal(t, 1.0, got[1].Difference)
}

func TestSummarize_UnorderedInput(t *testing.T) {
	bars := []contracts.DailyBar{
		bar(2024, time.March, 29, 3, 4),
		bar(2024, time.March, 1, 1, 2),
		bar(2024, time.March, 15, 9, 9),
	}

	got := Summarize(bars)
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].OpenPrice)
	assert.Equal(t, 4.0, got[0].ClosePrice)
	// input untouched
	assert.Equal(t, 29, bars[0].Date.Day())
}

// Every month present yields exactly one summary whose difference is last close - first open
func TestSummarize_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	start := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

	var bars []contracts.DailyBar
	firstOpen := map[contracts.YearMonth]float64{}
	lastClose := map[contracts.YearMonth]float64{}

	for d := start; d.Before(start.AddDate(6, 0, 0)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday || rng.Intn(10) == 0 {
			continue
		}
		// skip whole months now and then
		if d.Month() == time.Month(1+rng.Intn(12)) && d.Day() == 1 && rng.Intn(3) == 0 {
			d = d.AddDate(0, 1, -1)
			continue
		}
		b := contracts.DailyBar{Date: d, Open: 50 + rng.Float64()*50, Close: 50 + rng.Float64()*50}
		ym := contracts.YearMonthOf(d)
		if _, ok := firstOpen[ym]; !ok {
			firstOpen[ym] = b.Open
		}
		lastClose[ym] = b.Close
		bars = append(bars, b)
	}

	got := Summarize(bars)
	require.Len(t, got, len(firstOpen))

	for i, s := range got {
		if i > 0 {
			assert.True(t, got[i-1].YearMonth.Before(s.YearMonth))
		}
		assert.Equal(t, lastClose[s.YearMonth]-firstOpen[s.YearMonth], s.Difference, s.YearMonth.String())
	}

	m := Aggregate(bars)
	for ym := range firstOpen {
		c := m.Cell(ym.Year, int(ym.Month))
		assert.True(t, c.Valid, ym.String())
		assert.Equal(t, lastClose[ym]-firstOpen[ym], c.Value)
	}
}

func TestPivot(t *testing.T) {
	bars := []contracts.DailyBar{
		bar(2022, time.November, 1, 10, 11),
		bar(2022, time.November, 30, 11, 12), // +2
		bar(2023, time.January, 3, 12, 10),   // -2 (single day)
		bar(2024, time.November, 1, 5, 5.5),
		bar(2024, time.November, 29, 5.5, 5.25), // +0.25
	}

	m := Aggregate(bars)
	require.Len(t, m.Rows, 3)

	assert.Equal(t, []int{2022, 2023, 2024}, []int{m.Rows[0].Year, m.Rows[1].Year, m.Rows[2].Year})
	for _, row := range m.Rows {
		assert.Equal(t, contracts.RowYear, row.Kind)
	}

	assert.Equal(t, contracts.ValueCell(2), m.Cell(2022, 11))
	assert.Equal(t, contracts.ValueCell(-2), m.Cell(2023, 1))
	assert.Equal(t, contracts.ValueCell(0.25), m.Cell(2024, 11))

	// absent months are blank, not zero
	assert.False(t, m.Cell(2022, 1).Valid)
	assert.False(t, m.Cell(2023, 11).Valid)

	total := m.Total()
	assert.Equal(t, contracts.RowTotal, total.Kind)
	assert.InDelta(t, 2.25, total.Cells[10].Value, 1e-12)
	assert.Equal(t, -2.0, total.Cells[0].Value)
	assert.Equal(t, 0.0, total.Cells[5].Value)
}

func TestPivot_TotalMatchesColumnSums(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var summaries []contracts.MonthlySummary
	for y := 2000; y < 2025; y++ {
		for mo := time.January; mo <= time.December; mo++ {
			if rng.Intn(4) == 0 {
				continue
			}
			summaries = append(summaries, contracts.MonthlySummary{
				YearMonth:  contracts.YearMonth{Year: y, Month: mo},
				Difference: (rng.Float64() - 0.5) * 1e6,
			})
		}
	}

	m := Pivot(summaries)
	total := m.Total()

	for col := 0; col < contracts.MonthsPerYear; col++ {
		sum := 0.0
		for _, row := range m.Rows {
			if row.Cells[col].Valid {
				sum += row.Cells[col].Value
			}
		}
		assert.Equal(t, sum, total.Cells[col].Value, "month %d", col+1)
		assert.False(t, math.IsNaN(total.Cells[col].Value))
	}

	assert.Equal(t, total, m.Total(), "recomputing the total is idempotent")
}
