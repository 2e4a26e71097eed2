package contracts

import (
	"encoding/json"
	"fmt"
	"time"
)

// DailyBar is one trading day of an instrument
// ⭐ SSOT: provider → aggregator 전달 단위
type DailyBar struct {
	Date   time.Time `json:"date"` // calendar date, UTC midnight
	Open   float64   `json:"open"`
	High   float64   `json:"high,omitempty"`
	Low    float64   `json:"low,omitempty"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume,omitempty"`
}

// CalendarDate returns the bar's wall-clock date in its own location, as UTC midnight.
// 2024-01-02T09:00+08:00 → 2024-01-02T00:00Z
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// YearMonth groups bars by calendar month
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// YearMonthOf returns the (year, month) key of t's wall-clock date
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Before reports whether ym is an earlier month than other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// String formats as 2024-01
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthlySummary is the first open and last close of one calendar month
type MonthlySummary struct {
	YearMonth  YearMonth `json:"year_month"`
	OpenDate   time.Time `json:"open_date"`
	OpenPrice  float64   `json:"open_price"`
	CloseDate  time.Time `json:"close_date"`
	ClosePrice float64   `json:"close_price"`
	Difference float64   `json:"difference"` // ClosePrice - OpenPrice
}

// SingleDay reports whether the month had exactly one trading day
func (s MonthlySummary) SingleDay() bool {
	return s.OpenDate.Equal(s.CloseDate)
}

// MarshalJSON encodes non-finite prices as null
func (s MonthlySummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		YearMonth  YearMonth `json:"year_month"`
		OpenDate   time.Time `json:"open_date"`
		OpenPrice  Cell      `json:"open_price"`
		CloseDate  time.Time `json:"close_date"`
		ClosePrice Cell      `json:"close_price"`
		Difference Cell      `json:"difference"`
	}{
		YearMonth:  s.YearMonth,
		OpenDate:   s.OpenDate,
		OpenPrice:  ValueCell(s.OpenPrice),
		CloseDate:  s.CloseDate,
		ClosePrice: ValueCell(s.ClosePrice),
		Difference: ValueCell(s.Difference),
	})
}

// Quote is a live last-traded price
type Quote struct {
	Symbol   string    `json:"symbol"`
	Price    float64   `json:"price"`
	Currency string    `json:"currency,omitempty"`
	Time     time.Time `json:"time,omitempty"`
}

// MarshalJSON encodes a non-finite price as null
func (q Quote) MarshalJSON() ([]byte, error) {
	type plain Quote
	return json.Marshal(struct {
		plain
		Price Cell `json:"price"`
	}{plain: plain(q), Price: ValueCell(q.Price)})
}
