package contracts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// MonthsPerYear is the number of pivot columns
const MonthsPerYear = 12

// TotalLabel is the display label of the total row
const TotalLabel = "Total"

// Cell is one pivot value; Valid == false means no trading data (blank, not zero)
type Cell struct {
	Value float64
	Valid bool
}

// ValueCell returns a present cell
func ValueCell(v float64) Cell {
	return Cell{Value: v, Valid: true}
}

// Blank reports whether the cell carries no value
func (c Cell) Blank() bool {
	return !c.Valid || math.IsNaN(c.Value)
}

// MarshalJSON encodes blank cells as null
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Blank() || math.IsInf(c.Value, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// RowKind distinguishes year rows from the synthetic total row.
// The total row is identified by kind, never by its label.
type RowKind int

const (
	RowYear RowKind = iota
	RowTotal
)

// String returns the row kind name
func (k RowKind) String() string {
	switch k {
	case RowYear:
		return "year"
	case RowTotal:
		return "total"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// MarshalText encodes the kind as its name
func (k RowKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// PivotRow is one row of the Year × Month matrix
type PivotRow struct {
	Kind  RowKind             `json:"kind"`
	Year  int                 `json:"year,omitempty"` // zero for RowTotal
	Cells [MonthsPerYear]Cell `json:"cells"`          // index 0 = January
}

// Label returns the row header shown to users
func (r PivotRow) Label() string {
	if r.Kind == RowTotal {
		return TotalLabel
	}
	return strconv.Itoa(r.Year)
}

// PivotMatrix holds one row per year present in the data, ascending.
// The total row is derived on demand and never stored.
type PivotMatrix struct {
	Rows []PivotRow `json:"rows"`
}

// Empty reports whether the matrix has no year rows
func (m PivotMatrix) Empty() bool {
	return len(m.Rows) == 0
}

// Cell returns the cell for (year, month); blank when absent
func (m PivotMatrix) Cell(year, month int) Cell {
	if month < 1 || month > MonthsPerYear {
		return Cell{}
	}
	for _, row := range m.Rows {
		if row.Kind == RowYear && row.Year == year {
			return row.Cells[month-1]
		}
	}
	return Cell{}
}

// Total sums every month column over the year rows.
// Blank cells contribute nothing; a column without values sums to 0.
func (m PivotMatrix) Total() PivotRow {
	total := PivotRow{Kind: RowTotal}
	for i := range total.Cells {
		total.Cells[i] = ValueCell(0)
	}

	for _, row := range m.Rows {
		if row.Kind != RowYear {
			continue
		}
		for i, c := range row.Cells {
			if !c.Blank() {
				total.Cells[i].Value += c.Value
			}
		}
	}
	return total
}

// WithTotal returns the year rows followed by a freshly computed total row
func (m PivotMatrix) WithTotal() []PivotRow {
	rows := make([]PivotRow, 0, len(m.Rows)+1)
	rows = append(rows, m.Rows...)
	return append(rows, m.Total())
}
