package contracts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMatrix() PivotMatrix {
	y2023 := PivotRow{Kind: RowYear, Year: 2023}
	y2023.Cells[11] = ValueCell(1.5) // Dec

	y2024 := PivotRow{Kind: RowYear, Year: 2024}
	y2024.Cells[0] = ValueCell(-0.5) // Jan
	y2024.Cells[11] = ValueCell(2.25)

	return PivotMatrix{Rows: []PivotRow{y2023, y2024}}
}

func TestPivotMatrix_Total(t *testing.T) {
	m := sampleMatrix()
	total := m.Total()

	assert.Equal(t, RowTotal, total.Kind)
	assert.Equal(t, 0, total.Year)
	assert.Equal(t, ValueCell(-0.5), total.Cells[0])
	assert.InDelta(t, 3.75, total.Cells[11].Value, 1e-12)

	// Column with no data sums to zero
	assert.Equal(t, ValueCell(0), total.Cells[5])
}

func TestPivotMatrix_TotalIdempotent(t *testing.T) {
	m := sampleMatrix()
	first := m.Total()
	second := m.Total()

	assert.Equal(t, first, second)
	assert.Len(t, m.Rows, 2, "Total must not be stored in the matrix")
}

func TestPivotMatrix_WithTotal(t *testing.T) {
	m := sampleMatrix()
	rows := m.WithTotal()

	require.Len(t, rows, 3)
	assert.Equal(t, "2023", rows[0].Label())
	assert.Equal(t, "2024", rows[1].Label())
	assert.Equal(t, TotalLabel, rows[2].Label())
	assert.Equal(t, RowTotal, rows[2].Kind)
	assert.Len(t, m.Rows, 2)
}

func TestPivotMatrix_EmptyTotal(t *testing.T) {
	var m PivotMatrix
	assert.True(t, m.Empty())

	total := m.Total()
	for _, c := range total.Cells {
		assert.Equal(t, ValueCell(0), c)
	}
}

func TestPivotMatrix_Cell(t *testing.T) {
	m := sampleMatrix()

	assert.Equal(t, ValueCell(-0.5), m.Cell(2024, 1))
	assert.True(t, m.Cell(2024, 2).Blank())
	assert.True(t, m.Cell(1999, 1).Blank())
	assert.True(t, m.Cell(2024, 13).Blank())
	assert.True(t, m.Cell(2024, 0).Blank())
}

func TestRowKind_DistinctFromYearLabel(t *testing.T) {
	// A year row can never be mistaken for the total row, whatever its label
	row := PivotRow{Kind: RowYear, Year: 0}
	assert.NotEqual(t, RowTotal, row.Kind)
	assert.Equal(t, "year", RowYear.String())
	assert.Equal(t, "total", RowTotal.String())
}

func TestPivotRow_JSON(t *testing.T) {
	row := sampleMatrix().Total()
	data, err := json.Marshal(row)
	require.NoError(t, err)

	s := string(data)
	assert.True(t, strings.HasPrefix(s, `{"kind":"total","cells":[-0.5,0,`), s)
}
