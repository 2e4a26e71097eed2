package render

import "github.com/wonny/twdiff/internal/contracts"

// sampleMatrix: 2023 Dec +1.5, 2024 Jan -0.5, 2024 Dec 2.25
func sampleMatrix() *contracts.PivotMatrix {
	y2023 := contracts.PivotRow{Kind: contracts.RowYear, Year: 2023}
	y2023.Cells[11] = contracts.ValueCell(1.5)

	y2024 := contracts.PivotRow{Kind: contracts.RowYear, Year: 2024}
	y2024.Cells[0] = contracts.ValueCell(-0.5)
	y2024.Cells[11] = contracts.ValueCell(2.25)

	return &contracts.PivotMatrix{Rows: []contracts.PivotRow{y2023, y2024}}
}
