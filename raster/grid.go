package raster

import (
	"math"
)

// Grid is a row-major integer raster. Cells[row][col] with row 0 being the first data row of the file.
type Grid struct {
	Header
	Cells [][]int64
}

// NewGrid creates a grid with the dimensions of the header where every cell holds the fill value.
func NewGrid(header Header, fill int64) *Grid {
	cells := make([][]int64, header.NRows)
	for row := range cells {
		cells[row] = make([]int64, header.NCols)
		if fill != 0 {
			for col := range cells[row] {
				cells[row][col] = fill
			}
		}
	}

	return &Grid{
		Header: header,
		Cells:  cells,
	}
}

func (g *Grid) Get(row int, col int) int64 { return g.Cells[row][col] }

func (g *Grid) Set(row int, col int, value int64) { g.Cells[row][col] = value }

func (g *Grid) FillRow(row int, value int64) {
	for col := range g.Cells[row] {
		g.Cells[row][col] = value
	}
}

func (g *Grid) FillColumn(col int, value int64) {
	for row := range g.Cells {
		g.Cells[row][col] = value
	}
}

// MinMax returns the smallest and largest cell value ignoring no-data cells. For a grid without data, both values
// are the no-data value.
func (g *Grid) MinMax() (int64, int64) {
	minValue := int64(math.MaxInt64)
	maxValue := int64(math.MinInt64)
	found := false

	for _, rowValues := range g.Cells {
		for _, v := range rowValues {
			if v == g.NoData {
				continue
			}
			found = true
			if v < minValue {
				minValue = v
			}
			if v > maxValue {
				maxValue = v
			}
		}
	}

	if !found {
		return g.NoData, g.NoData
	}
	return minValue, maxValue
}

// CountNot returns the number of cells having a value different from the given one.
func (g *Grid) CountNot(value int64) int {
	count := 0
	for _, rowValues := range g.Cells {
		for _, v := range rowValues {
			if v != value {
				count++
			}
		}
	}
	return count
}
