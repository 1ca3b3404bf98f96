package synth

import (
	"github.com/hauke96/sigolo/v2"
	"gridsynth/raster"
	"math/rand"
)

const (
	minBaseValue = 1
	maxBaseValue = 10
)

// GenerateResistances creates a resistance grid with values between 1 and 10^mag. Each cell is a random base value
// from [1, 10] raised to the power of mag. When structure is requested, the following regions are overwritten in
// this order, so later regions win where they overlap:
//
//	lower-right quadrant  base value (1 - 10)
//	upper-left quadrant   10^(mag-1) * base value
//	column ncols/2        1
//	column ncols/2 - 1    10^mag
//	row nrows/2           10^mag
//	row nrows/2 - 3       1
func GenerateResistances(config Config, rng *rand.Rand) (*raster.Grid, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	base := drawBaseValues(config, rng)

	resistances := raster.NewGrid(config.Header(), 0)
	for row, rowValues := range base {
		for col, value := range rowValues {
			resistances.Set(row, col, powInt(value, config.Mag))
		}
	}

	if sigolo.ShouldLogTrace() {
		minValue, maxValue := resistances.MinMax()
		sigolo.Tracef("Unstructured resistances range from %d to %d", minValue, maxValue)
	}

	if config.AddStructure {
		addStructure(config, resistances, base)
	}

	return resistances, nil
}

func drawBaseValues(config Config, rng *rand.Rand) [][]int64 {
	base := make([][]int64, config.NRows)
	for row := range base {
		base[row] = make([]int64, config.NCols)
		for col := range base[row] {
			base[row][col] = int64(minBaseValue + rng.Intn(maxBaseValue-minBaseValue+1))
		}
	}
	return base
}

func addStructure(config Config, resistances *raster.Grid, base [][]int64) {
	middleRow := config.MiddleRow()
	middleCol := config.MiddleCol()
	maxValue := pow10(config.Mag)
	upperLeftFactor := pow10(config.Mag - 1)

	sigolo.Debugf("Add structure around row %d and column %d with maximum resistance %d", middleRow, middleCol, maxValue)

	// Lower-right quadrant: low resistances
	for row := middleRow; row < config.NRows; row++ {
		for col := middleCol; col < config.NCols; col++ {
			resistances.Set(row, col, base[row][col])
		}
	}

	// Upper-left quadrant: high resistances
	for row := 0; row < middleRow; row++ {
		for col := 0; col < middleCol; col++ {
			resistances.Set(row, col, upperLeftFactor*base[row][col])
		}
	}

	// Vertical bands
	resistances.FillColumn(middleCol, 1)
	resistances.FillColumn(middleCol-1, maxValue)

	// Horizontal bands
	resistances.FillRow(middleRow, maxValue)
	resistances.FillRow(middleRow-3, 1)
}
