package synth

import (
	"github.com/hauke96/sigolo/v2"
	"gridsynth/raster"
	"gridsynth/util"
)

// Point is a sample location in the point grid.
type Point struct {
	ID  int
	Row int
	Col int
}

// anchor determines what a point offset is relative to.
type anchor int

const (
	anchorCenter anchor = iota
	anchorTop
	anchorBottom
	anchorLeft
	anchorRight
)

type axisOffset struct {
	anchor anchor
	offset int
}

type pointPlacement struct {
	id  int
	row axisOffset
	col axisOffset
}

// Points 1 and 2 are on the row of minimum resistance (middle row - 3) and two columns apart. Points 6 to 9 are
// inset by one cell from the grid corners.
var pointPlacements = []pointPlacement{
	{id: 1, row: axisOffset{anchorCenter, -3}, col: axisOffset{anchorCenter, -5}},
	{id: 2, row: axisOffset{anchorCenter, -3}, col: axisOffset{anchorCenter, -3}},
	{id: 3, row: axisOffset{anchorCenter, -3}, col: axisOffset{anchorCenter, 3}},
	{id: 4, row: axisOffset{anchorCenter, 3}, col: axisOffset{anchorCenter, 3}},
	{id: 5, row: axisOffset{anchorCenter, 3}, col: axisOffset{anchorCenter, -3}},
	{id: 6, row: axisOffset{anchorTop, 1}, col: axisOffset{anchorLeft, 1}},
	{id: 7, row: axisOffset{anchorTop, 1}, col: axisOffset{anchorRight, -1}},
	{id: 8, row: axisOffset{anchorBottom, -1}, col: axisOffset{anchorRight, -1}},
	{id: 9, row: axisOffset{anchorBottom, -1}, col: axisOffset{anchorLeft, 1}},
}

func (a axisOffset) resolve(size int) int {
	switch a.anchor {
	case anchorCenter:
		return size/2 + a.offset
	case anchorTop, anchorLeft:
		return a.offset
	case anchorBottom, anchorRight:
		return size - 1 + a.offset
	}
	util.LogFatalBug("Unknown anchor %d", a.anchor)
	return -1
}

// PointLocations returns the nine sample points for a grid of the given size ordered by their ID.
func PointLocations(config Config) ([]Point, error) {
	err := config.validateDimensions()
	if err != nil {
		return nil, err
	}

	points := make([]Point, len(pointPlacements))
	for i, placement := range pointPlacements {
		points[i] = Point{
			ID:  placement.id,
			Row: placement.row.resolve(config.NRows),
			Col: placement.col.resolve(config.NCols),
		}
	}

	return points, nil
}

// GeneratePoints creates the point grid: all cells are no-data except the nine sample points holding their ID.
func GeneratePoints(config Config) (*raster.Grid, []Point, error) {
	points, err := PointLocations(config)
	if err != nil {
		return nil, nil, err
	}

	header := config.Header()
	pointGrid := raster.NewGrid(header, header.NoData)

	for _, point := range points {
		if !header.Contains(point.Row, point.Col) {
			util.LogFatalBug("Point %d at row=%d, col=%d is outside of the %dx%d grid", point.ID, point.Row, point.Col, config.NRows, config.NCols)
		}
		if pointGrid.Get(point.Row, point.Col) != header.NoData {
			util.LogFatalBug("Point %d at row=%d, col=%d overlaps point %d", point.ID, point.Row, point.Col, pointGrid.Get(point.Row, point.Col))
		}

		sigolo.Tracef("Place point %d at row=%d, col=%d", point.ID, point.Row, point.Col)
		pointGrid.Set(point.Row, point.Col, int64(point.ID))
	}

	return pointGrid, points, nil
}
