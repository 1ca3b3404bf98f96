package raster

import (
	"github.com/paulmach/orb"
)

const DefaultNoData int64 = -9999

// Header contains the spatial metadata of an ASCII grid. Rows are counted from the top, the lower-left corner is the
// origin of the map coordinates.
type Header struct {
	NCols     int
	NRows     int
	XllCorner float64
	YllCorner float64
	CellSize  float64
	NoData    int64
}

// NewHeader returns a header located at the origin with a cell size of 1 and the default no-data value.
func NewHeader(nrows int, ncols int) Header {
	return Header{
		NCols:     ncols,
		NRows:     nrows,
		XllCorner: 0,
		YllCorner: 0,
		CellSize:  1,
		NoData:    DefaultNoData,
	}
}

// Bound returns the extent of the whole grid in map coordinates.
func (h Header) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{h.XllCorner, h.YllCorner},
		Max: orb.Point{
			h.XllCorner + float64(h.NCols)*h.CellSize,
			h.YllCorner + float64(h.NRows)*h.CellSize,
		},
	}
}

// CellCenter returns the center of the given cell in map coordinates. Row 0 is the northernmost row.
func (h Header) CellCenter(row int, col int) orb.Point {
	x := h.XllCorner + (float64(col)+0.5)*h.CellSize
	y := h.YllCorner + (float64(h.NRows-row)-0.5)*h.CellSize
	return orb.Point{x, y}
}

func (h Header) Contains(row int, col int) bool {
	return row >= 0 && row < h.NRows && col >= 0 && col < h.NCols
}
