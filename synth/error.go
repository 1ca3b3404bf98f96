package synth

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned for grids too small to place all sample points.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidMagnitude is returned for magnitudes whose resistances cannot be represented as int64.
	ErrInvalidMagnitude = errors.New("invalid magnitude")
)
