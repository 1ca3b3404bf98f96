package synth

import (
	"fmt"
	"github.com/pkg/errors"
	"gridsynth/raster"
	"path/filepath"
)

const (
	MinDimension = 11
	MinMagnitude = 1
	MaxMagnitude = 18 // 10^19 does not fit into an int64
)

// Config holds all parameters of one generation run. It's passed by value and never modified.
type Config struct {
	NRows        int
	NCols        int
	Mag          int
	OutputFolder string
	AddStructure bool // Adds quadrants and min/max bands to the resistance grid
	Compress     bool
	GeoJson      bool // Additionally write the sample points as GeoJSON
	Osm          bool // Additionally write the sample points as OSM XML
}

func (c Config) Validate() error {
	err := c.validateDimensions()
	if err != nil {
		return err
	}
	if c.Mag < MinMagnitude || c.Mag > MaxMagnitude {
		return errors.Wrapf(ErrInvalidMagnitude, "magnitude must be within [%d, %d] but was %d", MinMagnitude, MaxMagnitude, c.Mag)
	}
	return nil
}

func (c Config) validateDimensions() error {
	if c.NRows < MinDimension || c.NCols < MinDimension {
		return errors.Wrapf(ErrInvalidDimensions, "grid must be at least %dx%d but was %dx%d", MinDimension, MinDimension, c.NRows, c.NCols)
	}
	return nil
}

func (c Config) Header() raster.Header {
	return raster.NewHeader(c.NRows, c.NCols)
}

func (c Config) MiddleRow() int { return c.NRows / 2 }

func (c Config) MiddleCol() int { return c.NCols / 2 }

// FileBase returns the path prefix shared by all output files, e.g. "out/11x11mag15".
func (c Config) FileBase() string {
	return filepath.Join(c.OutputFolder, fmt.Sprintf("%dx%dmag%d", c.NRows, c.NCols, c.Mag))
}

func (c Config) ResistanceFile() string {
	return c.FileBase() + "resist.asc"
}

func (c Config) PointFile() string {
	return c.FileBase() + "points.asc"
}

// pow10 returns 10^exp for 0 <= exp <= MaxMagnitude.
func pow10(exp int) int64 {
	result := int64(1)
	for i := 0; i < exp; i++ {
		result *= 10
	}
	return result
}

// powInt returns base^exp. Overflow is prevented by the magnitude limit, since base is at most 10.
func powInt(base int64, exp int) int64 {
	result := int64(1)
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}
