package generating

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	ownIo "gridsynth/io"
	"gridsynth/raster"
	"gridsynth/synth"
	"math/rand"
	"os"
	"time"
)

type Result struct {
	ResistanceFile string
	PointFile      string
	GeoJsonFile    string // Empty when no GeoJSON was requested
	OsmFile        string // Empty when no OSM XML was requested
	MinResistance  int64
	MaxResistance  int64
}

// Generate creates the resistance and point grid for the given config and writes them to the output folder.
func Generate(config synth.Config, rng *rand.Rand) (*Result, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	sigolo.Infof("Magnitude: %d", config.Mag)
	sigolo.Infof("nrows = %d", config.NRows)
	sigolo.Infof("ncols = %d", config.NCols)
	generateStartTime := time.Now()

	resistances, err := synth.GenerateResistances(config, rng)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.MinResistance, result.MaxResistance = resistances.MinMax()
	sigolo.Infof("Min, max values: %d, %d", result.MinResistance, result.MaxResistance)

	pointGrid, points, err := synth.GeneratePoints(config)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(config.OutputFolder, os.ModePerm)
	if err != nil {
		return nil, &raster.IOError{Path: config.OutputFolder, Err: errors.Wrap(err, "Unable to create output folder")}
	}

	result.ResistanceFile, err = raster.WriteGridFile(config.ResistanceFile(), resistances, config.Compress)
	if err != nil {
		return nil, err
	}
	sigolo.Infof("Wrote %s", result.ResistanceFile)

	result.PointFile, err = raster.WriteGridFile(config.PointFile(), pointGrid, config.Compress)
	if err != nil {
		return nil, err
	}
	sigolo.Infof("Wrote %s", result.PointFile)

	if config.GeoJson {
		result.GeoJsonFile = config.FileBase() + "points.geojson"
		err = ownIo.WritePointsAsGeoJsonFile(points, pointGrid.Header, result.GeoJsonFile)
		if err != nil {
			return nil, err
		}
		sigolo.Infof("Wrote %s", result.GeoJsonFile)
	}

	if config.Osm {
		result.OsmFile = config.FileBase() + "points.osm"
		err = ownIo.WritePointsAsOsmFile(points, pointGrid.Header, result.OsmFile)
		if err != nil {
			return nil, err
		}
		sigolo.Infof("Wrote %s", result.OsmFile)
	}

	sigolo.Debugf("Finished generation in %s", time.Since(generateStartTime))
	return result, nil
}

// NewRand returns a random source for the given seed. A seed of 0 uses the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sigolo.Debugf("Use random seed %d", seed)
	return rand.New(rand.NewSource(seed))
}
