package generating

import (
	"github.com/pkg/errors"
	"gridsynth/raster"
	"gridsynth/synth"
	"gridsynth/util"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerate_compressed(t *testing.T) {
	// Arrange
	folder := filepath.Join(t.TempDir(), "output")
	config := synth.Config{
		NRows:        11,
		NCols:        13,
		Mag:          15,
		OutputFolder: folder,
		AddStructure: true,
		Compress:     true,
	}

	// Act
	result, err := Generate(config, rand.New(rand.NewSource(5)))

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, filepath.Join(folder, "11x13mag15resist.asc.gz"), result.ResistanceFile)
	util.AssertEqual(t, filepath.Join(folder, "11x13mag15points.asc.gz"), result.PointFile)
	util.AssertEqual(t, "", result.GeoJsonFile)
	util.AssertEqual(t, "", result.OsmFile)
	util.AssertEqual(t, int64(1), result.MinResistance)
	util.AssertEqual(t, int64(1000000000000000), result.MaxResistance)

	resistances, err := raster.ReadGridFile(result.ResistanceFile)
	util.AssertNil(t, err)
	points, err := raster.ReadGridFile(result.PointFile)
	util.AssertNil(t, err)

	util.AssertEqual(t, resistances.Header, points.Header)
	util.AssertEqual(t, raster.NewHeader(11, 13), resistances.Header)

	expectedResistances, err := synth.GenerateResistances(config, rand.New(rand.NewSource(5)))
	util.AssertNil(t, err)
	util.AssertEqual(t, expectedResistances.Cells, resistances.Cells)

	util.AssertEqual(t, 9, points.CountNot(raster.DefaultNoData))
	util.AssertEqual(t, int64(1), points.Get(2, 1))
	util.AssertEqual(t, int64(2), points.Get(2, 3))
}

func TestGenerate_plainWithVectorFiles(t *testing.T) {
	// Arrange
	folder := t.TempDir()
	config := synth.Config{
		NRows:        20,
		NCols:        20,
		Mag:          3,
		OutputFolder: folder,
		GeoJson:      true,
		Osm:          true,
	}

	// Act
	result, err := Generate(config, rand.New(rand.NewSource(5)))

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, filepath.Join(folder, "20x20mag3resist.asc"), result.ResistanceFile)
	util.AssertEqual(t, filepath.Join(folder, "20x20mag3points.asc"), result.PointFile)
	util.AssertEqual(t, filepath.Join(folder, "20x20mag3points.geojson"), result.GeoJsonFile)
	util.AssertEqual(t, filepath.Join(folder, "20x20mag3points.osm"), result.OsmFile)
	util.AssertTrue(t, result.MinResistance >= 1)
	util.AssertTrue(t, result.MaxResistance <= 1000)

	data, err := os.ReadFile(result.ResistanceFile)
	util.AssertNil(t, err)
	util.AssertMatch(t, "^ncols         20\nnrows         20\n", string(data))

	entries, err := os.ReadDir(folder)
	util.AssertNil(t, err)
	util.AssertEqual(t, 4, len(entries))
}

func TestGenerate_invalidConfigWritesNothing(t *testing.T) {
	// Arrange
	folder := filepath.Join(t.TempDir(), "output")
	config := synth.Config{NRows: 10, NCols: 11, Mag: 2, OutputFolder: folder}

	// Act
	result, err := Generate(config, rand.New(rand.NewSource(5)))

	// Assert
	util.AssertNil(t, result)
	util.AssertErrorIs(t, synth.ErrInvalidDimensions, err)

	_, err = os.Stat(folder)
	util.AssertTrue(t, errors.Is(err, os.ErrNotExist))
}

func TestGenerate_unwritableOutput(t *testing.T) {
	// Arrange
	parent := t.TempDir()
	blockingFile := filepath.Join(parent, "file")
	util.AssertNil(t, os.WriteFile(blockingFile, []byte("foo"), 0644))
	config := synth.Config{NRows: 11, NCols: 11, Mag: 2, OutputFolder: filepath.Join(blockingFile, "output")}

	// Act
	result, err := Generate(config, rand.New(rand.NewSource(5)))

	// Assert
	util.AssertNil(t, result)
	var ioErr *raster.IOError
	util.AssertTrue(t, errors.As(err, &ioErr))
}
