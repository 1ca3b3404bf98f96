package raster

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const GzipSuffix = ".gz"

// WriteGrid writes the grid in the ESRI ASCII grid format. Each data row ends with a space before the newline.
func WriteGrid(writer io.Writer, grid *Grid) error {
	headerLines := [][2]string{
		{"ncols", strconv.Itoa(grid.NCols)},
		{"nrows", strconv.Itoa(grid.NRows)},
		{"xllcorner", formatNumber(grid.XllCorner)},
		{"yllcorner", formatNumber(grid.YllCorner)},
		{"cellsize", formatNumber(grid.CellSize)},
		{"NODATA_value", strconv.FormatInt(grid.NoData, 10)},
	}

	for _, line := range headerLines {
		_, err := fmt.Fprintf(writer, "%-14s%s\n", line[0], line[1])
		if err != nil {
			return errors.Wrapf(err, "Unable to write header field %s", line[0])
		}
	}

	var rowBuffer []byte
	for row, rowValues := range grid.Cells {
		rowBuffer = rowBuffer[:0]
		for _, value := range rowValues {
			rowBuffer = strconv.AppendInt(rowBuffer, value, 10)
			rowBuffer = append(rowBuffer, ' ')
		}
		rowBuffer = append(rowBuffer, '\n')

		_, err := writer.Write(rowBuffer)
		if err != nil {
			return errors.Wrapf(err, "Unable to write row %d", row)
		}
	}

	return nil
}

// WriteGridFile writes the grid to the given file and returns the name of the written file. When compress is set,
// the file is gzip-compressed and gets the ".gz" suffix.
func WriteGridFile(file string, grid *Grid, compress bool) (string, error) {
	if compress {
		file = file + GzipSuffix
	}

	sigolo.Debugf("Write %dx%d grid to %s", grid.NRows, grid.NCols, file)
	writeStartTime := time.Now()

	err := WriteFileAtomically(file, func(writer io.Writer) error {
		if !compress {
			return WriteGrid(writer, grid)
		}

		gzipWriter := gzip.NewWriter(writer)
		gzipWriter.Name = filepath.Base(file[:len(file)-len(GzipSuffix)])

		err := WriteGrid(gzipWriter, grid)
		if err != nil {
			return err
		}
		return errors.Wrap(gzipWriter.Close(), "Unable to finish gzip stream")
	})
	if err != nil {
		return "", err
	}

	sigolo.Debugf("Finished writing %s in %s", file, time.Since(writeStartTime))
	return file, nil
}

// WriteFileAtomically passes a buffered writer on a temporary file next to the target to the write function. Only
// when everything has been written successfully, the temporary file is renamed to the target file. On any error,
// the temporary file is removed and the target stays untouched.
func WriteFileAtomically(file string, write func(writer io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+"-*.tmp")
	if err != nil {
		return newIOError(file, errors.Wrap(err, "Unable to create temporary file"))
	}

	renamed := false
	defer func() {
		if renamed {
			return
		}
		// Close errors are irrelevant here, the file is removed anyway.
		_ = tmpFile.Close()
		removeErr := os.Remove(tmpFile.Name())
		if removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			sigolo.Errorf("Unable to remove temporary file %s: %+v", tmpFile.Name(), removeErr)
		}
	}()

	bufferedWriter := bufio.NewWriter(tmpFile)

	err = write(bufferedWriter)
	if err != nil {
		return newIOError(file, err)
	}

	err = bufferedWriter.Flush()
	if err != nil {
		return newIOError(file, errors.Wrap(err, "Unable to flush data"))
	}

	err = tmpFile.Chmod(0644)
	if err != nil {
		return newIOError(file, errors.Wrap(err, "Unable to set file permissions"))
	}

	err = tmpFile.Close()
	if err != nil {
		return newIOError(file, errors.Wrapf(err, "Unable to close temporary file %s", tmpFile.Name()))
	}

	err = os.Rename(tmpFile.Name(), file)
	if err != nil {
		return newIOError(file, errors.Wrapf(err, "Unable to move temporary file %s into place", tmpFile.Name()))
	}
	renamed = true

	return nil
}

// formatNumber returns the shortest representation, so whole numbers are written without decimal places.
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
