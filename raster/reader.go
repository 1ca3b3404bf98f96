package raster

import (
	"bufio"
	"compress/gzip"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxPreallocatedRowLength caps the row capacity taken from the header. Longer rows grow while being read.
const maxPreallocatedRowLength = 4096

// ReadGridFile reads an ASCII grid file. Files ending with ".gz" are decompressed on the fly.
func ReadGridFile(file string) (*Grid, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, newIOError(file, errors.Wrap(err, "Unable to open grid file"))
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil {
			sigolo.Errorf("Unable to close grid file %s: %+v", file, closeErr)
		}
	}()

	var reader io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(file, GzipSuffix) {
		gzipReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to read gzip header of %s", file)
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	grid, err := ReadGrid(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to parse grid file %s", file)
	}

	sigolo.Debugf("Read %dx%d grid from %s", grid.NRows, grid.NCols, file)
	return grid, nil
}

// ReadGrid parses an ASCII grid. Header keys are case-insensitive and the "xllcenter"/"yllcenter" variants are
// converted into corner coordinates. A missing NODATA_value falls back to the default no-data value.
func ReadGrid(reader io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanWords)

	header := Header{
		CellSize: 1,
		NoData:   DefaultNoData,
	}
	xIsCenter := false
	yIsCenter := false
	seenKeys := map[string]bool{}

	var firstValue string
	for scanner.Scan() {
		key := strings.ToLower(scanner.Text())
		if !isHeaderKey(key) {
			firstValue = scanner.Text()
			break
		}

		if !scanner.Scan() {
			return nil, errors.Errorf("Missing value for header field %s", key)
		}
		value := scanner.Text()
		seenKeys[key] = true

		var err error
		switch key {
		case "ncols":
			header.NCols, err = strconv.Atoi(value)
		case "nrows":
			header.NRows, err = strconv.Atoi(value)
		case "xllcorner":
			header.XllCorner, err = strconv.ParseFloat(value, 64)
		case "xllcenter":
			header.XllCorner, err = strconv.ParseFloat(value, 64)
			xIsCenter = true
		case "yllcorner":
			header.YllCorner, err = strconv.ParseFloat(value, 64)
		case "yllcenter":
			header.YllCorner, err = strconv.ParseFloat(value, 64)
			yIsCenter = true
		case "cellsize":
			header.CellSize, err = strconv.ParseFloat(value, 64)
		case "nodata_value":
			header.NoData, err = parseCellValue(value)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid value '%s' for header field %s", value, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Unable to read grid header")
	}

	if !seenKeys["ncols"] || !seenKeys["nrows"] {
		return nil, errors.New("Grid header must contain ncols and nrows")
	}
	if header.NCols <= 0 || header.NRows <= 0 {
		return nil, errors.Errorf("Invalid grid dimensions %dx%d", header.NRows, header.NCols)
	}
	if xIsCenter {
		header.XllCorner -= header.CellSize / 2
	}
	if yIsCenter {
		header.YllCorner -= header.CellSize / 2
	}

	// The header is untrusted, so rows are only allocated once their values actually arrive.
	grid := &Grid{Header: header}
	rowCapacity := min(header.NCols, maxPreallocatedRowLength)
	useFirstValue := firstValue != ""

	for row := 0; row < header.NRows; row++ {
		rowValues := make([]int64, 0, rowCapacity)
		for col := 0; col < header.NCols; col++ {
			var token string
			if useFirstValue {
				token = firstValue
				useFirstValue = false
			} else if scanner.Scan() {
				token = scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					return nil, errors.Wrapf(err, "Unable to read cell in row %d, column %d", row, col)
				}
				return nil, errors.Errorf("Grid data ended in row %d, column %d of a %dx%d grid", row, col, header.NRows, header.NCols)
			}

			value, err := parseCellValue(token)
			if err != nil {
				return nil, errors.Wrapf(err, "Invalid value '%s' in row %d, column %d", token, row, col)
			}
			rowValues = append(rowValues, value)
		}
		grid.Cells = append(grid.Cells, rowValues)
	}

	if scanner.Scan() {
		return nil, errors.Errorf("Grid contains more than the expected %dx%d cells", header.NRows, header.NCols)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Unable to read end of grid data")
	}

	return grid, nil
}

func isHeaderKey(key string) bool {
	switch key {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		return true
	}
	return false
}

// parseCellValue accepts integers and floats without fraction (like "-9999.0"), which some GIS tools write.
func parseCellValue(token string) (int64, error) {
	value, err := strconv.ParseInt(token, 10, 64)
	if err == nil {
		return value, nil
	}

	floatValue, floatErr := strconv.ParseFloat(token, 64)
	if floatErr != nil || floatValue != float64(int64(floatValue)) {
		return 0, errors.Errorf("'%s' is not an integer", token)
	}
	return int64(floatValue), nil
}
