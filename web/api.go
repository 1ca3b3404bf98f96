package web

import (
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"gridsynth/generating"
	ownIo "gridsynth/io"
	"gridsynth/raster"
	"gridsynth/synth"
	"io"
	"net/http"
)

type errInvalidParameters struct {
	err error
}

func (e errInvalidParameters) Error() string {
	return "Invalid parameters: " + e.err.Error()
}

// DefaultMaxCells limits the grid size of a single request. Larger grids would have to be held in memory completely.
const DefaultMaxCells = 4_000_000

func StartServer(port string, defaults synth.Config, maxCells int) {
	r := NewRouter(defaults, maxCells)
	sigolo.Infof("Start server on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

// NewRouter creates the HTTP API. Grids are generated per request, URL parameters override the given defaults.
// Requests for grids with more than maxCells cells are rejected.
func NewRouter(defaults synth.Config, maxCells int) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/grids/resistance", func(writer http.ResponseWriter, request *http.Request) {
		config, seed, err := parseConfig(request, defaults, maxCells)
		if err != nil {
			writeError(writer, err)
			return
		}

		grid, err := synth.GenerateResistances(config, generating.NewRand(seed))
		if err != nil {
			writeError(writer, err)
			return
		}

		writeGrid(writer, grid)
	}).Methods(http.MethodGet)

	r.HandleFunc("/grids/points", func(writer http.ResponseWriter, request *http.Request) {
		config, _, err := parseConfig(request, defaults, maxCells)
		if err != nil {
			writeError(writer, err)
			return
		}

		grid, _, err := synth.GeneratePoints(config)
		if err != nil {
			writeError(writer, err)
			return
		}

		writeGrid(writer, grid)
	}).Methods(http.MethodGet)

	r.HandleFunc("/points.geojson", func(writer http.ResponseWriter, request *http.Request) {
		writePoints(writer, request, defaults, maxCells, "application/geo+json", ownIo.WritePointsAsGeoJson)
	}).Methods(http.MethodGet)

	r.HandleFunc("/points.osm", func(writer http.ResponseWriter, request *http.Request) {
		writePoints(writer, request, defaults, maxCells, "application/xml", ownIo.WritePointsAsOsm)
	}).Methods(http.MethodGet)

	return r
}

func writeGrid(writer http.ResponseWriter, grid *raster.Grid) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	err := raster.WriteGrid(writer, grid)
	if err != nil {
		// Status and parts of the body are already sent, so only logging is possible here.
		sigolo.Errorf("Error writing grid response: %+v", err)
	}
}

func writePoints(writer http.ResponseWriter, request *http.Request, defaults synth.Config, maxCells int, contentType string, write func([]synth.Point, raster.Header, io.Writer) error) {
	config, _, err := parseConfig(request, defaults, maxCells)
	if err != nil {
		writeError(writer, err)
		return
	}

	points, err := synth.PointLocations(config)
	if err != nil {
		writeError(writer, err)
		return
	}

	writer.Header().Set("Content-Type", contentType)
	err = write(points, config.Header(), writer)
	if err != nil {
		sigolo.Errorf("Error writing points response: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var parameterErr errInvalidParameters
	if errors.As(err, &parameterErr) || errors.Is(err, synth.ErrInvalidDimensions) || errors.Is(err, synth.ErrInvalidMagnitude) {
		status = http.StatusBadRequest
	}

	sigolo.Errorf("Request failed with status %d: %+v", status, err)
	writer.WriteHeader(status)
	_, err = writer.Write([]byte(err.Error()))
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}

type gridParams struct {
	NRows     int   `schema:"nrows"`
	NCols     int   `schema:"ncols"`
	Mag       int   `schema:"mag"`
	Structure bool  `schema:"structure"`
	Seed      int64 `schema:"seed"`
}

// parseConfig decodes the URL parameters. Parameters not given keep the value of the defaults.
func parseConfig(request *http.Request, defaults synth.Config, maxCells int) (synth.Config, int64, error) {
	params := gridParams{
		NRows:     defaults.NRows,
		NCols:     defaults.NCols,
		Mag:       defaults.Mag,
		Structure: defaults.AddStructure,
	}

	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&params, request.URL.Query())
	if err != nil {
		return defaults, 0, errInvalidParameters{err: err}
	}

	// Division instead of multiplication, so that huge values cannot overflow.
	if params.NRows > 0 && params.NCols > 0 && params.NRows > maxCells/params.NCols {
		return defaults, 0, errInvalidParameters{err: errors.Errorf("grid of %dx%d cells exceeds the limit of %d cells", params.NRows, params.NCols, maxCells)}
	}

	config := defaults
	config.NRows = params.NRows
	config.NCols = params.NCols
	config.Mag = params.Mag
	config.AddStructure = params.Structure

	return config, params.Seed, nil
}
