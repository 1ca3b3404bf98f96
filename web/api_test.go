package web

import (
	"github.com/paulmach/orb/geojson"
	"gridsynth/raster"
	"gridsynth/synth"
	"gridsynth/util"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var defaultConfig = synth.Config{
	NRows:        11,
	NCols:        11,
	Mag:          15,
	AddStructure: true,
}

func request(t *testing.T, method string, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	NewRouter(defaultConfig, 1000).ServeHTTP(recorder, httptest.NewRequest(method, url, nil))
	return recorder
}

func TestApi_resistanceGrid(t *testing.T) {
	// Act
	response := request(t, http.MethodGet, "/grids/resistance?nrows=12&ncols=14&mag=3&seed=9")

	// Assert
	util.AssertEqual(t, http.StatusOK, response.Code)

	grid, err := raster.ReadGrid(response.Body)
	util.AssertNil(t, err)
	util.AssertEqual(t, raster.NewHeader(12, 14), grid.Header)

	config := defaultConfig
	config.NRows = 12
	config.NCols = 14
	config.Mag = 3
	expectedGrid, err := synth.GenerateResistances(config, rand.New(rand.NewSource(9)))
	util.AssertNil(t, err)
	util.AssertEqual(t, expectedGrid.Cells, grid.Cells)
}

func TestApi_resistanceGridWithoutStructure(t *testing.T) {
	response := request(t, http.MethodGet, "/grids/resistance?structure=false&mag=1&seed=1")

	util.AssertEqual(t, http.StatusOK, response.Code)
	grid, err := raster.ReadGrid(response.Body)
	util.AssertNil(t, err)

	expectedGrid, err := synth.GenerateResistances(synth.Config{NRows: 11, NCols: 11, Mag: 1}, rand.New(rand.NewSource(1)))
	util.AssertNil(t, err)
	util.AssertEqual(t, expectedGrid.Cells, grid.Cells)
}

func TestApi_pointGrid(t *testing.T) {
	// Act
	response := request(t, http.MethodGet, "/grids/points")

	// Assert
	util.AssertEqual(t, http.StatusOK, response.Code)
	util.AssertEqual(t, "text/plain; charset=utf-8", response.Header().Get("Content-Type"))

	grid, err := raster.ReadGrid(response.Body)
	util.AssertNil(t, err)
	util.AssertEqual(t, 9, grid.CountNot(raster.DefaultNoData))
	util.AssertEqual(t, int64(1), grid.Get(2, 0))
}

func TestApi_pointsAsGeoJson(t *testing.T) {
	response := request(t, http.MethodGet, "/points.geojson?nrows=20")

	util.AssertEqual(t, http.StatusOK, response.Code)
	featureCollection, err := geojson.UnmarshalFeatureCollection(response.Body.Bytes())
	util.AssertNil(t, err)
	util.AssertEqual(t, 9, len(featureCollection.Features))
}

func TestApi_pointsAsOsm(t *testing.T) {
	response := request(t, http.MethodGet, "/points.osm")

	util.AssertEqual(t, http.StatusOK, response.Code)
	util.AssertEqual(t, 9, strings.Count(response.Body.String(), "<node "))
}

func TestApi_invalidParameters(t *testing.T) {
	urls := []string{
		"/grids/resistance?nrows=10",
		"/grids/resistance?mag=19",
		"/grids/resistance?mag=foo",
		"/grids/resistance?structure=maybe",
		"/grids/resistance?seed=1.5",
		"/grids/points?ncols=3",
		"/points.geojson?nrows=-1",
		"/points.osm?ncols=x",
	}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			response := request(t, http.MethodGet, url)
			util.AssertEqual(t, http.StatusBadRequest, response.Code)
		})
	}
}

func TestApi_wrongMethod(t *testing.T) {
	response := request(t, http.MethodPost, "/grids/points")

	util.AssertEqual(t, http.StatusMethodNotAllowed, response.Code)
}

func TestApi_tooLargeDimensions(t *testing.T) {
	urls := []string{
		"/grids/resistance?nrows=41&ncols=25",
		"/grids/resistance?nrows=200000&ncols=200000",
		"/grids/points?nrows=4611686018427387904&ncols=4",
		"/points.geojson?nrows=1000&ncols=1000",
		"/points.osm?ncols=9223372036854775807",
	}

	for _, url := range urls {
		t.Run(url, func(t *testing.T) {
			response := request(t, http.MethodGet, url)
			util.AssertEqual(t, http.StatusBadRequest, response.Code)
			util.AssertMatch(t, "^Invalid parameters: ", response.Body.String())
		})
	}
}

func TestApi_dimensionsAtLimit(t *testing.T) {
	// Act
	response := request(t, http.MethodGet, "/grids/points?nrows=40&ncols=25")

	// Assert
	util.AssertEqual(t, http.StatusOK, response.Code)
	grid, err := raster.ReadGrid(response.Body)
	util.AssertNil(t, err)
	util.AssertEqual(t, 40, grid.NRows)
	util.AssertEqual(t, 25, grid.NCols)
}
