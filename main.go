package main

import (
	"fmt"
	"github.com/alecthomas/kong"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"gridsynth/generating"
	"gridsynth/raster"
	"gridsynth/synth"
	"gridsynth/web"
	"os"
	"strconv"
	"strings"
)

const VERSION = "v0.1.0"

type GridFlags struct {
	NRows     int  `help:"Number of rows, at least 11." name:"nrows" default:"11"`
	NCols     int  `help:"Number of columns, at least 11." name:"ncols" default:"11"`
	Mag       int  `help:"Order of magnitude variation. Resistances will vary from 1 to 10^mag." name:"mag" short:"m" default:"15"`
	Structure bool `help:"Add quadrants and vertical/horizontal bands with min and max resistance values." negatable:"" default:"true"`
}

func (f GridFlags) toConfig() synth.Config {
	return synth.Config{
		NRows:        f.NRows,
		NCols:        f.NCols,
		Mag:          f.Mag,
		AddStructure: f.Structure,
	}
}

var cli struct {
	Logging  string      `help:"Logging verbosity." enum:"info,debug,trace" short:"l" default:"info"`
	Version  VersionFlag `help:"Print version information and quit" name:"version" short:"v"`
	Generate struct {
		Grid     GridFlags `embed:""`
		Output   string    `help:"The folder the grids are written to." placeholder:"<folder>" short:"o" default:"." type:"path"`
		Compress bool      `help:"Compress the grids with gzip." negatable:"" default:"true"`
		Seed     int64     `help:"Seed of the random number generator. 0 uses the current time." default:"0"`
		GeoJson  bool      `help:"Additionally write the points as GeoJSON file." name:"geojson"`
		Osm      bool      `help:"Additionally write the points as OSM XML file." name:"osm"`
	} `cmd:"" help:"Generates a resistance grid and a point grid."`
	Inspect struct {
		Input string `help:"The grid file. Either .asc or .asc.gz." placeholder:"<input-file>" arg:"" type:"existingfile"`
	} `cmd:"" help:"Prints the header and value range of an ASCII grid file."`
	Serve struct {
		Grid     GridFlags `embed:""`
		Port     string    `help:"The port the HTTP server listens on." short:"p" default:"8080"`
		MaxCells int       `help:"Maximum number of cells (nrows*ncols) of a requested grid." name:"max-cells" default:"${max_cells}"`
	} `cmd:"" help:"Starts an HTTP server generating grids on request."`
}

type VersionFlag string

func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }
func (v VersionFlag) IsBool() bool                         { return true }
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}

func newParser() *kong.Kong {
	return kong.Must(
		&cli,
		kong.Name("gridsynth"),
		kong.Description("Creates synthetic resistance and point grids to test connectivity models."),
		kong.Vars{
			"version":   VERSION,
			"max_cells": strconv.Itoa(web.DefaultMaxCells),
		},
	)
}

func main() {
	parser := newParser()
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if strings.ToLower(cli.Logging) == "debug" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_DEBUG)
	} else if strings.ToLower(cli.Logging) == "trace" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_TRACE)
	} else if strings.ToLower(cli.Logging) == "info" {
		sigolo.SetDefaultLogLevel(sigolo.LOG_INFO)
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
	} else {
		sigolo.SetDefaultFormatFunctionAll(sigolo.LogPlain)
		sigolo.Fatalf("Unknown logging level '%s'", cli.Logging)
	}

	err = run(ctx.Command())
	sigolo.FatalCheck(err)
}

// run executes the parsed command. The "serve" command only returns when the server stops.
func run(command string) error {
	switch command {
	case "generate":
		config := cli.Generate.Grid.toConfig()
		config.OutputFolder = cli.Generate.Output
		config.Compress = cli.Generate.Compress
		config.GeoJson = cli.Generate.GeoJson
		config.Osm = cli.Generate.Osm

		_, err := generating.Generate(config, generating.NewRand(cli.Generate.Seed))
		return err
	case "inspect <input>":
		grid, err := raster.ReadGridFile(cli.Inspect.Input)
		if err != nil {
			return err
		}

		minValue, maxValue := grid.MinMax()
		sigolo.Infof("ncols = %d", grid.NCols)
		sigolo.Infof("nrows = %d", grid.NRows)
		sigolo.Infof("xllcorner = %g, yllcorner = %g, cellsize = %g", grid.XllCorner, grid.YllCorner, grid.CellSize)
		sigolo.Infof("NODATA_value = %d", grid.NoData)
		sigolo.Infof("Cells with data: %d", grid.CountNot(grid.NoData))
		sigolo.Infof("Min, max values: %d, %d", minValue, maxValue)
	case "serve":
		web.StartServer(cli.Serve.Port, cli.Serve.Grid.toConfig(), cli.Serve.MaxCells)
	default:
		return errors.Errorf("Unknown command '%s'", command)
	}
	return nil
}
