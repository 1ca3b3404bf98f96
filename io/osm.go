package io

import (
	"encoding/xml"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"gridsynth/raster"
	"gridsynth/synth"
	"io"
	"math"
	"strconv"
)

const osmGenerator = "gridsynth"

func WritePointsAsOsmFile(points []synth.Point, header raster.Header, file string) error {
	return writeFile(file, func(writer io.Writer) error {
		return WritePointsAsOsm(points, header, writer)
	})
}

// WritePointsAsOsm writes an OSM XML document with one node per sample point. The node ID equals the point ID and
// the grid's map coordinates are used as lon/lat. Grids reaching outside of [-180, 180]x[-90, 90] are shifted and
// uniformly scaled into that range, the row and col tags still refer to the original cells.
func WritePointsAsOsm(points []synth.Point, header raster.Header, writer io.Writer) error {
	sigolo.Debugf("Write %d points to OSM XML", len(points))

	toLonLat := lonLatProjection(header.Bound())
	bound := orb.Bound{Min: toLonLat(header.Bound().Min), Max: toLonLat(header.Bound().Max)}
	osmData := &osm.OSM{
		Version:   "0.6",
		Generator: osmGenerator,
		Bounds: &osm.Bounds{
			MinLat: bound.Min.Lat(),
			MaxLat: bound.Max.Lat(),
			MinLon: bound.Min.Lon(),
			MaxLon: bound.Max.Lon(),
		},
	}

	for _, point := range points {
		center := toLonLat(header.CellCenter(point.Row, point.Col))
		osmData.Nodes = append(osmData.Nodes, &osm.Node{
			ID:      osm.NodeID(point.ID),
			Lat:     center.Lat(),
			Lon:     center.Lon(),
			Visible: true,
			Version: 1,
			Tags: osm.Tags{
				{Key: "point_id", Value: strconv.Itoa(point.ID)},
				{Key: "row", Value: strconv.Itoa(point.Row)},
				{Key: "col", Value: strconv.Itoa(point.Col)},
			},
		})
	}

	_, err := writer.Write([]byte(xml.Header))
	if err != nil {
		return errors.Wrap(err, "Unable to write XML header")
	}

	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "  ")
	err = encoder.Encode(osmData)
	if err != nil {
		return errors.Wrap(err, "Unable to encode points as OSM XML")
	}

	return errors.Wrap(encoder.Flush(), "Unable to flush OSM XML")
}

// lonLatProjection returns the identity for bounds within the valid lon/lat range. Otherwise, the returned function
// moves the lower left corner of the bound to (-180, -90) and scales the bound down to fit into the lon/lat range.
func lonLatProjection(bound orb.Bound) func(orb.Point) orb.Point {
	if bound.Min.Lon() >= -180 && bound.Max.Lon() <= 180 && bound.Min.Lat() >= -90 && bound.Max.Lat() <= 90 {
		return func(point orb.Point) orb.Point { return point }
	}

	scale := math.Min(1, math.Min(360/(bound.Max.Lon()-bound.Min.Lon()), 180/(bound.Max.Lat()-bound.Min.Lat())))
	sigolo.Warnf("Grid extent %v exceeds the lon/lat range, OSM coordinates are shifted and scaled by %g", bound, scale)

	return func(point orb.Point) orb.Point {
		// Clamping catches rounding errors of the scaling.
		return orb.Point{
			math.Max(-180, math.Min(180, -180+(point.Lon()-bound.Min.Lon())*scale)),
			math.Max(-90, math.Min(90, -90+(point.Lat()-bound.Min.Lat())*scale)),
		}
	}
}
