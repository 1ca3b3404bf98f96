package io

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"gridsynth/raster"
	"gridsynth/synth"
	"io"
)

func WritePointsAsGeoJsonFile(points []synth.Point, header raster.Header, file string) error {
	return writeFile(file, func(writer io.Writer) error {
		return WritePointsAsGeoJson(points, header, writer)
	})
}

// WritePointsAsGeoJson writes one point feature per sample point, located at the center of its cell.
func WritePointsAsGeoJson(points []synth.Point, header raster.Header, writer io.Writer) error {
	sigolo.Debugf("Write %d points to GeoJSON", len(points))

	featureCollection := geojson.NewFeatureCollection()
	featureCollection.BBox = geojson.NewBBox(header.Bound())

	for _, point := range points {
		geoJsonFeature := geojson.NewFeature(header.CellCenter(point.Row, point.Col))
		geoJsonFeature.ID = point.ID
		geoJsonFeature.Properties["point_id"] = point.ID
		geoJsonFeature.Properties["row"] = point.Row
		geoJsonFeature.Properties["col"] = point.Col

		featureCollection.Append(geoJsonFeature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal points to GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON data")
	}

	return nil
}

func writeFile(file string, write func(writer io.Writer) error) error {
	err := raster.WriteFileAtomically(file, write)
	if err != nil {
		return err
	}

	sigolo.Debugf("Wrote %s", file)
	return nil
}
