package io

import (
	"bytes"
	"context"
	"encoding/xml"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"gridsynth/raster"
	"gridsynth/synth"
	"gridsynth/util"
	"testing"
)

func TestWritePointsAsOsm(t *testing.T) {
	// Arrange
	buffer := &bytes.Buffer{}

	// Act
	err := WritePointsAsOsm(createTestPoints(t), raster.NewHeader(11, 11), buffer)

	// Assert
	util.AssertNil(t, err)
	util.AssertMatch(t, `^<\?xml version="1.0" encoding="UTF-8"\?>`, buffer.String())

	scanner := osmxml.New(context.Background(), bytes.NewReader(buffer.Bytes()))
	defer scanner.Close()

	var nodes []*osm.Node
	for scanner.Scan() {
		if node, ok := scanner.Object().(*osm.Node); ok {
			nodes = append(nodes, node)
		}
	}
	util.AssertNil(t, scanner.Err())

	util.AssertEqual(t, 9, len(nodes))
	for i, node := range nodes {
		util.AssertEqual(t, osm.NodeID(i+1), node.ID)
	}

	// Point 2 is in row 2, column 2
	util.AssertEqual(t, 2.5, nodes[1].Lon)
	util.AssertEqual(t, 8.5, nodes[1].Lat)
	util.AssertEqual(t, "2", nodes[1].Tags.Find("point_id"))
	util.AssertEqual(t, "2", nodes[1].Tags.Find("row"))
	util.AssertEqual(t, "2", nodes[1].Tags.Find("col"))
}

func TestWritePointsAsOsm_gridExceedingLonLatRange(t *testing.T) {
	// Arrange
	points, err := synth.PointLocations(synth.Config{NRows: 200, NCols: 720})
	util.AssertNil(t, err)
	buffer := &bytes.Buffer{}

	// Act
	err = WritePointsAsOsm(points, raster.NewHeader(200, 720), buffer)

	// Assert
	util.AssertNil(t, err)

	osmData := &osm.OSM{}
	err = xml.Unmarshal(buffer.Bytes(), osmData)
	util.AssertNil(t, err)

	util.AssertTrue(t, osmData.Bounds.MinLon >= -180 && osmData.Bounds.MaxLon <= 180)
	util.AssertTrue(t, osmData.Bounds.MinLat >= -90 && osmData.Bounds.MaxLat <= 90)
	util.AssertEqual(t, 9, len(osmData.Nodes))
	for _, node := range osmData.Nodes {
		util.AssertTrue(t, node.Lon >= -180 && node.Lon <= 180)
		util.AssertTrue(t, node.Lat >= -90 && node.Lat <= 90)
	}

	// Points 6 to 9 are the corners: 6 top left, 7 top right, 8 bottom right, 9 bottom left
	nodes := osmData.Nodes
	util.AssertTrue(t, nodes[5].Lon < nodes[6].Lon)
	util.AssertTrue(t, nodes[5].Lat > nodes[8].Lat)
	util.AssertEqual(t, nodes[6].Lat, nodes[5].Lat)
	util.AssertEqual(t, "718", nodes[6].Tags.Find("col"))
}

func TestLonLatProjection(t *testing.T) {
	// Arrange
	validBound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{11, 11}}
	tooLargeBound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{720, 90}}

	// Act
	identity := lonLatProjection(validBound)
	scaled := lonLatProjection(tooLargeBound)

	// Assert
	util.AssertEqual(t, orb.Point{2.5, 8.5}, identity(orb.Point{2.5, 8.5}))
	util.AssertEqual(t, orb.Point{-180, -90}, scaled(tooLargeBound.Min))
	util.AssertEqual(t, orb.Point{180, -45}, scaled(tooLargeBound.Max))
}
