// Package geometry converts between lat/lon coordinates and the WKB blobs the
// store keeps, and renders GeoJSON features. Coordinate order inside storage
// and GeoJSON is always [lon, lat]; the named Lat/Lon pair exists only at the
// API boundary.
package geometry

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// ErrShortLine is returned for line geometries with fewer than 2 points.
var ErrShortLine = errors.New("line must contain at least 2 points")

// PointToStorage encodes a lat/lon pair as a WKB point.
func PointToStorage(lat, lon float64) ([]byte, error) {
	return wkb.Marshal(orb.Point{lon, lat})
}

// StorageToPoint decodes a WKB point back into lat/lon.
func StorageToPoint(data []byte) (lat, lon float64, err error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return 0, 0, fmt.Errorf("decode point: %w", err)
	}
	p, ok := g.(orb.Point)
	if !ok {
		return 0, 0, fmt.Errorf("geometry is %s, expected point", g.GeoJSONType())
	}
	return p.Lat(), p.Lon(), nil
}

// LineToStorage encodes an ordered [lon, lat] coordinate list as a WKB
// linestring. Fewer than 2 points is a validation error.
func LineToStorage(coords [][2]float64) ([]byte, error) {
	if len(coords) < 2 {
		return nil, ErrShortLine
	}
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c[0], c[1]}
	}
	return wkb.Marshal(line)
}

// StorageToLine decodes a WKB linestring into [lon, lat] pairs.
func StorageToLine(data []byte) ([][2]float64, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decode line: %w", err)
	}
	line, ok := g.(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("geometry is %s, expected linestring", g.GeoJSONType())
	}
	coords := make([][2]float64, len(line))
	for i, p := range line {
		coords[i] = [2]float64{p.Lon(), p.Lat()}
	}
	return coords, nil
}

// PointFeature wraps a stored point and its attributes as a GeoJSON feature.
func PointFeature(data []byte, props map[string]interface{}) (*geojson.Feature, error) {
	lat, lon, err := StorageToPoint(data)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(orb.Point{lon, lat})
	f.Properties = props
	return f, nil
}

// LineFeature wraps a stored linestring and its attributes as a GeoJSON feature.
func LineFeature(data []byte, props map[string]interface{}) (*geojson.Feature, error) {
	coords, err := StorageToLine(data)
	if err != nil {
		return nil, err
	}
	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c[0], c[1]}
	}
	f := geojson.NewFeature(line)
	f.Properties = props
	return f, nil
}

// NewCollection returns an empty GeoJSON feature collection.
func NewCollection() *geojson.FeatureCollection {
	return geojson.NewFeatureCollection()
}

// DistanceKm returns the haversine distance between two lat/lon positions.
// Used by the sqlite nearby path; on Postgres the engine computes distances.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2}) / 1000
}
