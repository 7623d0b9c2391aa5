// Package geo handles geographic data structures for GeoJSON output.
package geo

// Geometry type names.
const (
	TypePoint      = "Point"
	TypeLineString = "LineString"
)

// Coordinate is a WGS84 position encoded as [Lon, Lat].
type Coordinate [2]float64

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single geographic feature with properties and geometry.
// Field order defines the key order of the encoded JSON object.
type GeoJSONFeature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   GeoJSONGeometry        `json:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature.
// Coordinates holds a Coordinate for Point and []Coordinate for LineString.
type GeoJSONGeometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// NewFeatureCollection wraps features, never leaving the list nil so it encodes as [].
func NewFeatureCollection(features []GeoJSONFeature) GeoJSONFeatureCollection {
	if features == nil {
		features = []GeoJSONFeature{}
	}

	return GeoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}

// NewPointFeature builds a named Point feature.
func NewPointFeature(name string, c Coordinate) GeoJSONFeature {
	return GeoJSONFeature{
		Type:       "Feature",
		Properties: map[string]interface{}{"name": name},
		Geometry: GeoJSONGeometry{
			Type:        TypePoint,
			Coordinates: c,
		},
	}
}

// NewLineStringFeature builds a named LineString feature. The caller guarantees
// at least two coordinates.
func NewLineStringFeature(name string, coords []Coordinate) GeoJSONFeature {
	return GeoJSONFeature{
		Type:       "Feature",
		Properties: map[string]interface{}{"name": name},
		Geometry: GeoJSONGeometry{
			Type:        TypeLineString,
			Coordinates: coords,
		},
	}
}
