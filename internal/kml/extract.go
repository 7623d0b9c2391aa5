// Package kml reads KML 2.2 documents and extracts named Point and LineString
// placemarks as GeoJSON features.
package kml

import (
	"os"
	"strings"

	"github.com/flashfiber/ftthmap/internal/geo"

	"github.com/beevik/etree"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

// Namespace is the KML 2.2 namespace URI. Elements outside it are ignored.
const Namespace = "http://www.opengis.net/kml/2.2"

// DefaultUnnamed is the label used for placemarks without a usable name.
const DefaultUnnamed = "Sin nombre"

// ErrMalformedDocument is returned when the input is not well-formed XML.
var ErrMalformedDocument = eris.New("malformed KML document")

// Options controls feature extraction.
type Options struct {
	// Unnamed replaces a missing or blank placemark name. DefaultUnnamed when empty.
	Unnamed string
	// Lenient skips placemarks with non-numeric coordinate fields instead of failing.
	Lenient bool
}

// Load reads and parses the KML file at path.
func Load(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = f.Close() }()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, eris.Wrapf(ErrMalformedDocument, "read %s: %v", path, err)
	}

	if doc.Root() == nil {
		return nil, eris.Wrapf(ErrMalformedDocument, "read %s: no root element", path)
	}

	return doc, nil
}

// Extract walks every Placemark of doc in document order and returns one
// feature per placemark carrying a parseable Point or LineString.
func Extract(doc *etree.Document, opts Options) ([]geo.GeoJSONFeature, error) {
	unnamed := opts.Unnamed
	if unnamed == "" {
		unnamed = DefaultUnnamed
	}

	features := make([]geo.GeoJSONFeature, 0)
	if doc.Root() == nil {
		return features, nil
	}

	var placemarks []*etree.Element
	walk(doc.Root(), func(e *etree.Element) bool {
		if isKML(e, "Placemark") {
			placemarks = append(placemarks, e)
		}
		return false
	})

	for i, pm := range placemarks {
		name := placemarkName(pm, unnamed)

		feature, ok, err := placemarkFeature(pm, name)
		if err != nil {
			if !opts.Lenient {
				return nil, eris.Wrapf(err, "placemark %d (%s)", i+1, name)
			}
			log.Warn().
				Err(err).
				Int("placemark", i+1).
				Str("name", name).
				Msg("Skipping placemark with malformed coordinates")
			continue
		}

		if !ok {
			log.Trace().
				Int("placemark", i+1).
				Str("name", name).
				Msg("Placemark has no usable geometry")
			continue
		}

		features = append(features, feature)
	}

	log.Debug().
		Int("placemarks", len(placemarks)).
		Int("features", len(features)).
		Msg("KML extraction finished")

	return features, nil
}

// placemarkFeature checks Point before LineString. A Point with coordinates
// decides the outcome even when its text does not parse.
func placemarkFeature(pm *etree.Element, name string) (geo.GeoJSONFeature, bool, error) {
	if coords := findCoordinates(pm, "Point"); coords != nil {
		c, ok, err := ParsePoint(coords.Text())
		if err != nil || !ok {
			return geo.GeoJSONFeature{}, false, err
		}
		return geo.NewPointFeature(name, c), true, nil
	}

	if coords := findCoordinates(pm, "LineString"); coords != nil {
		line, ok, err := ParseLineString(coords.Text())
		if err != nil || !ok {
			return geo.GeoJSONFeature{}, false, err
		}
		return geo.NewLineStringFeature(name, line), true, nil
	}

	return geo.GeoJSONFeature{}, false, nil
}

// placemarkName returns the trimmed text of the first direct name child.
func placemarkName(pm *etree.Element, fallback string) string {
	for _, child := range pm.ChildElements() {
		if isKML(child, "name") {
			if name := strings.TrimSpace(child.Text()); name != "" {
				return name
			}
			return fallback
		}
	}

	return fallback
}

// findCoordinates returns the coordinates child of the first descendant
// geometry element named tag that has one, in document order.
func findCoordinates(pm *etree.Element, tag string) *etree.Element {
	var found *etree.Element

	for _, child := range pm.ChildElements() {
		walk(child, func(e *etree.Element) bool {
			if !isKML(e, tag) {
				return false
			}
			for _, c := range e.ChildElements() {
				if isKML(c, "coordinates") {
					found = c
					return true
				}
			}
			return false
		})
		if found != nil {
			break
		}
	}

	return found
}

// walk visits e and its descendants in pre-order until visit returns true.
// It reports whether the walk was stopped.
func walk(e *etree.Element, visit func(*etree.Element) bool) bool {
	if visit(e) {
		return true
	}
	for _, child := range e.ChildElements() {
		if walk(child, visit) {
			return true
		}
	}

	return false
}

func isKML(e *etree.Element, tag string) bool {
	return e.Tag == tag && e.NamespaceURI() == Namespace
}
