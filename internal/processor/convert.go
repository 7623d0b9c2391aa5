// Package processor converts KML placemark exports into GeoJSON files.
package processor

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/flashfiber/ftthmap/internal/geo"
	"github.com/flashfiber/ftthmap/internal/kml"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

// ConvertKML reads the KML file at input, extracts its Point and LineString
// placemarks and writes them to output as a FeatureCollection.
// It returns the number of features written.
func ConvertKML(input, output string, opts kml.Options) (int, error) {
	log.Debug().
		Str("input", input).
		Bool("lenient", opts.Lenient).
		Msg("Processing KML")

	doc, err := kml.Load(input)
	if err != nil {
		return 0, err
	}

	features, err := kml.Extract(doc, opts)
	if err != nil {
		return 0, eris.Wrapf(err, "extract %s", input)
	}

	fc := geo.NewFeatureCollection(features)
	if err := saveGeoJSON(filepath.Dir(output), output, fc); err != nil {
		return 0, eris.Wrapf(err, "write %s", output)
	}

	log.Debug().
		Str("output", output).
		Int("features", len(fc.Features)).
		Msg("GeoJSON written")

	return len(fc.Features), nil
}

// saveGeoJSON marshals the feature collection and writes it to disk,
// replacing any existing file.
func saveGeoJSON(dir, path string, fc geo.GeoJSONFeatureCollection) (err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
			if err == nil {
				err = closeErr
			}
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	return enc.Encode(fc)
}
