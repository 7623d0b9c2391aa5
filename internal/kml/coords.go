package kml

import (
	"math"
	"strconv"
	"strings"

	"github.com/flashfiber/ftthmap/internal/geo"

	"github.com/rotisserie/eris"
)

// ErrMalformedCoordinate is returned when a present coordinate field is not a finite number.
var ErrMalformedCoordinate = eris.New("malformed coordinate")

// ParsePoint converts "lng,lat[,alt]" text into a coordinate.
// Only the first whitespace-delimited token is considered and altitude is dropped.
// ok is false when the text is blank or the token has fewer than two fields.
func ParsePoint(text string) (c geo.Coordinate, ok bool, err error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return c, false, nil
	}

	return parseTuple(tokens[0])
}

// ParseLineString converts "lng1,lat1,alt1 lng2,lat2,alt2 ..." text into an
// ordered coordinate sequence. Tokens with fewer than two fields are dropped;
// ok is false when fewer than two coordinates remain.
func ParseLineString(text string) ([]geo.Coordinate, bool, error) {
	tokens := strings.Fields(text)
	coords := make([]geo.Coordinate, 0, len(tokens))

	for _, token := range tokens {
		c, ok, err := parseTuple(token)
		if err != nil {
			return nil, false, err
		}
		if ok {
			coords = append(coords, c)
		}
	}

	if len(coords) < 2 {
		return nil, false, nil
	}

	return coords, true, nil
}

// parseTuple reads the first two comma separated fields of a single token.
func parseTuple(token string) (c geo.Coordinate, ok bool, err error) {
	fields := strings.Split(token, ",")
	if len(fields) < 2 {
		return c, false, nil
	}

	for i := 0; i < 2; i++ {
		if c[i], err = parseField(fields[i]); err != nil {
			return geo.Coordinate{}, false, err
		}
	}

	return c, true, nil
}

func parseField(field string) (float64, error) {
	// only decimal notation, strconv also accepts hex floats like 0x1p2
	if strings.ContainsAny(field, "xX") {
		return 0, eris.Wrapf(ErrMalformedCoordinate, "field %q is not decimal", field)
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, eris.Wrapf(ErrMalformedCoordinate, "field %q", field)
	}
	// JSON has no representation for these
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, eris.Wrapf(ErrMalformedCoordinate, "field %q is not finite", field)
	}

	return v, nil
}
