package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureCollection_NilFeatures(t *testing.T) {
	data, err := json.Marshal(NewFeatureCollection(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(data))
}

func TestFeatureKeyOrder(t *testing.T) {
	data, err := json.Marshal(NewPointFeature("A", Coordinate{-3.5, 40.2}))
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"Feature","properties":{"name":"A"},"geometry":{"type":"Point","coordinates":[-3.5,40.2]}}`,
		string(data))

	data, err = json.Marshal(NewLineStringFeature("Seg1", []Coordinate{{1, 2}, {3, 4}}))
	require.NoError(t, err)
	assert.Equal(t,
		`{"type":"Feature","properties":{"name":"Seg1"},"geometry":{"type":"LineString","coordinates":[[1,2],[3,4]]}}`,
		string(data))
}
