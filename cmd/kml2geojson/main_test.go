package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const muzuKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document>
<Placemark><name>A</name><Point><coordinates>-3.5,40.2,0</coordinates></Point></Placemark>
</Document></kml>`

// isolate points HOME at an empty directory so no Desktop candidate exists.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("CONFIG_FILE", "")
}

func TestRun_InputNotFound(t *testing.T) {
	isolate(t)
	root := t.TempDir()

	var stdout bytes.Buffer
	code := run([]string{"--log-level", "disabled"}, &stdout, root)

	assert.Equal(t, 1, code)
	assert.Equal(t, "MUZU.kml not found. Usage: kml2geojson <path/MUZU.kml>\n", stdout.String())

	_, err := os.Stat(filepath.Join(root, "geojson"))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_DefaultCandidate(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "MUZU.kml"), []byte(muzuKML), 0o644))

	var stdout bytes.Buffer
	code := run([]string{"--log-level", "disabled"}, &stdout, root)

	output := filepath.Join(root, "geojson", "MUZU", "muzu.geojson")
	assert.Equal(t, 0, code)
	assert.Equal(t, "OK: 1 features -> "+output+"\n", stdout.String())
	assert.FileExists(t, output)
}

func TestRun_ExplicitInput(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	input := filepath.Join(t.TempDir(), "export.kml")
	require.NoError(t, os.WriteFile(input, []byte(muzuKML), 0o644))

	var stdout bytes.Buffer
	code := run([]string{"--log-level", "disabled", input}, &stdout, root)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "OK: 1 features -> ")
}

func TestRun_MalformedInput(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	input := filepath.Join(root, "broken.kml")
	require.NoError(t, os.WriteFile(input, []byte(`<kml><Placemark id=unquoted></Placemark></kml>`), 0o644))

	var stdout bytes.Buffer
	code := run([]string{"--log-level", "disabled", input}, &stdout, root)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())

	_, err := os.Stat(filepath.Join(root, "geojson"))
	assert.True(t, os.IsNotExist(err))
}
