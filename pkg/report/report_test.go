package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igdiff/pkg/graph"
)

func sampleResult() *graph.Result {
	return &graph.Result{
		Counts:          graph.Counts{Followers: 3, Following: 3},
		NotFollowingYou: []string{"u4"},
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleResult(), FormatJSON))

	want := `{
  "counts": {
    "followers": 3,
    "following": 3
  },
  "notFollowingYou": [
    "u4"
  ]
}
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeJSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	result := &graph.Result{NotFollowingYou: graph.Diff(nil, nil)}
	require.NoError(t, Encode(&buf, result, FormatJSON))
	assert.Contains(t, buf.String(), `"notFollowingYou": []`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleResult(), FormatYAML))

	want := `counts:
  followers: 3
  following: 3
notFollowingYou:
  - u4
`
	assert.Equal(t, want, buf.String())
}

func TestEncodeUnknownFormat(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, sampleResult(), Format("xml")))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "result.json")

	require.NoError(t, WriteFile(path, sampleResult(), FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"u4"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, WriteFile(path, sampleResult(), FormatYAML))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "notFollowingYou")
}
