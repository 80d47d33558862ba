package metadata

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsinham/dicomexport/internal/dicom/fixture"
)

func TestAllMetadata(t *testing.T) {
	r := openFixture(t, fixture.File{
		PatientName: "DOE^JOHN",
		PatientID:   "P9",
		StudyDate:   "20231201",
	})

	m := r.AllMetadata()

	name, ok := m["PatientName"]
	require.True(t, ok, "PatientName missing from dump")
	assert.Equal(t, "DOE^JOHN", name.Value)
	assert.Equal(t, "PN", name.VR)
	assert.Equal(t, "(0010,0010)", name.Tag)

	id, ok := m["PatientID"]
	require.True(t, ok)
	assert.Equal(t, "P9", id.Value)
	assert.Equal(t, "(0010,0020)", id.Tag)
}

func TestAllMetadataSerializableRoundTrip(t *testing.T) {
	r := openFixture(t, fixture.File{
		PatientName: "DOE^JOHN",
		PatientID:   "P9",
		Rows:        4,
		Cols:        4,
	})

	data, err := json.Marshal(r.AllMetadata())
	require.NoError(t, err, "dump must be JSON-serializable")

	var back map[string]Field
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "DOE^JOHN", back["PatientName"].Value)
	assert.Equal(t, "P9", back["PatientID"].Value)
}

func TestSaveJSONDefaultPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "exam42.dcm")
	require.NoError(t, fixture.File{PatientID: "P1"}.Write(src))

	r, err := Open(src)
	require.NoError(t, err)

	out, err := r.SaveJSON("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exam42_metadata.json"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var m map[string]Field
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "P1", m["PatientID"].Value)
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"single string unwraps", []string{"abc"}, "abc"},
		{"multi string keeps slice", []string{"a", "b"}, []string{"a", "b"}},
		{"single int unwraps", []int{7}, 7},
		{"bytes decode as ascii", []byte{'O', 'K', 0x01}, "OK."},
		{"nil becomes empty string", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertValue(tt.in))
		})
	}
}
