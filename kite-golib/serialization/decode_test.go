package serialization

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apple struct {
	Variety string
	Redness int
}

func gzipString(x string) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	w.Write([]byte(x))
	w.Close()
	return b.Bytes()
}

func TestGzippedJSON(t *testing.T) {
	var a apple
	d := gzipString(`{"Variety": "x", "Redness": 2}`)
	require.NoError(t, decodeAs(bytes.NewBuffer(d), "/models/bar.json.gz", &a))
	assert.Equal(t, apple{Variety: "x", Redness: 2}, a)

	err := decodeAs(bytes.NewBufferString(`{"Variety": "x"}`), "/models/bar.json.gz", &a)
	assert.Error(t, err)
}

func TestDecodeOneJSON(t *testing.T) {
	var apple apple
	d := []byte(`{"Variety": "x", "Redness": 2}`)
	err := decodeAs(bytes.NewBuffer(d), "foo.json", &apple)
	require.NoError(t, err)
	assert.EqualValues(t, "x", apple.Variety)
	assert.EqualValues(t, 2, apple.Redness)
}

func TestUnknownExtension(t *testing.T) {
	var a apple
	err := decodeAs(bytes.NewBufferString("x"), "foo.pkl", &a)
	assert.Error(t, err)

	_, err = NewEncoder(afero.NewMemMapFs(), "foo.pkl")
	assert.Error(t, err)
}

func TestEncodeDecodeFS(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, path := range []string{"/m/a.json", "/m/a.json.gz", "/m/a.gob.gz"} {
		require.NoError(t, Encode(fs, path, apple{Variety: "fuji", Redness: 7}), path)

		var got apple
		require.NoError(t, Decode(fs, path, &got), path)
		assert.Equal(t, apple{Variety: "fuji", Redness: 7}, got, path)
	}

	var got apple
	assert.Error(t, Decode(fs, "/m/missing.json", &got))
}
