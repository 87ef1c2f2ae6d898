package serialization

import (
	"compress/gzip"
	"encoding/gob"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/spf13/afero"
)

// Decoder is an interface that matches gob.Decoder, json.Decoder, and xml.Decoder
type Decoder interface {
	// Decode extracts an object from the stream
	Decode(interface{}) error
}

// Decode loads the object stored in a file on fs into obj, which must be a
// pointer. If the path ends with .gz then the contents will be decompressed.
// The encoding is then determined by the remaining file extension, which can
// be .json, .gob or .xml.
func Decode(fs afero.Fs, path string, obj interface{}) (err error) {
	f, err := fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, "error loading %s", path)
	}
	defer errors.Defer(&err, f.Close)
	return decodeAs(f, path, obj)
}

// decodeAs is like Decode but uses the provided path to determine the compression and
// encoding used in the file.
func decodeAs(r io.Reader, path string, obj interface{}) error {
	inpath := path
	if strings.HasSuffix(path, ".gz") {
		path = strings.TrimSuffix(path, ".gz")
		rd, err := gzip.NewReader(r)
		if err != nil {
			return errors.Wrapf(err, "error loading %s", inpath)
		}
		defer rd.Close()
		r = rd
	}

	var d Decoder
	switch {
	case strings.HasSuffix(path, ".json"):
		d = json.NewDecoder(r)
	case strings.HasSuffix(path, ".gob"):
		d = gob.NewDecoder(r)
	case strings.HasSuffix(path, ".xml"):
		d = xml.NewDecoder(r)
	default:
		return errors.Errorf("could not find decoder for %s", inpath)
	}

	if err := d.Decode(obj); err != nil {
		return errors.Wrapf(err, "error decoding %s", inpath)
	}
	return nil
}
