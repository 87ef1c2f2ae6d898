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

// Encode writes the object to the path on fs, using the format specified by
// the file extension, which can be .json, .gob or .xml. The path may
// additionally have a .gz suffix, in which case the stream will be compressed.
func Encode(fs afero.Fs, path string, obj interface{}) (err error) {
	enc, err := NewEncoder(fs, path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, enc.Close)
	return enc.Encode(obj)
}

// Encoder is an interface that matches gob.Encoder, json.Encoder, and xml.Encoder
type Encoder interface {
	// Encoder adds an item to the stream
	Encode(interface{}) error
}

// EncodeCloser is an encoder that can also close its underlying stream
type EncodeCloser struct {
	encoder Encoder
	closers []io.Closer
}

// Encode writes an object to the underlying stream
func (e *EncodeCloser) Encode(x interface{}) error {
	return e.encoder.Encode(x)
}

// Close closes the underlying stream
func (e *EncodeCloser) Close() error {
	var closeErr error
	// We must close in reverse order
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// NewEncoder creates the file at path on fs and returns an encoder that writes
// in the format specified by the file extension, which can be .json, .gob or
// .xml. The path may additionally have a .gz suffix, in which case the stream
// will be compressed.
func NewEncoder(fs afero.Fs, path string) (*EncodeCloser, error) {
	inpath := path
	var e func(io.Writer) Encoder
	trimmed := strings.TrimSuffix(path, ".gz")
	switch {
	case strings.HasSuffix(trimmed, ".json"):
		e = func(w io.Writer) Encoder { return json.NewEncoder(w) }
	case strings.HasSuffix(trimmed, ".gob"):
		e = func(w io.Writer) Encoder { return gob.NewEncoder(w) }
	case strings.HasSuffix(trimmed, ".xml"):
		e = func(w io.Writer) Encoder { return xml.NewEncoder(w) }
	default:
		return nil, errors.Errorf("could not find encoder for %s", inpath)
	}

	f, err := fs.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating %s", inpath)
	}
	var w io.WriteCloser = f
	closers := []io.Closer{f}

	if strings.HasSuffix(path, ".gz") {
		w = gzip.NewWriter(w)
		closers = append(closers, w)
	}

	return &EncodeCloser{
		encoder: e(w),
		closers: closers,
	}, nil
}
