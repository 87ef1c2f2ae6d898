package corpus

import (
	"compress/gzip"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/spf13/afero"
)

// Record is one row of a corpus CSV. Columns absent from the file decode as
// empty strings. Score is kept as text so that malformed values can be counted
// and dropped by Clean instead of failing the whole file.
type Record struct {
	Title             string `csv:"title"`
	Description       string `csv:"description"`
	InputDescription  string `csv:"input_description"`
	OutputDescription string `csv:"output_description"`
	Score             string `csv:"problem_score"`
	Class             string `csv:"problem_class"`
}

// Problem returns the text fields of the record.
func (r Record) Problem() Problem {
	return Problem{
		Title:             r.Title,
		Description:       r.Description,
		InputDescription:  r.InputDescription,
		OutputDescription: r.OutputDescription,
	}
}

// ReadRecords decodes a corpus CSV with a header row.
func ReadRecords(r io.Reader) ([]*Record, error) {
	var records []*Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadRecords reads a corpus CSV from fs. Paths ending in .gz are decompressed.
func LoadRecords(fs afero.Fs, path string) (records []*Record, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening corpus")
	}
	defer errors.Defer(&err, f.Close)

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "error decompressing %s", path)
		}
		defer gz.Close()
		r = gz
	}

	records, err = ReadRecords(r)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}
	return records, nil
}

// WriteRecords writes records as CSV with a header row to path on fs,
// replacing any existing file. Paths ending in .gz are compressed.
func WriteRecords(fs afero.Fs, path string, records []*Record) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", path)
	}
	defer errors.Defer(&err, f.Close)

	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		defer errors.Defer(&err, gz.Close)
		return gocsv.Marshal(&records, gz)
	}
	return gocsv.Marshal(&records, f)
}
