package tier

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/kiteco/difficulty/kite-golib/errors"
)

// Encoder maps tier names to dense integer class codes. Codes follow the
// lexical order of the names seen at fit time, so the same labels always
// produce the same encoder.
type Encoder struct {
	Names []string `json:"names"`

	codes map[string]int
}

// FitEncoder builds an Encoder over the distinct labels.
func FitEncoder(labels []string) (*Encoder, error) {
	set := make(map[string]struct{})
	for _, l := range labels {
		set[l] = struct{}{}
	}
	if len(set) == 0 {
		return nil, errors.Errorf("cannot fit tier encoder without labels")
	}
	names := make([]string, 0, len(set))
	for l := range set {
		names = append(names, l)
	}
	sort.Strings(names)

	e := &Encoder{Names: names}
	e.buildIndex()
	return e, nil
}

func (e *Encoder) buildIndex() {
	e.codes = make(map[string]int, len(e.Names))
	for i, n := range e.Names {
		e.codes[n] = i
	}
}

// Size is the number of classes.
func (e *Encoder) Size() int {
	return len(e.Names)
}

// Encode returns the class code of a tier.
func (e *Encoder) Encode(name string) (int, error) {
	code, ok := e.codes[name]
	if !ok {
		return 0, errors.Errorf("unknown tier %q", name)
	}
	return code, nil
}

// EncodeAll encodes every label.
func (e *Encoder) EncodeAll(names []string) ([]int, error) {
	codes := make([]int, len(names))
	for i, n := range names {
		code, err := e.Encode(n)
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}

// Decode returns the tier of a class code. An unknown code means the model and
// encoder come from different runs, so Decode panics.
func (e *Encoder) Decode(code int) string {
	if code < 0 || code >= len(e.Names) {
		panic(fmt.Sprintf("tier code %d outside [0, %d)", code, len(e.Names)))
	}
	return e.Names[code]
}

// Validate checks a decoded Encoder.
func (e *Encoder) Validate() error {
	if len(e.Names) == 0 {
		return errors.Errorf("tier encoder has no classes")
	}
	if len(e.codes) != len(e.Names) {
		return errors.Errorf("tier encoder has duplicate names")
	}
	if !sort.StringsAreSorted(e.Names) {
		return errors.Errorf("tier encoder names are not in lexical order")
	}
	return nil
}

// UnmarshalJSON decodes an Encoder and rebuilds its code index.
func (e *Encoder) UnmarshalJSON(buf []byte) error {
	type plain Encoder
	var p plain
	if err := json.Unmarshal(buf, &p); err != nil {
		return err
	}
	*e = Encoder(p)
	e.buildIndex()
	return nil
}
