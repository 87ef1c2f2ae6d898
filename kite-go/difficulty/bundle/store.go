package bundle

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kiteco/difficulty/kite-golib/errors"
	"github.com/kiteco/difficulty/kite-golib/serialization"
	"github.com/spf13/afero"
)

// Member files of a run directory.
const (
	ManifestFile   = "manifest.json"
	VectorizerFile = "vectorizer.json.gz"
	RegressorFile  = "regressor.json.gz"
	ClassifierFile = "classifier.json.gz"
	EncoderFile    = "encoder.json"

	// CurrentFile in the store root names the active run.
	CurrentFile = "CURRENT"
)

// ErrNoCurrent is returned by Load when no run has been published yet.
var ErrNoCurrent = errors.New("no current bundle")

// Store keeps bundles under root, one directory per run, plus a CURRENT file
// naming the active run. Runs are written once and never modified; publishing
// a run replaces CURRENT by renaming a temporary file over it.
type Store struct {
	fs   afero.Fs
	root string
}

// NewStore returns a store rooted at root on fs.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Root is the directory of the store.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) runDir(runID string) string {
	return filepath.Join(s.root, runID)
}

// Save validates b, writes it to a new run directory and publishes it as
// the current run.
func (s *Store) Save(b *Bundle) error {
	if err := b.Validate(""); err != nil {
		return errors.Wrapf(err, "refusing to save invalid bundle")
	}
	dir := s.runDir(b.Manifest.RunID)
	if exists, err := afero.Exists(s.fs, dir); err != nil {
		return err
	} else if exists {
		return errors.Errorf("run %s already exists", b.Manifest.RunID)
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "error creating %s", dir)
	}

	members := []struct {
		name string
		obj  interface{}
	}{
		{VectorizerFile, b.Vectorizer},
		{RegressorFile, b.Regressor},
		{ClassifierFile, b.Classifier},
		{EncoderFile, b.Encoder},
		// manifest last: a run directory with a manifest is complete
		{ManifestFile, b.Manifest},
	}
	for _, m := range members {
		if err := serialization.Encode(s.fs, filepath.Join(dir, m.name), m.obj); err != nil {
			return errors.Wrapf(err, "error writing %s", m.name)
		}
	}
	return s.Publish(b.Manifest.RunID)
}

// Publish makes runID the current run.
func (s *Store) Publish(runID string) error {
	if exists, err := afero.Exists(s.fs, filepath.Join(s.runDir(runID), ManifestFile)); err != nil {
		return err
	} else if !exists {
		return errors.Errorf("run %s has no manifest", runID)
	}
	tmp := filepath.Join(s.root, "."+CurrentFile+"-"+runID)
	if err := afero.WriteFile(s.fs, tmp, []byte(runID+"\n"), 0644); err != nil {
		return errors.Wrapf(err, "error writing %s", tmp)
	}
	if err := s.fs.Rename(tmp, filepath.Join(s.root, CurrentFile)); err != nil {
		s.fs.Remove(tmp)
		return errors.Wrapf(err, "error publishing run %s", runID)
	}
	return nil
}

// Current returns the ID of the active run.
func (s *Store) Current() (string, error) {
	buf, err := afero.ReadFile(s.fs, filepath.Join(s.root, CurrentFile))
	if os.IsNotExist(err) {
		return "", ErrNoCurrent
	}
	if err != nil {
		return "", errors.Wrapf(err, "error reading current run")
	}
	runID := strings.TrimSpace(string(buf))
	if _, err := uuid.Parse(runID); err != nil {
		return "", errors.Errorf("%s holds invalid run id %q", CurrentFile, runID)
	}
	return runID, nil
}

// Load reads and validates the current run. See LoadRun.
func (s *Store) Load(normalizer string) (*Bundle, error) {
	runID, err := s.Current()
	if err != nil {
		return nil, err
	}
	return s.LoadRun(runID, normalizer)
}

// LoadRun reads every member of a run and validates the result. Missing or
// undecodable members are all reported together; nothing is returned unless
// the whole bundle is consistent.
func (s *Store) LoadRun(runID, normalizer string) (*Bundle, error) {
	dir := s.runDir(runID)
	b := &Bundle{}

	var errs errors.Errors
	members := []struct {
		name string
		ptr  interface{}
	}{
		{ManifestFile, &b.Manifest},
		{VectorizerFile, &b.Vectorizer},
		{RegressorFile, &b.Regressor},
		{ClassifierFile, &b.Classifier},
		{EncoderFile, &b.Encoder},
	}
	for _, m := range members {
		if err := serialization.Decode(s.fs, filepath.Join(dir, m.name), m.ptr); err != nil {
			errs = errors.Append(errs, errors.Wrapf(err, "run %s: %s", runID, m.name))
		}
	}
	if errs != nil {
		return nil, errs
	}
	if b.Manifest.RunID != runID {
		return nil, errors.Errorf("run %s: manifest belongs to run %s", runID, b.Manifest.RunID)
	}
	if err := b.Validate(normalizer); err != nil {
		return nil, errors.Wrapf(err, "run %s", runID)
	}
	return b, nil
}

// ReadManifest reads the manifest of a run without loading its models.
func (s *Store) ReadManifest(runID string) (Manifest, error) {
	var m Manifest
	if err := serialization.Decode(s.fs, filepath.Join(s.runDir(runID), ManifestFile), &m); err != nil {
		return Manifest{}, errors.Wrapf(err, "run %s", runID)
	}
	return m, nil
}

// Runs lists the run directories in the store, oldest first.
func (s *Store) Runs() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].ModTime().Before(infos[j].ModTime())
	})
	var runs []string
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if _, err := uuid.Parse(info.Name()); err == nil {
			runs = append(runs, info.Name())
		}
	}
	return runs, nil
}
