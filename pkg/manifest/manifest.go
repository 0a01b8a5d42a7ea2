// Package manifest records the files valuegen generated, so stale or
// hand-edited outputs can be found later.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Entry represents one generated file in the manifest. Paths are relative to
// the manifest's directory.
type Entry struct {
	Descriptor string   `yaml:"descriptor" json:"descriptor"`
	Type       string   `yaml:"type" json:"type"`
	File       string   `yaml:"file" json:"file"`
	Checksum   string   `yaml:"checksum" json:"checksum"`
	Features   []string `yaml:"features,omitempty" json:"features,omitempty"`
}

// Manifest tracks the outputs of the last generation run.
type Manifest struct {
	Generator string  `yaml:"generator" json:"generator"`
	Entries   []Entry `yaml:"entries" json:"entries"`

	dir string
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve manifest %s", path)
	}
	m := &Manifest{dir: filepath.Dir(abs)}
	data, err := os.ReadFile(abs)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	if err = yaml.Unmarshal(data, m); err != nil {
		return nil, errors.Wrapf(err, "unmarshal manifest %s", path)
	}
	return m, nil
}

// Save writes the manifest to the provided path, creating parent directories as
// needed. Entries are sorted by file.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}
	slices.SortFunc(m.Entries, func(a, b Entry) int { return strings.Compare(a.File, b.File) })

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err = os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}
	return nil
}

// Rel expresses an absolute path relative to the manifest's directory, with
// forward slashes.
func (m *Manifest) Rel(path string) string {
	if m.dir == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(m.dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Abs resolves a path recorded in the manifest.
func (m *Manifest) Abs(rel string) string {
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// Record adds e, replacing any existing entry for the same file.
func (m *Manifest) Record(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].File == e.File {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Lookup returns the entry recorded for file, if present.
func (m *Manifest) Lookup(file string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}

// Checksum is the hex encoded sha256 of data, as stored in entries.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
