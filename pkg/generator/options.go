// Package generator holds the options shared by the generate and verify
// actions.
package generator

import (
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/valuegen/internal/feature"
)

// DefaultManifest is the manifest file name used when none is configured.
const DefaultManifest = "valuegen.manifest.yaml"

// Options control which descriptors are generated and how.
//
// Descriptors – descriptor files or glob patterns.
// ModuleDir   – directory whose go.mod drives feature detection, else the descriptor's module.
// Manifest    – manifest path; empty disables the manifest.
// Features    – feature overrides by name, winning over detection.
// Parallelism – maximum number of files generated at once.
// Version     – generator version recorded in the manifest.
// Exclude     – files never read as descriptors, such as the loaded config file.
type Options struct {
	Descriptors []string        `json:"descriptors,omitempty" yaml:"descriptors,omitempty" toml:"descriptors,omitempty" mapstructure:"descriptors,omitempty"`
	ModuleDir   string          `json:"module_dir,omitempty" yaml:"module_dir,omitempty" toml:"module_dir,omitempty" mapstructure:"module_dir,omitempty"`
	Manifest    string          `json:"manifest,omitempty" yaml:"manifest,omitempty" toml:"manifest,omitempty" mapstructure:"manifest,omitempty"`
	Features    map[string]bool `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty" mapstructure:"features,omitempty"`
	Parallelism int             `json:"parallelism,omitempty" yaml:"parallelism,omitempty" toml:"parallelism,omitempty" mapstructure:"parallelism,omitempty"`
	Version     string          `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty" mapstructure:"version,omitempty"`
	Exclude     []string        `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude,omitempty" mapstructure:"exclude,omitempty"`
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		Manifest:    DefaultManifest,
		Parallelism: runtime.GOMAXPROCS(0),
		Version:     "devel",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Normalize applies feature strings of the form name, name=true, name=false or
// !name on top of Features, validates feature names and fills defaults.
func (o *Options) Normalize(featureStrings ...string) error {
	for _, s := range featureStrings {
		name, value, err := parseFeature(s)
		if err != nil {
			return err
		}
		if o.Features == nil {
			o.Features = map[string]bool{}
		}
		o.Features[name] = value
	}
	for name := range o.Features {
		if _, ok := feature.Lookup(name); !ok {
			return errors.WithHintf(errors.Newf("unknown feature %q", name), "known features: %s", knownFeatures())
		}
	}
	if o.Parallelism < 1 {
		o.Parallelism = runtime.GOMAXPROCS(0)
	}
	if o.ModuleDir != "" {
		dir, err := filepath.Abs(o.ModuleDir)
		if err != nil {
			return errors.Wrapf(err, "resolve module directory %s", o.ModuleDir)
		}
		o.ModuleDir = dir
	}
	return nil
}

func parseFeature(s string) (string, bool, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "!"); ok {
		return name, false, nil
	}
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return s, true, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return "", false, errors.Wrapf(err, "feature %s", s)
	}
	return name, value, nil
}

func knownFeatures() string {
	names := make([]string, 0, len(feature.All))
	for _, f := range feature.All {
		names = append(names, string(f.Name))
	}
	return strings.Join(names, ", ")
}

// Overrides returns Features keyed by canonical feature name.
func (o *Options) Overrides() map[feature.Name]bool {
	out := make(map[feature.Name]bool, len(o.Features))
	for name, v := range o.Features {
		if f, ok := feature.Lookup(name); ok {
			out[f.Name] = v
		}
	}
	return out
}

// Expand resolves Descriptors into sorted, distinct file paths. The manifest
// and the Exclude files are skipped even when a pattern matches them.
func (o *Options) Expand() ([]string, error) {
	skip, err := o.skipped()
	if err != nil {
		return nil, err
	}
	var out []string
	for _, pattern := range o.Descriptors {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "descriptor pattern %s", pattern)
		}
		n := len(out)
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, errors.Wrapf(err, "resolve %s", m)
			}
			if _, ok := skip[abs]; !ok {
				out = append(out, abs)
			}
		}
		if len(out) == n {
			return nil, errors.Newf("no descriptor matches %s", pattern)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (o *Options) skipped() (map[string]struct{}, error) {
	skip := map[string]struct{}{}
	for _, p := range append([]string{o.Manifest}, o.Exclude...) {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		skip[abs] = struct{}{}
	}
	return skip, nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithDescriptors(paths ...string) Option {
	return func(o *Options) { o.Descriptors = append(o.Descriptors, paths...) }
}
func WithModuleDir(d string) Option { return func(o *Options) { o.ModuleDir = d } }
func WithManifest(p string) Option  { return func(o *Options) { o.Manifest = p } }
func WithoutManifest() Option       { return func(o *Options) { o.Manifest = "" } }
func WithParallelism(n int) Option  { return func(o *Options) { o.Parallelism = n } }
func WithVersion(v string) Option   { return func(o *Options) { o.Version = v } }
func WithExclude(paths ...string) Option {
	return func(o *Options) { o.Exclude = append(o.Exclude, paths...) }
}
func WithFeature(name string, on bool) Option {
	return func(o *Options) {
		if o.Features == nil {
			o.Features = map[string]bool{}
		}
		o.Features[name] = on
	}
}
