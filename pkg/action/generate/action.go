// Package generate writes the generated files of a set of descriptors and
// records them in the manifest.
package generate

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/valuegen/internal/action/plan"
	"github.com/cmmoran/valuegen/pkg/generator"
	"github.com/cmmoran/valuegen/pkg/manifest"
)

// Report lists the outputs of a run by what happened to them.
type Report struct {
	Written   []string
	Unchanged []string
}

// Generate renders every type of the descriptors named by opts and writes the
// files whose content changed. Nothing is written when any descriptor fails to
// compile or render.
func Generate(ctx context.Context, opts *generator.Options) (*Report, error) {
	units, err := plan.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	results, err := plan.Render(ctx, units, opts.Parallelism)
	if err != nil {
		return nil, err
	}

	var m *manifest.Manifest
	if opts.Manifest != "" {
		if m, err = manifest.Load(opts.Manifest); err != nil {
			return nil, err
		}
		m.Generator = opts.Version
	}

	report := &Report{}
	for _, r := range results {
		l := slog.With("file", r.Output, "type", r.Datatype.Type.String())
		current, err := os.ReadFile(r.Output)
		if err == nil && bytes.Equal(current, r.Source) {
			l.Debug("unchanged")
			report.Unchanged = append(report.Unchanged, r.Output)
		} else {
			if err = os.MkdirAll(filepath.Dir(r.Output), 0o755); err != nil {
				return report, errors.Wrapf(err, "create directory of %s", r.Output)
			}
			if err = os.WriteFile(r.Output, r.Source, 0o644); err != nil {
				return report, errors.Wrapf(err, "write %s", r.Output)
			}
			l.Info("generated", "bytes", len(r.Source))
			report.Written = append(report.Written, r.Output)
		}
		if m != nil {
			m.Record(entry(m, r))
		}
	}

	if m != nil {
		if err = m.Save(opts.Manifest); err != nil {
			return report, err
		}
	}
	return report, nil
}

func entry(m *manifest.Manifest, r plan.Result) manifest.Entry {
	e := manifest.Entry{
		Descriptor: m.Rel(r.Descriptor),
		Type:       r.Datatype.Type.String(),
		File:       m.Rel(r.Output),
		Checksum:   manifest.Checksum(r.Source),
	}
	for _, n := range r.Env.Names() {
		e.Features = append(e.Features, string(n))
	}
	return e
}
