// Package verify regenerates descriptors in memory and reports generated files
// that no longer match.
package verify

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/valuegen/internal/action/plan"
	"github.com/cmmoran/valuegen/pkg/generator"
	"github.com/cmmoran/valuegen/pkg/manifest"
)

// ErrStale is returned by Verify when at least one file is out of date.
var ErrStale = errors.New("generated files are out of date")

// Reason says why a file is stale.
type Reason string

const (
	// Missing files were never generated or were deleted.
	Missing Reason = "missing"
	// Outdated files were generated from an older descriptor or generator.
	Outdated Reason = "outdated"
	// Edited files changed after they were generated.
	Edited Reason = "edited"
	// Orphaned files are recorded for a verified descriptor that no longer
	// produces them.
	Orphaned Reason = "orphaned"
)

// Stale is one out of date file.
type Stale struct {
	File   string
	Reason Reason
	// Diff is the change regenerating would make, (-disk +generated).
	Diff string
}

// Verify compares what opts would generate with the files on disk. It returns
// the stale files and, when there are any, an error marked ErrStale.
func Verify(ctx context.Context, opts *generator.Options) ([]Stale, error) {
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
	}

	var (
		stale       []Stale
		generated   = map[string]bool{}
		descriptors = map[string]bool{}
	)
	for _, r := range results {
		generated[r.Output] = true
		descriptors[r.Descriptor] = true
		disk, err := os.ReadFile(r.Output)
		if errors.Is(err, os.ErrNotExist) {
			stale = append(stale, Stale{File: r.Output, Reason: Missing})
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", r.Output)
		}
		diff := cmp.Diff(string(disk), string(r.Source))
		if diff == "" {
			continue
		}
		reason := Outdated
		if m != nil {
			if e, ok := m.Lookup(m.Rel(r.Output)); ok && e.Checksum != manifest.Checksum(disk) {
				reason = Edited
			}
		}
		stale = append(stale, Stale{File: r.Output, Reason: reason, Diff: diff})
	}

	if m != nil {
		for _, e := range m.Entries {
			file := m.Abs(e.File)
			if generated[file] || !descriptors[m.Abs(e.Descriptor)] {
				continue
			}
			if _, err = os.Stat(file); err == nil {
				stale = append(stale, Stale{File: file, Reason: Orphaned})
			}
		}
	}

	if len(stale) > 0 {
		return stale, errors.Wrapf(ErrStale, "%d stale", len(stale))
	}
	return nil, nil
}
