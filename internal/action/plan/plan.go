// Package plan turns generator options into the list of files to generate and
// renders them.
package plan

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/cmmoran/valuegen/internal/assembler"
	"github.com/cmmoran/valuegen/internal/descriptor"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/pkg/generator"
)

// Unit is one file to generate.
type Unit struct {
	Descriptor string // absolute descriptor path
	Output     string // absolute output path
	Datatype   *model.Datatype
	Env        feature.Environment
}

// Result is a rendered unit.
type Result struct {
	Unit
	Source []byte
}

// Load compiles every descriptor named by opts, at most opts.Parallelism at a
// time, and returns the units sorted by output path.
func Load(ctx context.Context, opts *generator.Options) ([]Unit, error) {
	paths, err := opts.Expand()
	if err != nil {
		return nil, err
	}
	var envModule *feature.Module
	if opts.ModuleDir != "" {
		if envModule, err = feature.FindModule(opts.ModuleDir); err != nil {
			return nil, err
		}
	}

	perDescriptor := make([][]Unit, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(opts.Parallelism))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			units, err := compile(path, envModule, opts.Overrides())
			if err != nil {
				return err
			}
			perDescriptor[i] = units
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	var (
		out    []Unit
		owners = map[string]string{}
	)
	for _, units := range perDescriptor {
		for _, u := range units {
			if prev, ok := owners[u.Output]; ok {
				return nil, model.Schemaf("%s and %s are both generated into %s", prev, u.Datatype.Type, u.Output)
			}
			owners[u.Output] = u.Datatype.Type.String()
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b Unit) int { return strings.Compare(a.Output, b.Output) })
	return out, nil
}

// compile loads one descriptor. The package defaults to the descriptor's
// directory within its module; features are detected from envModule, or from
// that same module when envModule is nil.
func compile(path string, envModule *feature.Module, overrides map[feature.Name]bool) ([]Unit, error) {
	doc, err := descriptor.Load(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	mod, err := feature.FindModule(dir)
	switch {
	case errors.Is(err, feature.ErrNoModule):
		slog.With("descriptor", path).Debug("descriptor is outside any module")
		mod = nil
	case err != nil:
		return nil, err
	}
	if doc.Package == "" && mod != nil {
		doc.Package, err = packagePath(mod, dir)
		if err != nil {
			return nil, err
		}
	}
	if envModule == nil {
		envModule = mod
	}
	env := feature.Detect(envModule, overrides)

	targets, err := doc.Compile()
	if err != nil {
		return nil, err
	}
	units := make([]Unit, len(targets))
	for i, t := range targets {
		units[i] = Unit{
			Descriptor: path,
			Output:     filepath.Join(dir, t.Output),
			Datatype:   t.Datatype,
			Env:        env,
		}
	}
	slog.With("descriptor", path, "types", len(units), "features", env.String()).Debug("compiled descriptor")
	return units, nil
}

// packagePath is the import path of dir inside mod.
func packagePath(mod *feature.Module, dir string) (string, error) {
	if mod.Path == "" {
		return "", model.Schemaf("%s has no module path", filepath.Join(mod.Dir, "go.mod"))
	}
	rel, err := filepath.Rel(mod.Dir, dir)
	if err != nil {
		return "", errors.Wrapf(err, "locate %s in %s", dir, mod.Dir)
	}
	if rel == "." {
		return mod.Path, nil
	}
	return mod.Path + "/" + filepath.ToSlash(rel), nil
}

// Render generates the source of every unit, at most parallelism at a time.
// Results keep the order of units.
func Render(ctx context.Context, units []Unit, parallelism int) ([]Result, error) {
	results := make([]Result, len(units))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit(parallelism))
	for i, u := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := assembler.Generate(u.Datatype, u.Env)
			if err != nil {
				return errors.Wrapf(err, "generate %s", u.Output)
			}
			results[i] = Result{Unit: u, Source: src}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func limit(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
