package main

import (
	"bufio"
	"bytes"
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/cmmoran/valuegen/pkg/action/generate"
	"github.com/cmmoran/valuegen/pkg/action/verify"
	"github.com/cmmoran/valuegen/pkg/generator"
)

// extract writes the files of an archive, except want, under a new directory.
func extract(t *testing.T, a *txtar.Archive) (string, []byte) {
	t.Helper()
	dir := t.TempDir()
	var want []byte
	for _, f := range a.Files {
		if f.Name == "want" {
			want = f.Data
			continue
		}
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir, want
}

// summarize lists each generated file with its package and the value and
// builder types it declares.
func summarize(t *testing.T, dir string, files []string) string {
	t.Helper()
	var b strings.Builder
	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		require.NoError(t, err)
		f, err := parser.ParseFile(token.NewFileSet(), file, nil, 0)
		require.NoError(t, err)

		var types []string
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				if name := spec.(*ast.TypeSpec).Name; name.IsExported() {
					types = append(types, name.Name)
				}
			}
		}
		b.WriteString(filepath.ToSlash(rel) + " " + f.Name.Name + " " + strings.Join(types, " ") + "\n")
	}
	return b.String()
}

func TestGenerateFixtures(ttt *testing.T) {
	archives, err := filepath.Glob("testdata/fixtures/*.txtar")
	require.NoError(ttt, err)
	require.NotEmpty(ttt, archives)

	variants := []struct {
		name string
		opts []generator.Option
		// import lines the generated person file must and must not have
		imports []string
		without []string
	}{
		{
			name:    "detected",
			imports: []string{`"slices"`, `"github.com/cmmoran/valuegen/pkg/builderkit/godsbimap"`},
		},
		{
			name:    "legacy go",
			opts:    []generator.Option{generator.WithFeature("go1.21", false), generator.WithFeature("gods-bimap", false)},
			without: []string{`"slices"`, `"maps"`, `"github.com/cmmoran/valuegen/pkg/builderkit/godsbimap"`},
		},
	}

	for _, archive := range archives {
		for _, v := range variants {
			ttt.Run(strings.TrimSuffix(filepath.Base(archive), ".txtar")+"/"+v.name, func(t *testing.T) {
				t.Parallel()
				a, err := txtar.ParseFile(archive)
				require.NoError(t, err)
				dir, want := extract(t, a)

				opts := generator.NewOptions(append([]generator.Option{
					generator.WithDescriptors(filepath.Join(dir, "*", "*.yaml")),
					generator.WithManifest(filepath.Join(dir, generator.DefaultManifest)),
					generator.WithParallelism(2),
				}, v.opts...)...)
				require.NoError(t, opts.Normalize())

				report, err := generate.Generate(context.Background(), opts)
				require.NoError(t, err)
				if diff := cmp.Diff(string(want), summarize(t, dir, report.Written)); diff != "" {
					t.Errorf("generated files mismatch (-want +got):\n%s", diff)
				}

				person, err := os.ReadFile(filepath.Join(dir, "person", "person_builder.gen.go"))
				require.NoError(t, err)
				imports := importLines(person)
				for _, imp := range v.imports {
					assert.Contains(t, imports, imp)
				}
				for _, imp := range v.without {
					assert.NotContains(t, imports, imp)
				}

				stale, err := verify.Verify(context.Background(), opts)
				require.NoError(t, err)
				assert.Empty(t, stale)

				report, err = generate.Generate(context.Background(), opts)
				require.NoError(t, err)
				assert.Empty(t, report.Written)
			})
		}
	}
}

// importLines returns the trimmed lines of the import block of src.
func importLines(src []byte) []string {
	var (
		out []string
		in  bool
	)
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "import (":
			in = true
		case in && line == ")":
			return out
		case in && line != "":
			out = append(out, line)
		}
	}
	return out
}
