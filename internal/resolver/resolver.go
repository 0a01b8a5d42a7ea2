// Package resolver decides how every qualified name referenced by a generated
// file is spelled, and which imports the file therefore needs.
package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/treeset"
	"golang.org/x/mod/module"

	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// ErrInvalidImport is returned for references whose import path is not valid.
var ErrInvalidImport = errors.New("invalid import path")

func compareNames(a, b interface{}) int {
	x, y := a.(model.QualifiedName), b.(model.QualifiedName)
	switch {
	case x.Less(y):
		return -1
	case y.Less(x):
		return 1
	}
	return 0
}

// Collect returns every name tree would reference when rendered in env, sorted
// and without duplicates.
func Collect(tree excerpt.Excerpt, env feature.Environment) []model.QualifiedName {
	set := treeset.NewWith(compareNames)
	excerpt.Walk(tree, env.Enabled, func(q model.QualifiedName) {
		set.Add(q)
	})
	out := make([]model.QualifiedName, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(model.QualifiedName))
	}
	return out
}

// Import is one entry of a file's import block.
type Import struct {
	Path  string
	Alias string // the name the file uses for the package
	Named bool   // Alias must be written in the import spec
}

// ImportTable maps qualified names to their spelling in one file. It is
// immutable once built.
type ImportTable struct {
	pkgPath string
	aliases *treemap.Map // import path -> alias
}

// NewImportTable builds the import table of a file in package pkgPath that
// references refs. Identifiers in reserved are treated like local declarations:
// no import may be spelled with them.
//
// A package name shared by several import paths, or shadowed by a local
// identifier, is not used for any of them; each gets an alias derived from the
// trailing elements of its path instead. The result depends only on the set of
// references, never on their order.
func NewImportTable(pkgPath string, refs []model.QualifiedName, reserved ...string) (*ImportTable, error) {
	taken := treeset.NewWithStringComparator()
	for _, r := range reserved {
		taken.Add(r)
	}
	names := treemap.NewWithStringComparator() // import path -> package name
	for _, q := range refs {
		switch q.Path {
		case "":
			continue
		case pkgPath:
			taken.Add(q.Name)
			continue
		}
		if err := module.CheckImportPath(q.Path); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "reference %s", q), ErrInvalidImport)
		}
		if _, ok := names.Get(q.Path); !ok || q.PkgName != "" {
			names.Put(q.Path, q.Package())
		}
	}

	groups := treemap.NewWithStringComparator() // package name -> []import path, sorted
	names.Each(func(path, name interface{}) {
		paths, _ := groups.Get(name)
		list, _ := paths.([]string)
		groups.Put(name, append(list, path.(string)))
	})

	t := &ImportTable{pkgPath: pkgPath, aliases: treemap.NewWithStringComparator()}
	var contested []string
	groups.Each(func(name, paths interface{}) {
		list := paths.([]string)
		if len(list) == 1 && !taken.Contains(name) {
			t.aliases.Put(list[0], name)
			return
		}
		taken.Add(name)
		contested = append(contested, list...)
	})
	for _, a := range t.aliases.Values() {
		taken.Add(a)
	}
	// groups iterate by name and paths within a group by path, so the order is fixed.
	for _, path := range contested {
		alias := deriveAlias(path, taken)
		taken.Add(alias)
		t.aliases.Put(path, alias)
	}
	return t, nil
}

// deriveAlias joins the sanitized last k elements of path, growing k until the
// result is free, and falls back to a numeric suffix.
func deriveAlias(path string, taken *treeset.Set) string {
	elems := strings.Split(path, "/")
	for k := 1; k <= len(elems); k++ {
		candidate := model.Sanitize(strings.Join(elems[len(elems)-k:], ""))
		if !taken.Contains(candidate) {
			return candidate
		}
	}
	base := model.Sanitize(strings.Join(elems, ""))
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !taken.Contains(candidate) {
			return candidate
		}
	}
}

// Qualify returns the spelling of q in the file. It panics when q belongs to a
// package that was not among the references the table was built from.
func (t *ImportTable) Qualify(q model.QualifiedName) string {
	if q.Path == "" || q.Path == t.pkgPath {
		return q.Name
	}
	alias, ok := t.aliases.Get(q.Path)
	if !ok {
		panic(fmt.Sprintf("resolver: %s was not collected into the import table of %s", q, t.pkgPath))
	}
	return alias.(string) + "." + q.Name
}

// Imports returns the import block entries sorted by path.
func (t *ImportTable) Imports() []Import {
	out := make([]Import, 0, t.aliases.Size())
	t.aliases.Each(func(path, alias interface{}) {
		p, a := path.(string), alias.(string)
		elems := strings.Split(p, "/")
		out = append(out, Import{Path: p, Alias: a, Named: elems[len(elems)-1] != a})
	})
	return out
}

// Decl renders the import declaration, or nothing when there are no imports.
func (t *ImportTable) Decl() string {
	imports := t.Imports()
	if len(imports) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range imports {
		b.WriteByte('\t')
		if imp.Named {
			b.WriteString(imp.Alias + " ")
		}
		b.WriteString(strconv.Quote(imp.Path) + "\n")
	}
	b.WriteString(")\n")
	return b.String()
}

// Context returns the rendering context of the file in env.
func (t *ImportTable) Context(env feature.Environment) excerpt.Context {
	return fileContext{ImportTable: t, env: env}
}

type fileContext struct {
	*ImportTable
	env feature.Environment
}

func (c fileContext) Enabled(n feature.Name) bool {
	return c.env.Enabled(n)
}
