package descriptor

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/module"

	"github.com/cmmoran/valuegen/internal/model"
)

// resolver turns the strings of one document into model values.
type resolver struct {
	pkgPath string
	pkgName string
	imports map[string]string // package name -> import path
}

func newResolver(d *Document) (*resolver, error) {
	if err := module.CheckImportPath(d.Package); err != nil {
		return nil, model.Schemaf("%s: package %q: %v", d.source, d.Package, err)
	}
	r := &resolver{pkgPath: d.Package, pkgName: d.Name, imports: map[string]string{}}
	if r.pkgName == "" {
		r.pkgName = model.PackageName(d.Package)
	}
	if !token.IsIdentifier(r.pkgName) {
		return nil, model.Schemaf("%s: package name %q is not a Go identifier", d.source, r.pkgName)
	}
	names := make([]string, 0, len(d.Imports))
	for name := range d.Imports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := d.Imports[name]
		if !token.IsIdentifier(name) {
			return nil, model.Schemaf("%s: import name %q is not a Go identifier", d.source, name)
		}
		if err := module.CheckImportPath(path); err != nil {
			return nil, model.Schemaf("%s: import %s %q: %v", d.source, name, path, err)
		}
		r.imports[name] = path
	}
	return r, nil
}

// local names a declaration of the generated package.
func (r *resolver) local(ident string) model.QualifiedName {
	return model.QualifiedName{Path: r.pkgPath, Name: ident, PkgName: r.pkgName}
}

// imported names ident in the package spelled pkg.
func (r *resolver) imported(pkg, ident string) (model.QualifiedName, error) {
	path, ok := r.imports[pkg]
	if !ok {
		if path, ok = stdlib[pkg]; !ok {
			return model.QualifiedName{}, errors.WithHint(
				model.Schemaf("unknown package %s", pkg), "declare it under imports")
		}
	}
	q := model.QualifiedName{Path: path, Name: ident}
	if q.Package() != pkg {
		q.PkgName = pkg
	}
	return q, nil
}

// parseType parses a Go type expression.
func (r *resolver) parseType(src string) (model.TypeRef, error) {
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return model.TypeRef{}, model.Schemaf("type %q: %v", src, err)
	}
	t, err := r.resolveTypeExpr(expr)
	if err != nil {
		return model.TypeRef{}, errors.Wrapf(err, "type %q", src)
	}
	return t, nil
}

// resolveTypeExpr resolves an ast.Expr into a TypeRef.
func (r *resolver) resolveTypeExpr(expr ast.Expr) (model.TypeRef, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if obj, ok := types.Universe.Lookup(t.Name).(*types.TypeName); ok {
			return model.Builtin(obj.Name()), nil
		}
		if types.Universe.Lookup(t.Name) != nil {
			return model.TypeRef{}, model.Schemaf("%s is not a type", t.Name)
		}
		return model.Named(r.local(t.Name)), nil

	case *ast.ParenExpr:
		return r.resolveTypeExpr(t.X)

	case *ast.StarExpr:
		elem, err := r.resolveTypeExpr(t.X)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Pointer(elem), nil

	case *ast.ArrayType:
		elem, err := r.resolveTypeExpr(t.Elt)
		if err != nil {
			return model.TypeRef{}, err
		}
		if t.Len == nil {
			return model.Slice(elem), nil
		}
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return model.TypeRef{}, model.Schemaf("array length must be an integer literal")
		}
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil || n < 0 {
			return model.TypeRef{}, model.Schemaf("array length %s is invalid", lit.Value)
		}
		return model.Array(int(n), elem), nil

	case *ast.MapType:
		key, err := r.resolveTypeExpr(t.Key)
		if err != nil {
			return model.TypeRef{}, err
		}
		value, err := r.resolveTypeExpr(t.Value)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Map(key, value), nil

	case *ast.StructType:
		if t.Fields != nil && len(t.Fields.List) > 0 {
			return model.TypeRef{}, model.Schemaf("struct literal types are not supported; declare a named type")
		}
		return model.EmptyStruct(), nil

	case *ast.InterfaceType:
		if t.Methods != nil && len(t.Methods.List) > 0 {
			return model.TypeRef{}, model.Schemaf("interface literal types are not supported; declare a named type")
		}
		return model.Builtin("any"), nil

	case *ast.IndexExpr:
		// Single-type-argument generic T[A]
		return r.instantiate(t.X, []ast.Expr{t.Index})

	case *ast.IndexListExpr:
		// Multi-type-argument generic T[A, B]
		return r.instantiate(t.X, t.Indices)

	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return model.TypeRef{}, model.Schemaf("unsupported qualified type")
		}
		q, err := r.imported(pkg.Name, t.Sel.Name)
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.Named(q), nil
	}
	return model.TypeRef{}, model.Schemaf("unsupported type expression %T", expr)
}

// instantiate applies type arguments to a generic named type.
func (r *resolver) instantiate(base ast.Expr, args []ast.Expr) (model.TypeRef, error) {
	bt, err := r.resolveTypeExpr(base)
	if err != nil {
		return model.TypeRef{}, err
	}
	if bt.Kind() != model.TypeNamed || bt.IsPredeclared() {
		return model.TypeRef{}, model.Schemaf("%s is not a generic type", bt)
	}
	refs := make([]model.TypeRef, len(args))
	for i, a := range args {
		if refs[i], err = r.resolveTypeExpr(a); err != nil {
			return model.TypeRef{}, err
		}
	}
	return model.Named(bt.Name(), refs...), nil
}

// parseExpr parses a Go expression and splits out references to imported
// packages, so the file it is rendered into can qualify them.
func (r *resolver) parseExpr(src string) (model.Expr, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return model.Expr{}, model.Schemaf("expression %q: %v", src, err)
	}
	file := fset.File(expr.Pos())
	var (
		out  model.Expr
		last int
		werr error
	)
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok || werr != nil {
			return werr == nil
		}
		pkg, ok := sel.X.(*ast.Ident)
		if !ok || !r.isPackage(pkg.Name) {
			return true
		}
		q, err := r.imported(pkg.Name, sel.Sel.Name)
		if err != nil {
			werr = errors.Wrapf(err, "expression %q", src)
			return false
		}
		start, end := file.Offset(sel.Pos()), file.Offset(sel.End())
		if start > last {
			out.Parts = append(out.Parts, model.ExprPart{Text: src[last:start]})
		}
		out.Parts = append(out.Parts, model.ExprPart{Ref: &q})
		last = end
		return false
	})
	if werr != nil {
		return model.Expr{}, werr
	}
	if last < len(src) {
		out.Parts = append(out.Parts, model.ExprPart{Text: src[last:]})
	}
	return out, nil
}

// isPackage reports whether an identifier selected from in an expression names
// a package rather than a declaration of the generated package.
func (r *resolver) isPackage(name string) bool {
	if _, ok := r.imports[name]; ok {
		return true
	}
	_, ok := stdlib[name]
	return ok
}

// stdlib lists the standard library packages descriptors may use without
// declaring them under imports.
var stdlib = map[string]string{
	"big":      "math/big",
	"bytes":    "bytes",
	"context":  "context",
	"errors":   "errors",
	"fmt":      "fmt",
	"fs":       "io/fs",
	"http":     "net/http",
	"io":       "io",
	"json":     "encoding/json",
	"math":     "math",
	"net":      "net",
	"netip":    "net/netip",
	"os":       "os",
	"regexp":   "regexp",
	"slog":     "log/slog",
	"strconv":  "strconv",
	"strings":  "strings",
	"sync":     "sync",
	"time":     "time",
	"unicode":  "unicode",
	"url":      "net/url",
	"filepath": "path/filepath",
}
