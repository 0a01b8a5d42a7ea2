package model

import (
	"regexp"
	"strings"
	"unicode"
)

// QualifiedName identifies a package-level Go identifier: a type, func, var or const.
// An empty Path denotes a predeclared identifier such as int or any.
type QualifiedName struct {
	Path    string // import path, "" for predeclared identifiers
	Name    string // identifier
	PkgName string // package clause name; derived from Path when empty
}

// Q returns the qualified name of ident in the package at path.
func Q(path, ident string) QualifiedName {
	return QualifiedName{Path: path, Name: ident}
}

// Predeclared returns the qualified name of a predeclared identifier.
func Predeclared(ident string) QualifiedName {
	return QualifiedName{Name: ident}
}

// IsPredeclared reports whether q names a predeclared identifier.
func (q QualifiedName) IsPredeclared() bool {
	return q.Path == ""
}

// Package returns the package clause name for q's import path.
func (q QualifiedName) Package() string {
	if q.PkgName != "" {
		return q.PkgName
	}
	return PackageName(q.Path)
}

// Sibling returns a name declared in the same package as q.
func (q QualifiedName) Sibling(ident string) QualifiedName {
	return QualifiedName{Path: q.Path, Name: ident, PkgName: q.PkgName}
}

// String renders q fully qualified, the way go/types prints object paths.
func (q QualifiedName) String() string {
	if q.Path == "" {
		return q.Name
	}
	return q.Path + "." + q.Name
}

// Less orders qualified names by path and then by identifier.
func (q QualifiedName) Less(o QualifiedName) bool {
	if q.Path != o.Path {
		return q.Path < o.Path
	}
	return q.Name < o.Name
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// PackageName guesses the package clause name of an import path: the last path
// element, skipping major version suffixes and dropping go- prefixes, -go suffixes,
// .vN suffixes and characters that cannot appear in an identifier.
func PackageName(path string) string {
	elems := strings.Split(path, "/")
	last := elems[len(elems)-1]
	if majorVersion.MatchString(last) && len(elems) > 1 {
		last = elems[len(elems)-2]
	}
	if i := strings.LastIndex(last, ".v"); i > 0 && majorVersion.MatchString(last[i+1:]) {
		last = last[:i]
	}
	last = strings.TrimPrefix(last, "go-")
	last = strings.TrimSuffix(last, "-go")
	return Sanitize(last)
}

// Sanitize lowercases s and drops every rune that cannot appear in a Go identifier.
func Sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || unicode.IsDigit([]rune(out)[0]) {
		out = "pkg" + out
	}
	return out
}
