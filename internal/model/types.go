package model

import (
	"slices"
	"strconv"
	"strings"
)

type TypeKind int

const (
	TypeNamed       TypeKind = iota // int, time.Time, pkg.List[T]
	TypePointer                     // *T
	TypeSlice                       // []T
	TypeArray                       // [N]T
	TypeMap                         // map[K]V
	TypeEmptyStruct                 // struct{}
)

// TypeRef is an immutable Go type expression. The zero value is invalid; build
// TypeRefs with Named, Builtin, Pointer, Slice, Array, Map and EmptyStruct.
type TypeRef struct {
	kind   TypeKind
	name   QualifiedName
	args   []TypeRef
	elem   *TypeRef
	key    *TypeRef
	length int
}

// Named refers to a declared type, optionally instantiated with type arguments.
func Named(name QualifiedName, args ...TypeRef) TypeRef {
	return TypeRef{kind: TypeNamed, name: name, args: slices.Clone(args)}
}

// Builtin refers to a predeclared type such as int or string.
func Builtin(ident string) TypeRef {
	return Named(Predeclared(ident))
}

func Pointer(elem TypeRef) TypeRef {
	return TypeRef{kind: TypePointer, elem: &elem}
}

func Slice(elem TypeRef) TypeRef {
	return TypeRef{kind: TypeSlice, elem: &elem}
}

func Array(length int, elem TypeRef) TypeRef {
	return TypeRef{kind: TypeArray, elem: &elem, length: length}
}

func Map(key, value TypeRef) TypeRef {
	return TypeRef{kind: TypeMap, key: &key, elem: &value}
}

func EmptyStruct() TypeRef {
	return TypeRef{kind: TypeEmptyStruct}
}

func (t TypeRef) Kind() TypeKind          { return t.kind }
func (t TypeRef) Name() QualifiedName     { return t.name }
func (t TypeRef) Args() []TypeRef         { return slices.Clone(t.args) }
func (t TypeRef) Len() int                { return t.length }
func (t TypeRef) IsValid() bool           { return t.kind != TypeNamed || t.name.Name != "" }
func (t TypeRef) IsEmptyStruct() bool     { return t.kind == TypeEmptyStruct }
func (t TypeRef) IsPredeclared() bool     { return t.kind == TypeNamed && t.name.IsPredeclared() }
func (t TypeRef) isBuiltin(n string) bool { return t.IsPredeclared() && t.name.Name == n }

// Elem returns the element type of a pointer, slice, array or map (its value type).
func (t TypeRef) Elem() TypeRef {
	if t.elem == nil {
		return TypeRef{}
	}
	return *t.elem
}

// Key returns the key type of a map.
func (t TypeRef) Key() TypeRef {
	if t.key == nil {
		return TypeRef{}
	}
	return *t.key
}

// IsSet reports whether t has the shape map[E]struct{}.
func (t TypeRef) IsSet() bool {
	return t.kind == TypeMap && t.elem.IsEmptyStruct()
}

// IsMultimap reports whether t has the shape map[K][]V.
func (t TypeRef) IsMultimap() bool {
	return t.kind == TypeMap && t.elem.kind == TypeSlice
}

// Nillable reports whether nil is a valid value of t. Declared types from other
// packages are assumed not to be interfaces; properties can override this.
func (t TypeRef) Nillable() bool {
	switch t.kind {
	case TypePointer, TypeSlice, TypeMap:
		return true
	case TypeNamed:
		return t.isBuiltin("any") || t.isBuiltin("error")
	}
	return false
}

// Comparable reports whether values of t support ==. Declared types are assumed
// comparable; properties can override this.
func (t TypeRef) Comparable() bool {
	switch t.kind {
	case TypeSlice, TypeMap:
		return false
	case TypeArray:
		return t.elem.Comparable()
	}
	return true
}

var numeric = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
	"byte": true, "rune": true,
}

// ZeroLiteral returns the literal spelling of t's zero value, if one exists.
func (t TypeRef) ZeroLiteral() (string, bool) {
	if t.Nillable() {
		return "nil", true
	}
	if !t.IsPredeclared() {
		return "", false
	}
	switch n := t.name.Name; {
	case numeric[n]:
		return "0", true
	case n == "string":
		return `""`, true
	case n == "bool":
		return "false", true
	}
	return "", false
}

// Walk calls fn for every qualified name referenced by t, in source order.
func (t TypeRef) Walk(fn func(QualifiedName)) {
	switch t.kind {
	case TypeNamed:
		fn(t.name)
		for _, a := range t.args {
			a.Walk(fn)
		}
	case TypeMap:
		t.key.Walk(fn)
		t.elem.Walk(fn)
	case TypePointer, TypeSlice, TypeArray:
		t.elem.Walk(fn)
	}
}

// Equal reports whether t and o denote the same type expression.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.kind != o.kind || t.name != o.name || t.length != o.length || len(t.args) != len(o.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(o.args[i]) {
			return false
		}
	}
	if (t.elem == nil) != (o.elem == nil) || (t.key == nil) != (o.key == nil) {
		return false
	}
	if t.elem != nil && !t.elem.Equal(*o.elem) {
		return false
	}
	return t.key == nil || t.key.Equal(*o.key)
}

// Format renders t with qualify deciding how each name is spelled.
func (t TypeRef) Format(qualify func(QualifiedName) string) string {
	var b strings.Builder
	t.format(&b, qualify)
	return b.String()
}

func (t TypeRef) format(b *strings.Builder, qualify func(QualifiedName) string) {
	switch t.kind {
	case TypeNamed:
		b.WriteString(qualify(t.name))
		if len(t.args) > 0 {
			b.WriteByte('[')
			for i, a := range t.args {
				if i > 0 {
					b.WriteString(", ")
				}
				a.format(b, qualify)
			}
			b.WriteByte(']')
		}
	case TypePointer:
		b.WriteByte('*')
		t.elem.format(b, qualify)
	case TypeSlice:
		b.WriteString("[]")
		t.elem.format(b, qualify)
	case TypeArray:
		b.WriteString("[" + strconv.Itoa(t.length) + "]")
		t.elem.format(b, qualify)
	case TypeMap:
		b.WriteString("map[")
		t.key.format(b, qualify)
		b.WriteByte(']')
		t.elem.format(b, qualify)
	case TypeEmptyStruct:
		b.WriteString("struct{}")
	}
}

// String renders t using package names, e.g. map[string]time.Duration.
func (t TypeRef) String() string {
	return t.Format(func(q QualifiedName) string {
		if q.IsPredeclared() {
			return q.Name
		}
		return q.Package() + "." + q.Name
	})
}
