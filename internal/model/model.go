package model

import (
	"fmt"
	"strings"
)

// Kind tags the category of a property. The set is closed: every generator
// switch over Kind handles all of them.
type Kind int

const (
	KindInvalid  Kind = iota
	KindScalar        // plain value, required unless it has a default
	KindOptional      // value that may be absent
	KindList          // []E
	KindSet           // map[E]struct{}
	KindMap           // map[K]V
	KindMultimap      // map[K][]V
	KindBiMap         // map[K]V with unique values
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindScalar:   "scalar",
	KindOptional: "optional",
	KindList:     "list",
	KindSet:      "set",
	KindMap:      "map",
	KindMultimap: "multimap",
	KindBiMap:    "bimap",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a descriptor kind name to a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, n := range kindNames {
		if Kind(k) != KindInvalid && strings.EqualFold(n, s) {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// BuilderFactory says how generated code obtains a fresh builder.
type BuilderFactory struct {
	// Func names a user-declared function returning a new builder. When empty the
	// generated constructor is used.
	Func string
}

// IsConstructor reports whether the generated constructor creates fresh builders.
func (f BuilderFactory) IsConstructor() bool {
	return f.Func == ""
}

// Datatype describes one value type to generate. It is assembled once per
// generation run and never mutated afterwards.
type Datatype struct {
	Type         QualifiedName // value interface, e.g. example.Person
	Builder      QualifiedName // example.PersonBuilder
	Constructor  QualifiedName // example.NewPersonBuilder
	From         QualifiedName // example.PersonBuilderFrom
	ValueType    QualifiedName // example.personValue
	PartialType  QualifiedName // example.personPartial
	DataType     QualifiedName // example.personData
	Rebuildable  QualifiedName // example.personRebuildable
	PropertyEnum QualifiedName // example.personProperty

	Factory             BuilderFactory
	Extensible          bool // constructor is exported
	InterfaceBacked     bool // the value interface is declared by the user
	BuilderSerializable bool // value and partial implement json.Marshaler

	Doc        string
	Properties []*Property
}

// Package returns the import path of the generated file.
func (d *Datatype) Package() string {
	return d.Type.Path
}

// HasScalars reports whether any property tracks set/unset state.
func (d *Datatype) HasScalars() bool {
	for _, p := range d.Properties {
		if p.Kind == KindScalar {
			return true
		}
	}
	return false
}

// Required returns the properties Build must see set, in declaration order.
func (d *Datatype) Required() []*Property {
	var out []*Property
	for _, p := range d.Properties {
		if p.IsRequired() {
			out = append(out, p)
		}
	}
	return out
}

// EnumConst returns the property enum constant naming p.
func (d *Datatype) EnumConst(p *Property) QualifiedName {
	return d.PropertyEnum.Sibling(d.PropertyEnum.Name + p.CapitalizedName)
}

// EnumCount returns the constant holding the number of properties.
func (d *Datatype) EnumCount() QualifiedName {
	return d.PropertyEnum.Sibling(d.PropertyEnum.Name + "Count")
}

// Property is one declared property of a Datatype.
type Property struct {
	Name            string // lower camel case: firstName
	CapitalizedName string // FirstName
	AllCapsName     string // FIRST_NAME
	SingularName    string // adder suffix for list and set kinds
	GetterName      string // accessor on the value interface
	Type            TypeRef
	Kind            Kind
	Doc             string

	// Default is a Go expression initializing a scalar property; it makes the
	// property optional at Build time.
	Default Expr

	// Nillable, when true, lets mutators accept nil elements of types that admit
	// it; by default they panic. Comparable overrides whether declared element
	// types support ==.
	Nillable   *bool
	Comparable *bool

	// BiMap is set for KindBiMap properties.
	BiMap *BiMapParams
}

// BiMapParams are the kind-specific parameters of a bimap property.
type BiMapParams struct {
	Key   TypeRef
	Value TypeRef
}

// IsRequired reports whether Build fails when p was never set.
func (p *Property) IsRequired() bool {
	return p.Kind == KindScalar && p.Default.IsZero()
}

// RejectsNil reports whether mutators of p must panic when handed a nil t.
func (p *Property) RejectsNil(t TypeRef) bool {
	if p.Nillable != nil && *p.Nillable {
		return false
	}
	return t.Nillable()
}

// ElemComparable reports whether the element type t of p supports ==.
func (p *Property) ElemComparable(t TypeRef) bool {
	if p.Comparable != nil {
		return *p.Comparable
	}
	return t.Comparable()
}

// Expr is a Go expression split into literal text and qualified references, in
// source order. Exactly one of Text or Ref is meaningful per part.
type Expr struct {
	Parts []ExprPart
}

type ExprPart struct {
	Text string
	Ref  *QualifiedName
}

func (e Expr) IsZero() bool { return len(e.Parts) == 0 }

// String renders e with package names for references.
func (e Expr) String() string {
	var b strings.Builder
	for _, p := range e.Parts {
		if p.Ref != nil {
			b.WriteString(p.Ref.Package() + "." + p.Ref.Name)
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
