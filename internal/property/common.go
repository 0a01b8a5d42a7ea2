package property

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

const (
	// KitPath is the import path of the runtime support package.
	KitPath = "github.com/cmmoran/valuegen/pkg/builderkit"
	// GodsKitPath adapts gods bidimaps for bimap properties.
	GodsKitPath = KitPath + "/godsbimap"
)

// Kit names a declaration of the runtime support package.
func Kit(name string) model.QualifiedName {
	return model.Q(KitPath, name)
}

var (
	sprintf      = model.Q("fmt", "Sprintf")
	deepEqual    = model.Q("reflect", "DeepEqual")
	slicesClone  = model.Q("slices", "Clone")
	slicesEqual  = model.Q("slices", "Equal")
	slicesIndex  = model.Q("slices", "Index")
	slicesDelete = model.Q("slices", "Delete")
	mapsClone    = model.Q("maps", "Clone")
	mapsEqual    = model.Q("maps", "Equal")
)

// Locals are the identifiers generated method bodies declare. Imports must not
// be spelled with them.
var Locals = []string{
	"b", "bound", "d", "defaults", "e", "err", "fn", "h", "i", "k", "key", "missing", "o", "ok", "other",
	"p", "parts", "prefix", "r", "template", "v", "value", "values",
}

type common struct {
	dt  *model.Datatype
	p   *model.Property
	env feature.Environment
}

func (c common) sealed() {}

func (c common) Property() *model.Property { return c.p }

// method is how panics name a builder method.
func (c common) method(name string) string {
	return c.dt.Builder.Name + "." + name
}

// getter is how docs name the value interface getter.
func (c common) getter() string {
	return c.dt.Type.Name + "." + c.p.GetterName
}

func (c common) enum() model.QualifiedName {
	return c.dt.EnumConst(c.p)
}

func (c common) shape(want string) error {
	return model.SchemaHintf("declare the property with "+want+" or pick another kind",
		"%s.%s: kind %s does not fit type %s", c.dt.Type.Name, c.p.Name, c.p.Kind, c.p.Type)
}

func (c common) comparableKey(t model.TypeRef) error {
	if c.p.ElemComparable(t) {
		return nil
	}
	return model.SchemaHintf("keys and set elements must support ==",
		"%s.%s: %s key type %s is not comparable", c.dt.Type.Name, c.p.Name, c.p.Kind, t)
}

func (c common) doc(format string, args ...any) excerpt.Excerpt {
	return excerpt.Comment(fmt.Sprintf(format, args...))
}

// fn declares a builder method returning results.
func (c common) fn(name string, params, results any, body ...excerpt.Excerpt) excerpt.Excerpt {
	head := excerpt.F("func (b *%s) %s(%s) %s {\n", c.dt.Builder, name, params, results)
	return excerpt.Seq(head, excerpt.Seq(body...), excerpt.Literal("}\n\n"))
}

// mutator declares a builder method returning the builder.
func (c common) mutator(name string, params any, body ...excerpt.Excerpt) excerpt.Excerpt {
	return c.fn(name, params, excerpt.F("*%s", c.dt.Builder), body...)
}

// dataFn declares a snapshot method.
func (c common) dataFn(name string, results any, body ...excerpt.Excerpt) excerpt.Excerpt {
	head := excerpt.F("func (d %s) %s() %s {\n", c.dt.DataType, name, results)
	return excerpt.Seq(head, excerpt.Seq(body...), excerpt.Literal("}\n\n"))
}

var returnBuilder = excerpt.Literal("return b\n")

// nilCheck panics when arg is nil and the property rejects nil values of t.
func (c common) nilCheck(t model.TypeRef, arg, method string) excerpt.Excerpt {
	if !c.p.RejectsNil(t) {
		return excerpt.Empty
	}
	return excerpt.F("if %s == nil {\npanic(%s(%q, %q))\n}\n", arg, Kit("NilArgument"), c.method(method), arg)
}

// nilCheckEach is nilCheck for every element of the variadic argument arg.
func (c common) nilCheckEach(t model.TypeRef, arg, method string) excerpt.Excerpt {
	if !c.p.RejectsNil(t) {
		return excerpt.Empty
	}
	return excerpt.F("for _, e := range %s {\nif e == nil {\npanic(%s(%q, %q))\n}\n}\n",
		arg, Kit("NilArgument"), c.method(method), arg)
}

// fnCheck rejects a nil callback.
func (c common) fnCheck(method string) excerpt.Excerpt {
	return excerpt.F("if fn == nil {\npanic(%s(%q, %q))\n}\n", Kit("NilArgument"), c.method(method), "fn")
}

// formatPart appends name=<expr> to parts.
func (c common) formatPart(expr any) excerpt.Excerpt {
	return excerpt.F("parts = append(parts, %s(%q, %s))\n", sprintf, c.p.Name+"=%v", expr)
}

func (c common) jsonField(t any, omitEmpty bool) excerpt.Excerpt {
	tag := c.p.Name
	if omitEmpty {
		tag += ",omitempty"
	}
	return excerpt.F("%s %s `json:%q`\n", c.p.CapitalizedName, t, tag)
}

func (c common) jsonValue() excerpt.Excerpt {
	return excerpt.F("%s: d.%s,\n", c.p.CapitalizedName, c.p.Name)
}

func (c common) valueField(t any) excerpt.Excerpt {
	return excerpt.F("%s %s\n", c.p.Name, t)
}

func (c common) interfaceMethod(results any) excerpt.Excerpt {
	return excerpt.Seq(excerpt.Comment(c.p.Doc), excerpt.F("%s() %s\n", c.p.GetterName, results))
}

// equalBy compares d and other with a comparable-aware equality function, or
// reflect.DeepEqual when elements do not support ==.
func (c common) equalBy(eq bool, fn any) excerpt.Excerpt {
	if !eq {
		return excerpt.F("%s(d.%s, other.%s)", deepEqual, c.p.Name, c.p.Name)
	}
	return excerpt.F("%s(d.%s, other.%s)", fn, c.p.Name, c.p.Name)
}

// cloneSlice copies the slice src. Builders keep list fields non-nil, so
// both spellings return a non-nil copy.
func cloneSlice(src string) excerpt.Excerpt {
	return excerpt.If(feature.GoSlicesMaps,
		excerpt.F("%s(%s)", slicesClone, src),
		excerpt.F("%s(%s)", Kit("CopySlice"), src))
}

// cloneMap copies the map src.
func cloneMap(src string) excerpt.Excerpt {
	return excerpt.If(feature.GoSlicesMaps,
		excerpt.F("%s(%s)", mapsClone, src),
		excerpt.F("%s(%s)", Kit("CopyMap"), src))
}

// clearMap empties the map m in place.
func clearMap(m string) excerpt.Excerpt {
	return excerpt.If(feature.GoSlicesMaps,
		excerpt.F("clear(%s)\n", m),
		excerpt.F("for k := range %s {\ndelete(%s, k)\n}\n", m, m))
}

// equalMaps compares two maps with comparable values.
func equalMaps() excerpt.Excerpt {
	return excerpt.If(feature.GoSlicesMaps, excerpt.Ref(mapsEqual), excerpt.Ref(Kit("EqualMaps")))
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
