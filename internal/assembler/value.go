package assembler

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/internal/property"
)

func (f *file) valueInterface() excerpt.Excerpt {
	dt := f.dt
	doc := dt.Doc
	if doc == "" {
		doc = fmt.Sprintf("%s is an immutable value built by %s.", dt.Type.Name, dt.Builder.Name)
	}
	var b excerpt.Builder
	b.Add(excerpt.Comment(doc))
	b.Line("type %s interface {", dt.Type)
	for _, c := range f.codes {
		b.Add(c.InterfaceMethod())
	}
	b.Blank()
	b.Line("// Equal reports whether other holds equal properties and is partial exactly when this value is.")
	b.Line("Equal(other %s) bool", dt.Type)
	b.Line("// Hash returns a hash consistent with Equal.")
	b.Line("Hash() uint64")
	b.Line("String() string")
	b.Line("}").Blank()
	return b.Build()
}

// propertyEnum declares one constant per property, used to index the unset
// array and to name properties in errors. It references nothing outside the
// generated package, so jennifer renders it directly.
func (f *file) propertyEnum() excerpt.Excerpt {
	dt := f.dt
	enum := dt.PropertyEnum.Name
	consts := make([]jen.Code, 0, len(dt.Properties)+1)
	names := make([]jen.Code, 0, len(dt.Properties))
	for i, p := range dt.Properties {
		c := jen.Id(dt.EnumConst(p).Name)
		if i == 0 {
			c = c.Id(enum).Op("=").Iota()
		}
		consts = append(consts, c)
		names = append(names, jen.Lit(p.Name))
	}
	count := jen.Id(dt.EnumCount().Name)
	if len(dt.Properties) == 0 {
		count = count.Id(enum).Op("=").Iota()
	}
	consts = append(consts, count)

	return excerpt.Seq(
		excerpt.Jen(
			jen.Type().Id(enum).Int(),
			jen.Const().Defs(consts...),
			jen.Var().Id(f.enumNames()).Op("=").Index(jen.Op("...")).String().Values(names...),
			jen.Func().Params(jen.Id("p").Id(enum)).Id("String").Params().String().Block(
				jen.Return(jen.Id(f.enumNames()).Index(jen.Id("p"))),
			),
		),
		excerpt.Literal("\n"),
	)
}

func (f *file) rebuildable() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("%s is implemented by every %s built by %s.",
		dt.Rebuildable.Name, dt.Type.Name, dt.Builder.Name)))
	b.Line("type %s interface {", dt.Rebuildable)
	b.Line("%s", dt.Type)
	b.Line("ToBuilder() *%s", dt.Builder)
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) data() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("%s is the immutable snapshot shared by built and partial values.", dt.DataType.Name)))
	b.Line("type %s struct {", dt.DataType)
	for _, c := range f.codes {
		b.Add(c.ValueField())
	}
	b.Line("unset [%s]bool", dt.EnumCount())
	b.Line("}").Blank()

	for _, c := range f.codes {
		b.Add(c.ValueAccessor())
	}

	b.Line("func (d %s) equal(other %s) bool {", dt.DataType, dt.DataType)
	var eqs []excerpt.Excerpt
	for _, c := range f.codes {
		eqs = append(eqs, c.Equal())
	}
	if len(eqs) == 0 {
		b.Line("return true")
	} else {
		b.Line("return %s", excerpt.Join(eqs, " &&\n"))
	}
	b.Line("}").Blank()

	b.Add(excerpt.Comment("Hash returns a hash of the properties consistent with Equal."))
	b.Line("func (d %s) Hash() uint64 {", dt.DataType)
	b.Line("var h %s", property.Kit("Hash"))
	for _, c := range f.codes {
		b.Add(c.Hash())
	}
	b.Line("return h.Sum64()")
	b.Line("}").Blank()

	b.Line("func (d %s) format(prefix string) string {", dt.DataType)
	b.Line("parts := make([]string, 0, %s)", len(f.codes))
	for _, c := range f.codes {
		b.Add(c.Format())
	}
	b.Line("return prefix + %q + %s(parts, %q) + %q", dt.Type.Name+"{", joinStrings, ", ", "}")
	b.Line("}").Blank()

	b.Line("func (d %s) copyTo(b *%s) {", dt.DataType, dt.Builder)
	for _, c := range f.codes {
		b.Add(c.CopyToBuilder())
	}
	b.Line("}").Blank()

	if dt.BuilderSerializable {
		b.Add(f.marshalJSON())
	}
	return b.Build()
}

func (f *file) marshalJSON() excerpt.Excerpt {
	var b excerpt.Builder
	b.Add(excerpt.Comment("MarshalJSON encodes the properties as a JSON object."))
	b.Line("func (d %s) MarshalJSON() ([]byte, error) {", f.dt.DataType)
	b.Line("return %s(struct {", jsonMarshal)
	for _, c := range f.codes {
		b.Add(c.JSONField())
	}
	b.Line("}{")
	for _, c := range f.codes {
		b.Add(c.JSONValue())
	}
	b.Line("})")
	b.Line("}").Blank()
	return b.Build()
}

// variant declares the built or the partial value type.
func (f *file) variant(name model.QualifiedName, partial bool) excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	prefix, what := "", "built"
	if partial {
		prefix, what = "partial ", "partial"
	}
	b.Line("type %s struct {", name)
	b.Line("%s", dt.DataType)
	b.Line("}").Blank()

	b.Add(excerpt.Comment("ToBuilder returns a builder holding the properties of v."))
	b.Line("func (v %s) ToBuilder() *%s {", name, dt.Builder)
	b.Line("b := %s", f.fresh())
	b.Line("v.copyTo(b)")
	if partial {
		b.Line("b.partial = true")
	}
	b.Line("return b")
	b.Line("}").Blank()

	b.Add(excerpt.Comment(fmt.Sprintf("Equal reports whether other is a %s %s with equal properties.", what, dt.Type.Name)))
	b.Line("func (v %s) Equal(other %s) bool {", name, dt.Type)
	b.Line("o, ok := other.(%s)", name)
	b.Line("return ok && v.equal(o.%s)", dt.DataType)
	b.Line("}").Blank()

	b.Line("func (v %s) String() string {", name)
	b.Line("return v.format(%q)", prefix)
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) assertions() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Line("var (")
	b.Line("_ %s = %s{}", dt.Rebuildable, dt.ValueType)
	b.Line("_ %s = %s{}", dt.Rebuildable, dt.PartialType)
	if dt.BuilderSerializable {
		b.Line("_ %s = %s{}", jsonIface, dt.ValueType)
		b.Line("_ %s = %s{}", jsonIface, dt.PartialType)
	}
	b.Line(")")
	return b.Build()
}
