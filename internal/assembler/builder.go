package assembler

import (
	"fmt"

	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/internal/property"
)

func (f *file) kitPanic(method, arg string) excerpt.Excerpt {
	return excerpt.F("panic(%s(%q, %q))\n", property.Kit("NilArgument"), f.dt.Builder.Name+"."+method, arg)
}

func (f *file) builderType() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("%s builds %s values.\n\nA %s is not safe for concurrent use.",
		dt.Builder.Name, dt.Type.Name, dt.Builder.Name)))
	b.Line("type %s struct {", dt.Builder)
	for _, c := range f.codes {
		b.Add(c.Field())
	}
	b.Blank()
	b.Line("unset [%s]bool", dt.EnumCount())
	b.Line("partial bool")
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) constructor() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("%s returns a builder with every property unset.", dt.Constructor.Name)))
	b.Line("func %s() *%s {", dt.Constructor, dt.Builder)
	b.Line("return &%s{", dt.Builder)
	for _, c := range f.codes {
		b.Add(c.Init())
	}
	var unset []excerpt.Excerpt
	for _, p := range dt.Properties {
		if p.Kind == model.KindScalar {
			unset = append(unset, excerpt.F("%s: true", dt.EnumConst(p)))
		}
	}
	if len(unset) > 0 {
		b.Line("unset: [%s]bool{%s},", dt.EnumCount(), excerpt.Join(unset, ", "))
	}
	b.Line("}")
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) from() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("%s returns a builder holding the properties of value.", dt.From.Name)))
	b.Line("func %s(value %s) *%s {", dt.From, dt.Type, dt.Builder)
	b.Line("if r, ok := value.(%s); ok {", dt.Rebuildable)
	b.Line("return r.ToBuilder()")
	b.Line("}")
	b.Line("return %s.MergeFrom(value)", f.fresh())
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) mergeFrom() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment("MergeFrom copies every property of value into b. Scalar properties are\n" +
		"overwritten; collection properties are added to. Merging the same value twice leaves\n" +
		"sets, maps and bimaps unchanged but appends list and multimap entries again."))
	b.Line("func (b *%s) MergeFrom(value %s) *%s {", dt.Builder, dt.Type, dt.Builder)
	b.Line("if value == nil {").Add(f.kitPanic("MergeFrom", "value")).Line("}")
	b.Line("if r, ok := value.(%s); ok {", dt.Rebuildable)
	b.Line("return b.MergeFromBuilder(r.ToBuilder())")
	b.Line("}")
	for _, c := range f.codes {
		b.Add(c.MergeFromValue())
	}
	b.Line("return b")
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) mergeFromBuilder() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment("MergeFromBuilder copies every property set on template into b, like MergeFrom."))
	b.Line("func (b *%s) MergeFromBuilder(template *%s) *%s {", dt.Builder, dt.Builder, dt.Builder)
	b.Line("if template == nil {").Add(f.kitPanic("MergeFromBuilder", "template")).Line("}")
	for _, c := range f.codes {
		b.Add(c.MergeFromBuilder())
	}
	b.Line("return b")
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) clear() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment("Clear resets every property to the state of a new builder."))
	b.Line("func (b *%s) Clear() *%s {", dt.Builder, dt.Builder)
	if dt.HasScalars() {
		b.Line("defaults := %s", f.fresh())
	}
	for _, c := range f.codes {
		b.Add(c.Clear())
	}
	b.Line("return b")
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) build() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Add(excerpt.Comment(fmt.Sprintf("Build returns a %s holding the properties set on b. It fails with an error\n"+
		"wrapping builderkit.ErrIncompleteBuild, naming every required property left\n"+
		"unset. A builder obtained from a partial value builds partial values.", dt.Type.Name)))
	b.Line("func (b *%s) Build() (%s, error) {", dt.Builder, dt.Type)
	b.Line("if b.partial {")
	b.Line("return b.BuildPartial(), nil")
	b.Line("}")
	if required := dt.Required(); len(required) > 0 {
		b.Line("var missing []string")
		for _, p := range required {
			c := dt.EnumConst(p)
			b.Line("if b.unset[%s] {", c)
			b.Line("missing = append(missing, %s.String())", c)
			b.Line("}")
		}
		b.Line("if len(missing) > 0 {")
		b.Line("return nil, %s(%q, missing...)", property.Kit("Incomplete"), dt.Type.Name)
		b.Line("}")
	}
	b.Line("return %s{b.snapshot()}, nil", dt.ValueType)
	b.Line("}").Blank()

	b.Add(excerpt.Comment("MustBuild is like Build but panics when Build fails."))
	b.Line("func (b *%s) MustBuild() %s {", dt.Builder, dt.Type)
	b.Line("value, err := b.Build()")
	b.Line("if err != nil {")
	b.Line("panic(err)")
	b.Line("}")
	b.Line("return value")
	b.Line("}").Blank()

	b.Add(excerpt.Comment(fmt.Sprintf("BuildPartial returns a %s holding the properties set on b without checking\n"+
		"that required properties are set; their accessors panic with\n"+
		"builderkit.ErrNotSet instead. Partial values are meant for tests, which can\n"+
		"then set only the properties the code under test reads.", dt.Type.Name)))
	b.Line("func (b *%s) BuildPartial() %s {", dt.Builder, dt.Type)
	b.Line("return %s{b.snapshot()}", dt.PartialType)
	b.Line("}").Blank()
	return b.Build()
}

func (f *file) snapshot() excerpt.Excerpt {
	dt := f.dt
	var b excerpt.Builder
	b.Line("func (b *%s) snapshot() %s {", dt.Builder, dt.DataType)
	b.Line("return %s{", dt.DataType)
	for _, c := range f.codes {
		b.Add(c.Snapshot())
	}
	b.Line("unset: b.unset,")
	b.Line("}")
	b.Line("}").Blank()
	return b.Build()
}
