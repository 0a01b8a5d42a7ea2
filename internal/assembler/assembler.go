// Package assembler lays out the complete generated file of one datatype: the
// builder, its property methods, the value and partial types and the import
// block they need.
package assembler

import (
	"go/format"
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
	"github.com/cmmoran/valuegen/internal/property"
	"github.com/cmmoran/valuegen/internal/resolver"
)

// Header marks generated files.
const Header = "// Code generated by valuegen. DO NOT EDIT.\n"

var (
	sprintf     = model.Q("fmt", "Sprintf")
	joinStrings = model.Q("strings", "Join")
	jsonMarshal = model.Q("encoding/json", "Marshal")
	jsonIface   = model.Q("encoding/json", "Marshaler")
)

// file is the state of one generation run.
type file struct {
	dt    *model.Datatype
	env   feature.Environment
	codes []property.Code
}

// Generate renders the source file of dt. Schema errors are reported before
// anything is rendered; the output is gofmt formatted.
func Generate(dt *model.Datatype, env feature.Environment) ([]byte, error) {
	codes, err := property.Generate(dt, env)
	if err != nil {
		return nil, err
	}
	f := &file{dt: dt, env: env, codes: codes}
	if err = f.checkNames(); err != nil {
		return nil, err
	}

	body := f.body()
	table, err := resolver.NewImportTable(dt.Package(), resolver.Collect(body, env), f.reserved()...)
	if err != nil {
		return nil, errors.Mark(err, model.ErrSchema)
	}

	src := Header + "\n" +
		"package " + dt.Type.Package() + "\n\n" +
		table.Decl() + "\n" +
		excerpt.Render(body, table.Context(env))
	out, err := format.Source([]byte(src))
	if err != nil {
		slog.With("type", dt.Type.String(), "source", src).Debug("unformatted source")
		return nil, errors.Wrapf(err, "format generated source of %s", dt.Type)
	}
	slog.With("type", dt.Type.String(), "features", env.String(), "imports", len(table.Imports())).Debug("generated")
	return out, nil
}

// reserved lists identifiers no import may be spelled with: locals of the
// generated bodies, parameters named after properties and the property enum.
func (f *file) reserved() []string {
	out := slices.Clone(property.Locals)
	for _, p := range f.dt.Properties {
		out = append(out, p.Name, p.SingularName, f.dt.EnumConst(p).Name)
	}
	return append(out, f.dt.EnumCount().Name, f.enumNames())
}

func (f *file) enumNames() string {
	return f.dt.PropertyEnum.Name + "Names"
}

var (
	builderMethods = []string{"MergeFrom", "MergeFromBuilder", "Clear", "Build", "MustBuild", "BuildPartial", "snapshot"}
	valueMethods   = []string{"Equal", "Hash", "String", "ToBuilder", "MarshalJSON", "equal", "format", "copyTo"}
)

// checkNames rejects properties whose methods collide with each other or with
// the fixed methods of the builder and value types.
func (f *file) checkNames() error {
	seen := map[string]string{}
	for _, m := range builderMethods {
		seen[m] = f.dt.Builder.Name
	}
	getters := map[string]bool{}
	for _, m := range valueMethods {
		getters[m] = true
	}
	for _, c := range f.codes {
		p := c.Property()
		if getters[p.GetterName] {
			return model.SchemaHintf("rename the property or give it another getter",
				"%s.%s: getter %s collides with a generated method", f.dt.Type.Name, p.Name, p.GetterName)
		}
		getters[p.GetterName] = true
		for _, m := range c.MethodNames() {
			if owner, ok := seen[m]; ok {
				return model.Schemaf("%s.%s: builder method %s already declared by %s", f.dt.Type.Name, p.Name, m, owner)
			}
			seen[m] = p.Name
		}
	}
	return nil
}

// fresh is an expression returning a new builder.
func (f *file) fresh() excerpt.Excerpt {
	if f.dt.Factory.IsConstructor() {
		return excerpt.F("%s()", f.dt.Constructor)
	}
	return excerpt.F("%s()", f.dt.Type.Sibling(f.dt.Factory.Func))
}

func (f *file) body() excerpt.Excerpt {
	var b excerpt.Builder
	if !f.dt.InterfaceBacked {
		b.Add(f.valueInterface())
	}
	b.Add(f.builderType(), f.constructor(), f.from())
	for _, c := range f.codes {
		b.Add(c.Methods())
	}
	b.Add(f.mergeFrom(), f.mergeFromBuilder(), f.clear(), f.build(), f.snapshot())
	b.Add(f.propertyEnum(), f.rebuildable(), f.data(), f.variant(f.dt.ValueType, false), f.variant(f.dt.PartialType, true))
	b.Add(f.assertions())
	return b.Build()
}
