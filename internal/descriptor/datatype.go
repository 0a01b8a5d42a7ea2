package descriptor

import (
	"go/token"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/valuegen/internal/model"
)

// datatype validates ts and builds its model.
func (r *resolver) datatype(ts TypeSpec) (*model.Datatype, error) {
	if !token.IsIdentifier(ts.Name) || !token.IsExported(ts.Name) {
		return nil, model.SchemaHintf("value types are named with exported identifiers",
			"type %q is not an exported Go identifier", ts.Name)
	}
	builder := ts.Builder
	if builder == "" {
		builder = ts.Name + "Builder"
	}
	if !token.IsIdentifier(builder) {
		return nil, model.Schemaf("%s: builder %q is not a Go identifier", ts.Name, builder)
	}
	extensible := ts.Extensible == nil || *ts.Extensible
	lower := unexported(ts.Name)

	dt := &model.Datatype{
		Type:                r.local(ts.Name),
		Builder:             r.local(builder),
		ValueType:           r.local(lower + "Value"),
		PartialType:         r.local(lower + "Partial"),
		DataType:            r.local(lower + "Data"),
		Rebuildable:         r.local(lower + "Rebuildable"),
		PropertyEnum:        r.local(lower + "Property"),
		Factory:             model.BuilderFactory{Func: ts.Factory},
		Extensible:          extensible,
		InterfaceBacked:     ts.Interface,
		BuilderSerializable: ts.Serializable,
		Doc:                 strings.TrimSpace(ts.Doc),
	}
	if extensible {
		dt.Constructor = r.local("New" + exported(builder))
		dt.From = r.local(exported(builder) + "From")
	} else {
		dt.Constructor = r.local("new" + exported(builder))
		dt.From = r.local(unexported(builder) + "From")
	}
	if ts.Factory != "" && !token.IsIdentifier(ts.Factory) {
		return nil, model.Schemaf("%s: factory %q is not a Go identifier", ts.Name, ts.Factory)
	}
	if len(ts.Properties) == 0 {
		return nil, model.Schemaf("%s: no properties", ts.Name)
	}

	seen := map[string]string{}
	claim := func(name, owner string) error {
		if prev, ok := seen[name]; ok {
			return model.Schemaf("%s: %s and %s are both named %s", ts.Name, prev, owner, name)
		}
		seen[name] = owner
		return nil
	}
	for _, ps := range ts.Properties {
		p, err := r.property(ps)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", ts.Name, ps.Name)
		}
		if err = claim(p.Name, "property "+ps.Name); err != nil {
			return nil, err
		}
		if p.SingularName != p.Name {
			if err = claim(p.SingularName, "the elements of "+ps.Name); err != nil {
				return nil, err
			}
		}
		dt.Properties = append(dt.Properties, p)
	}
	return dt, nil
}

// property validates ps and builds its model.
func (r *resolver) property(ps PropertySpec) (*model.Property, error) {
	name := unexported(ps.Name)
	if why := checkIdent(name); why != "" {
		return nil, model.SchemaHintf("rename the property", "property name %q %s", name, why)
	}
	if ps.Type == "" {
		return nil, model.Schemaf("no type")
	}
	t, err := r.parseType(ps.Type)
	if err != nil {
		return nil, err
	}
	p := &model.Property{
		Name:            name,
		CapitalizedName: exported(name),
		AllCapsName:     allCaps(name),
		SingularName:    name,
		GetterName:      ps.Getter,
		Type:            t,
		Doc:             strings.TrimSpace(ps.Doc),
		Nillable:        ps.Nillable,
		Comparable:      ps.Comparable,
	}
	if p.GetterName == "" {
		p.GetterName = p.CapitalizedName
	}
	if !token.IsIdentifier(p.GetterName) || !token.IsExported(p.GetterName) {
		return nil, model.Schemaf("getter %q is not an exported Go identifier", p.GetterName)
	}

	if p.Kind, err = kindOf(ps.Kind, t); err != nil {
		return nil, err
	}
	switch p.Kind {
	case model.KindList, model.KindSet:
		p.SingularName = ps.Singular
		if p.SingularName == "" {
			p.SingularName = singular(name)
		}
		if why := checkIdent(p.SingularName); why != "" {
			return nil, model.SchemaHintf("set singular to another name",
				"element name %q %s", p.SingularName, why)
		}
	case model.KindBiMap:
		if t.Kind() == model.TypeMap {
			p.BiMap = &model.BiMapParams{Key: t.Key(), Value: t.Elem()}
		}
	}
	if ps.Singular != "" && p.SingularName != ps.Singular {
		return nil, model.Schemaf("singular only applies to list and set properties")
	}

	if ps.Default != "" {
		if p.Kind != model.KindScalar {
			return nil, model.Schemaf("default only applies to scalar properties, not %s", p.Kind)
		}
		if p.Default, err = r.parseExpr(ps.Default); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// kindOf returns the declared kind, or infers it from the shape of t.
func kindOf(declared string, t model.TypeRef) (model.Kind, error) {
	if declared != "" {
		k, ok := model.ParseKind(declared)
		if !ok {
			return model.KindInvalid, model.SchemaHintf(
				"use one of scalar, optional, list, set, map, multimap or bimap",
				"unknown kind %q", declared)
		}
		return k, nil
	}
	switch {
	case t.Kind() == model.TypeSlice:
		return model.KindList, nil
	case t.IsSet():
		return model.KindSet, nil
	case t.IsMultimap():
		return model.KindMultimap, nil
	case t.Kind() == model.TypeMap:
		return model.KindMap, nil
	}
	return model.KindScalar, nil
}
