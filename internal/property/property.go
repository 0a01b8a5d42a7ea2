// Package property generates the builder code of one property. Each kind of
// property has its own generator; all of them contribute the same set of
// fragments, which the assembler stitches into the builder, the value types and
// their equality, hashing and formatting.
//
// Fragments follow fixed conventions so they can be spliced into shared
// function bodies: the builder receiver is b, the value being merged is value,
// the builder being merged is template, the snapshot receiver is d and the
// snapshot compared against is other. Hash fragments mix into h; format
// fragments append to parts; clear fragments may read the fresh builder
// defaults.
package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// Code is the generated code of one property.
type Code interface {
	Property() *model.Property

	// Field declares the builder field.
	Field() excerpt.Excerpt
	// Init is the keyed element initializing the field in a fresh builder, if any.
	Init() excerpt.Excerpt
	// Methods are the builder mutators and accessor.
	Methods() excerpt.Excerpt
	// MethodNames lists the builder methods Methods declares.
	MethodNames() []string
	// MergeFromValue adds the property of value to b.
	MergeFromValue() excerpt.Excerpt
	// MergeFromBuilder adds the property of template to b.
	MergeFromBuilder() excerpt.Excerpt
	// Clear resets the property of b.
	Clear() excerpt.Excerpt

	// Snapshot is the keyed element copying the builder field into the snapshot.
	Snapshot() excerpt.Excerpt
	// ValueField declares the snapshot field.
	ValueField() excerpt.Excerpt
	// ValueAccessor is the snapshot method implementing the value interface getter.
	ValueAccessor() excerpt.Excerpt
	// InterfaceMethod is the getter in a generated value interface.
	InterfaceMethod() excerpt.Excerpt
	// CopyToBuilder restores the property of d into the fresh builder b.
	CopyToBuilder() excerpt.Excerpt
	// Equal is a boolean expression comparing d and other.
	Equal() excerpt.Excerpt
	// Hash mixes the property of d into h, or is empty when it cannot be hashed.
	Hash() excerpt.Excerpt
	// Format appends the formatted property of d to parts.
	Format() excerpt.Excerpt
	// JSONField declares the property in the marshaled struct.
	JSONField() excerpt.Excerpt
	// JSONValue is the keyed element filling JSONField from d.
	JSONValue() excerpt.Excerpt

	sealed()
}

// For returns the generator of p. Kinds whose types do not have the shape the
// kind requires are schema errors.
func For(dt *model.Datatype, p *model.Property, env feature.Environment) (Code, error) {
	c := common{dt: dt, p: p, env: env}
	t := p.Type
	switch p.Kind {
	case model.KindScalar:
		return scalar{c}, nil
	case model.KindOptional:
		return optional{c}, nil
	case model.KindList:
		if t.Kind() != model.TypeSlice {
			return nil, c.shape("a slice type such as []string")
		}
		return list{common: c, elem: t.Elem()}, nil
	case model.KindSet:
		if !t.IsSet() {
			return nil, c.shape("a set type such as map[string]struct{}")
		}
		if err := c.comparableKey(t.Key()); err != nil {
			return nil, err
		}
		return set{common: c, elem: t.Key()}, nil
	case model.KindMap:
		if t.Kind() != model.TypeMap {
			return nil, c.shape("a map type such as map[string]int")
		}
		if err := c.comparableKey(t.Key()); err != nil {
			return nil, err
		}
		return mapKind{common: c, key: t.Key(), value: t.Elem()}, nil
	case model.KindMultimap:
		if !t.IsMultimap() {
			return nil, c.shape("a multimap type such as map[string][]int")
		}
		if err := c.comparableKey(t.Key()); err != nil {
			return nil, err
		}
		return multimap{common: c, key: t.Key(), value: t.Elem().Elem()}, nil
	case model.KindBiMap:
		key, value := t.Key(), t.Elem()
		if p.BiMap != nil {
			key, value = p.BiMap.Key, p.BiMap.Value
		} else if t.Kind() != model.TypeMap {
			return nil, c.shape("a map type such as map[int]string")
		}
		if err := c.comparableKey(key); err != nil {
			return nil, err
		}
		if !p.ElemComparable(value) {
			return nil, model.SchemaHintf("bimap values are looked up by value and must support ==",
				"%s.%s: bimap value type %s is not comparable", dt.Type.Name, p.Name, value)
		}
		return newBiMap(c, key, value), nil
	}
	return nil, model.Schemaf("%s.%s: no generator for kind %s", dt.Type.Name, p.Name, p.Kind)
}

// Generate returns the generators of every property of dt, in declaration order.
func Generate(dt *model.Datatype, env feature.Environment) ([]Code, error) {
	out := make([]Code, 0, len(dt.Properties))
	for _, p := range dt.Properties {
		c, err := For(dt, p, env)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
