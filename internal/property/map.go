package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/model"
)

// mapKind associates keys with single values.
type mapKind struct {
	common
	key, value model.TypeRef
}

func (c mapKind) MethodNames() []string {
	n := c.p.CapitalizedName
	return []string{"Put" + n, "PutAll" + n, "Remove" + n, "Mutate" + n, "Clear" + n, c.p.GetterName}
}

func (c mapKind) Field() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c mapKind) Init() excerpt.Excerpt {
	return excerpt.F("%s: %s{},\n", c.p.Name, c.p.Type)
}

func (c mapKind) Methods() excerpt.Excerpt {
	name, n := c.p.Name, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("Put%s associates key with value in the map to be returned by %s, replacing any previous value.", n, c.getter()))
	b.Add(c.mutator("Put"+n, excerpt.F("key %s, value %s", c.key, c.value),
		c.nilCheck(c.key, "key", "Put"+n),
		c.nilCheck(c.value, "value", "Put"+n),
		excerpt.F("b.%s[key] = value\n", name),
		returnBuilder,
	))

	b.Add(c.doc("PutAll%s copies every entry of %s into the map to be returned by %s.", n, name, c.getter()))
	b.Add(c.mutator("PutAll"+n, excerpt.F("%s %s", name, c.p.Type),
		excerpt.F("for k, v := range %s {\nb.Put%s(k, v)\n}\n", name, n),
		returnBuilder,
	))

	b.Add(c.doc("Remove%s removes the entry for key from the map to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Remove"+n, excerpt.F("key %s", c.key),
		c.nilCheck(c.key, "key", "Remove"+n),
		excerpt.F("delete(b.%s, key)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Mutate%s calls fn with the map to be returned by %s, which fn may modify in place.", n, c.getter()))
	b.Add(c.mutator("Mutate"+n, excerpt.F("fn func(%s %s)", name, c.p.Type),
		c.fnCheck("Mutate"+n),
		excerpt.F("fn(b.%s)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s empties the map to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		clearMap("b."+name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns a live, read-only view of the map to be returned by %s.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("%s[%s, %s]", Kit("MapView"), c.key, c.value),
		excerpt.F("return %s(&b.%s)\n", Kit("NewMapView"), name),
	))
	return b.Build()
}

func (c mapKind) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(value.%s())\n", c.p.CapitalizedName, c.p.GetterName)
}

func (c mapKind) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(template.%s)\n", c.p.CapitalizedName, c.p.Name)
}

func (c mapKind) Clear() excerpt.Excerpt {
	return excerpt.F("b.Clear%s()\n", c.p.CapitalizedName)
}

func (c mapKind) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s,\n", c.p.Name, cloneMap("b."+c.p.Name))
}

func (c mapKind) ValueField() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c mapKind) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.p.Type,
		excerpt.F("return %s\n", cloneMap("d."+c.p.Name)))
}

func (c mapKind) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.p.Type)
}

func (c mapKind) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = %s\n", c.p.Name, cloneMap("d."+c.p.Name))
}

func (c mapKind) Equal() excerpt.Excerpt {
	return c.equalBy(c.p.ElemComparable(c.value), equalMaps())
}

func (c mapKind) Hash() excerpt.Excerpt {
	if !c.p.ElemComparable(c.value) {
		return excerpt.F("h.Mix(%s(len(d.%s)))\n", Kit("OfLen"), c.p.Name)
	}
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfMap"), c.p.Name)
}

func (c mapKind) Format() excerpt.Excerpt {
	return c.formatPart("d." + c.p.Name)
}

func (c mapKind) JSONField() excerpt.Excerpt {
	return c.jsonField(c.p.Type, false)
}

func (c mapKind) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
