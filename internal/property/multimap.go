package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// multimap associates keys with ordered lists of values. A key is present
// only while at least one value is bound to it.
type multimap struct {
	common
	key, value model.TypeRef
}

func (c multimap) removable() bool { return c.p.ElemComparable(c.value) }

func (c multimap) MethodNames() []string {
	n := c.p.CapitalizedName
	names := []string{"Put" + n, "PutAll" + n, "RemoveAll" + n, "Mutate" + n, "Clear" + n, c.p.GetterName}
	if c.removable() {
		names = append(names, "Remove"+n)
	}
	return names
}

func (c multimap) Field() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c multimap) Init() excerpt.Excerpt {
	return excerpt.F("%s: %s{},\n", c.p.Name, c.p.Type)
}

func (c multimap) Methods() excerpt.Excerpt {
	name, n := c.p.Name, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("Put%s appends values to those bound to key in the multimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Put"+n, excerpt.F("key %s, value ...%s", c.key, c.value),
		c.nilCheck(c.key, "key", "Put"+n),
		c.nilCheckEach(c.value, "value", "Put"+n),
		excerpt.F("if len(value) == 0 {\nreturn b\n}\n"),
		excerpt.F("b.%s[key] = append(b.%s[key], value...)\n", name, name),
		returnBuilder,
	))

	b.Add(c.doc("PutAll%s appends every entry of %s to the multimap to be returned by %s.", n, name, c.getter()))
	b.Add(c.mutator("PutAll"+n, excerpt.F("%s %s", name, c.p.Type),
		excerpt.F("for k, values := range %s {\nb.Put%s(k, values...)\n}\n", name, n),
		returnBuilder,
	))

	if c.removable() {
		b.Add(c.doc("Remove%s removes the first occurrence of value from those bound to key in the multimap to be returned by %s.", n, c.getter()))
		store := excerpt.F("if len(values) == 0 {\ndelete(b.%s, key)\n} else {\nb.%s[key] = values\n}\n", name, name)
		b.Add(c.mutator("Remove"+n, excerpt.F("key %s, value %s", c.key, c.value),
			c.nilCheck(c.key, "key", "Remove"+n),
			c.nilCheck(c.value, "value", "Remove"+n),
			excerpt.F("values := b.%s[key]\n", name),
			excerpt.If(feature.GoSlicesMaps,
				excerpt.F("if i := %s(values, value); i >= 0 {\nvalues = %s(values, i, i+1)\n%s}\n",
					slicesIndex, slicesDelete, store),
				excerpt.F("for i, v := range values {\nif v == value {\nvalues = append(values[:i], values[i+1:]...)\n%sbreak\n}\n}\n",
					store),
			),
			returnBuilder,
		))
	}

	b.Add(c.doc("RemoveAll%s removes every value bound to key in the multimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("RemoveAll"+n, excerpt.F("key %s", c.key),
		c.nilCheck(c.key, "key", "RemoveAll"+n),
		excerpt.F("delete(b.%s, key)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Mutate%s calls fn with the multimap to be returned by %s, which fn may modify in place.", n, c.getter()))
	b.Add(c.mutator("Mutate"+n, excerpt.F("fn func(%s %s)", name, c.p.Type),
		c.fnCheck("Mutate"+n),
		excerpt.F("fn(b.%s)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s empties the multimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		clearMap("b."+name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns a live, read-only view of the multimap to be returned by %s.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("%s[%s, %s]", Kit("MultimapView"), c.key, c.value),
		excerpt.F("return %s(&b.%s)\n", Kit("NewMultimapView"), name),
	))
	return b.Build()
}

func (c multimap) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(value.%s())\n", c.p.CapitalizedName, c.p.GetterName)
}

func (c multimap) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(template.%s)\n", c.p.CapitalizedName, c.p.Name)
}

func (c multimap) Clear() excerpt.Excerpt {
	return excerpt.F("b.Clear%s()\n", c.p.CapitalizedName)
}

func (c multimap) copyOf(src string) excerpt.Excerpt {
	return excerpt.F("%s(%s)", Kit("CopyMultimap"), src)
}

func (c multimap) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s,\n", c.p.Name, c.copyOf("b."+c.p.Name))
}

func (c multimap) ValueField() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c multimap) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.p.Type,
		excerpt.F("return %s\n", c.copyOf("d."+c.p.Name)))
}

func (c multimap) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.p.Type)
}

func (c multimap) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = %s\n", c.p.Name, c.copyOf("d."+c.p.Name))
}

func (c multimap) Equal() excerpt.Excerpt {
	return c.equalBy(c.p.ElemComparable(c.value), Kit("EqualMultimaps"))
}

func (c multimap) Hash() excerpt.Excerpt {
	if !c.p.ElemComparable(c.value) {
		return excerpt.F("h.Mix(%s(len(d.%s)))\n", Kit("OfLen"), c.p.Name)
	}
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfMultimap"), c.p.Name)
}

func (c multimap) Format() excerpt.Excerpt {
	return c.formatPart("d." + c.p.Name)
}

func (c multimap) JSONField() excerpt.Excerpt {
	return c.jsonField(c.p.Type, false)
}

func (c multimap) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
