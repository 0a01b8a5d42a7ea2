package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
)

// scalar is a plain value. Without a default it is required: Build fails until
// it is set. Its unset state lives in the builder's unset array.
type scalar struct {
	common
}

func (c scalar) Field() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c scalar) Init() excerpt.Excerpt {
	if c.p.Default.IsZero() {
		return excerpt.Empty
	}
	return excerpt.F("%s: %s,\n", c.p.Name, c.p.Default)
}

func (c scalar) setter() string { return "Set" + c.p.CapitalizedName }

func (c scalar) MethodNames() []string {
	return []string{c.setter(), "Map" + c.p.CapitalizedName, c.p.GetterName}
}

// requireSet panics when a required property is read before being set. recv
// is b or d.
func (c scalar) requireSet(recv string) excerpt.Excerpt {
	if !c.p.IsRequired() {
		return excerpt.Empty
	}
	return excerpt.F("if %s.unset[%s] {\npanic(%s(%q, %q))\n}\n",
		recv, c.enum(), Kit("NotSet"), c.dt.Type.Name, c.p.Name)
}

func (c scalar) Methods() excerpt.Excerpt {
	name, t := c.p.Name, c.p.Type
	mapName := "Map" + c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("%s sets the value to be returned by %s.", c.setter(), c.getter()))
	b.Add(c.mutator(c.setter(), excerpt.F("%s %s", name, t),
		c.nilCheck(t, name, c.setter()),
		excerpt.F("b.%s = %s\n", name, name),
		excerpt.F("b.unset[%s] = false\n", c.enum()),
		returnBuilder,
	))

	mapDoc := "%s replaces the value to be returned by %s with the result of applying fn to it."
	if c.p.IsRequired() {
		mapDoc += "\nIt panics with builderkit.ErrNotSet when the value has not been set."
	}
	b.Add(c.doc(mapDoc, mapName, c.getter()))
	b.Add(c.mutator(mapName, excerpt.F("fn func(%s) %s", t, t),
		c.fnCheck(mapName),
		c.requireSet("b"),
		excerpt.F("return b.%s(fn(b.%s))\n", c.setter(), name),
	))

	getDoc := "%s returns the value that will be returned by %s."
	if c.p.IsRequired() {
		getDoc += "\nIt panics with builderkit.ErrNotSet when the value has not been set."
	}
	b.Add(c.doc(getDoc, c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", t,
		c.requireSet("b"),
		excerpt.F("return b.%s\n", name),
	))
	return b.Build()
}

func (c scalar) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("b.%s(value.%s())\n", c.setter(), c.p.GetterName)
}

func (c scalar) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("if !template.unset[%s] {\nb.%s(template.%s)\n}\n", c.enum(), c.setter(), c.p.Name)
}

func (c scalar) Clear() excerpt.Excerpt {
	return excerpt.F("b.%s = defaults.%s\nb.unset[%s] = defaults.unset[%s]\n", c.p.Name, c.p.Name, c.enum(), c.enum())
}

func (c scalar) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: b.%s,\n", c.p.Name, c.p.Name)
}

func (c scalar) ValueField() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c scalar) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.p.Type,
		c.requireSet("d"),
		excerpt.F("return d.%s\n", c.p.Name),
	)
}

func (c scalar) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.p.Type)
}

func (c scalar) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = d.%s\nb.unset[%s] = d.unset[%s]\n", c.p.Name, c.p.Name, c.enum(), c.enum())
}

func (c scalar) Equal() excerpt.Excerpt {
	var eq excerpt.Excerpt
	if c.p.ElemComparable(c.p.Type) {
		eq = excerpt.F("d.%s == other.%s", c.p.Name, c.p.Name)
	} else {
		eq = excerpt.F("%s(d.%s, other.%s)", deepEqual, c.p.Name, c.p.Name)
	}
	if !c.p.IsRequired() {
		return eq
	}
	return excerpt.F("d.unset[%s] == other.unset[%s] && %s", c.enum(), c.enum(), eq)
}

func (c scalar) Hash() excerpt.Excerpt {
	if !c.p.ElemComparable(c.p.Type) {
		return excerpt.Empty
	}
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("Of"), c.p.Name)
}

func (c scalar) Format() excerpt.Excerpt {
	part := c.formatPart("d." + c.p.Name)
	if !c.p.IsRequired() {
		return part
	}
	return excerpt.F("if !d.unset[%s] {\n%s}\n", c.enum(), part)
}

func (c scalar) JSONField() excerpt.Excerpt {
	return c.jsonField(c.p.Type, false)
}

func (c scalar) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
