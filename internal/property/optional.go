package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/model"
)

// optional is a value that may be absent, stored behind a pointer that is nil
// while absent.
type optional struct {
	common
}

func (c optional) stored() model.TypeRef { return model.Pointer(c.p.Type) }

func (c optional) setter() string { return "Set" + c.p.CapitalizedName }

func (c optional) MethodNames() []string {
	n := c.p.CapitalizedName
	return []string{c.setter(), "SetNullable" + n, "Map" + n, "Clear" + n, c.p.GetterName}
}

func (c optional) Field() excerpt.Excerpt {
	return c.valueField(c.stored())
}

func (c optional) Init() excerpt.Excerpt { return excerpt.Empty }

func (c optional) Methods() excerpt.Excerpt {
	name, t, n := c.p.Name, c.p.Type, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("%s sets the value to be returned by %s.", c.setter(), c.getter()))
	b.Add(c.mutator(c.setter(), excerpt.F("%s %s", name, t),
		c.nilCheck(t, name, c.setter()),
		excerpt.F("b.%s = &%s\n", name, name),
		returnBuilder,
	))

	b.Add(c.doc("SetNullable%s sets the value to be returned by %s, or clears it when %s is nil.", n, c.getter(), name))
	b.Add(c.mutator("SetNullable"+n, excerpt.F("%s %s", name, c.stored()),
		excerpt.F("if %s == nil {\nreturn b.Clear%s()\n}\n", name, n),
		excerpt.F("return b.%s(*%s)\n", c.setter(), name),
	))

	b.Add(c.doc("Map%s replaces the value to be returned by %s, if present, with the result of applying fn to it.", n, c.getter()))
	b.Add(c.mutator("Map"+n, excerpt.F("fn func(%s) %s", t, t),
		c.fnCheck("Map"+n),
		excerpt.F("if b.%s != nil {\nb.%s(fn(*b.%s))\n}\n", name, c.setter(), name),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s makes the value to be returned by %s absent.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		excerpt.F("b.%s = nil\n", name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns the value that will be returned by %s and whether it is present.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("(%s %s, ok bool)", name, t),
		excerpt.F("if b.%s == nil {\nreturn %s, false\n}\n", name, name),
		excerpt.F("return *b.%s, true\n", name),
	))
	return b.Build()
}

func (c optional) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("if v, ok := value.%s(); ok {\nb.%s(v)\n}\n", c.p.GetterName, c.setter())
}

func (c optional) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("if template.%s != nil {\nb.%s(*template.%s)\n}\n", c.p.Name, c.setter(), c.p.Name)
}

func (c optional) Clear() excerpt.Excerpt {
	return excerpt.F("b.%s = nil\n", c.p.Name)
}

func (c optional) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s(b.%s),\n", c.p.Name, Kit("ClonePtr"), c.p.Name)
}

func (c optional) ValueField() excerpt.Excerpt {
	return c.valueField(c.stored())
}

func (c optional) ValueAccessor() excerpt.Excerpt {
	name := c.p.Name
	return c.dataFn(c.p.GetterName, excerpt.F("(%s %s, ok bool)", name, c.p.Type),
		excerpt.F("if d.%s == nil {\nreturn %s, false\n}\n", name, name),
		excerpt.F("return *d.%s, true\n", name),
	)
}

func (c optional) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(excerpt.F("(%s, bool)", c.p.Type))
}

func (c optional) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = %s(d.%s)\n", c.p.Name, Kit("ClonePtr"), c.p.Name)
}

func (c optional) Equal() excerpt.Excerpt {
	return c.equalBy(c.p.ElemComparable(c.p.Type), Kit("EqualPtr"))
}

func (c optional) Hash() excerpt.Excerpt {
	if !c.p.ElemComparable(c.p.Type) {
		return excerpt.Empty
	}
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfPtr"), c.p.Name)
}

func (c optional) Format() excerpt.Excerpt {
	return excerpt.F("if d.%s != nil {\n%s}\n", c.p.Name, c.formatPart("*d."+c.p.Name))
}

func (c optional) JSONField() excerpt.Excerpt {
	return c.jsonField(c.stored(), true)
}

func (c optional) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
