package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/model"
)

// set is an unordered collection of distinct elements, stored as map[E]struct{}.
type set struct {
	common
	elem model.TypeRef
}

func (c set) adder() string { return "Add" + capitalize(c.p.SingularName) }

func (c set) remover() string { return "Remove" + capitalize(c.p.SingularName) }

func (c set) MethodNames() []string {
	n := c.p.CapitalizedName
	return []string{c.adder(), "AddAll" + n, c.remover(), "Mutate" + n, "Clear" + n, c.p.GetterName}
}

func (c set) Field() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c set) Init() excerpt.Excerpt {
	return excerpt.F("%s: %s{},\n", c.p.Name, c.p.Type)
}

func (c set) Methods() excerpt.Excerpt {
	name, one, n := c.p.Name, c.p.SingularName, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("%s adds elements to the set to be returned by %s.", c.adder(), c.getter()))
	b.Add(c.mutator(c.adder(), excerpt.F("%s ...%s", one, c.elem),
		c.nilCheckEach(c.elem, one, c.adder()),
		excerpt.F("for _, e := range %s {\nb.%s[e] = struct{}{}\n}\n", one, name),
		returnBuilder,
	))

	b.Add(c.doc("AddAll%s adds every element of %s to the set to be returned by %s.", n, name, c.getter()))
	b.Add(c.mutator("AddAll"+n, excerpt.F("%s []%s", name, c.elem),
		excerpt.F("return b.%s(%s...)\n", c.adder(), name),
	))

	b.Add(c.doc("%s removes %s from the set to be returned by %s.", c.remover(), one, c.getter()))
	b.Add(c.mutator(c.remover(), excerpt.F("%s %s", one, c.elem),
		c.nilCheck(c.elem, one, c.remover()),
		excerpt.F("delete(b.%s, %s)\n", name, one),
		returnBuilder,
	))

	b.Add(c.doc("Mutate%s calls fn with the set to be returned by %s, which fn may modify in place.", n, c.getter()))
	b.Add(c.mutator("Mutate"+n, excerpt.F("fn func(%s %s)", name, c.p.Type),
		c.fnCheck("Mutate"+n),
		excerpt.F("fn(b.%s)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s empties the set to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		clearMap("b."+name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns a live, read-only view of the set to be returned by %s.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("%s[%s]", Kit("SetView"), c.elem),
		excerpt.F("return %s(&b.%s)\n", Kit("NewSetView"), name),
	))
	return b.Build()
}

func (c set) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("for e := range value.%s() {\nb.%s(e)\n}\n", c.p.GetterName, c.adder())
}

func (c set) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("for e := range template.%s {\nb.%s(e)\n}\n", c.p.Name, c.adder())
}

func (c set) Clear() excerpt.Excerpt {
	return excerpt.F("b.Clear%s()\n", c.p.CapitalizedName)
}

func (c set) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s,\n", c.p.Name, cloneMap("b."+c.p.Name))
}

func (c set) ValueField() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c set) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.p.Type,
		excerpt.F("return %s\n", cloneMap("d."+c.p.Name)))
}

func (c set) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.p.Type)
}

func (c set) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = %s\n", c.p.Name, cloneMap("d."+c.p.Name))
}

func (c set) Equal() excerpt.Excerpt {
	return c.equalBy(true, equalMaps())
}

func (c set) Hash() excerpt.Excerpt {
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfSet"), c.p.Name)
}

func (c set) Format() excerpt.Excerpt {
	return c.formatPart(excerpt.F("%s(d.%s)", Kit("FormatSet"), c.p.Name))
}

func (c set) JSONField() excerpt.Excerpt {
	return c.jsonField(c.p.Type, false)
}

func (c set) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
