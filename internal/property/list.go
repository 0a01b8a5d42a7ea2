package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// list is an ordered sequence of elements.
type list struct {
	common
	elem model.TypeRef
}

func (c list) adder() string { return "Add" + capitalize(c.p.SingularName) }

func (c list) removable() bool { return c.p.ElemComparable(c.elem) }

func (c list) MethodNames() []string {
	n := c.p.CapitalizedName
	names := []string{c.adder(), "AddAll" + n, "Mutate" + n, "Clear" + n, c.p.GetterName}
	if c.removable() {
		names = append(names, "Remove"+capitalize(c.p.SingularName))
	}
	return names
}

func (c list) Field() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c list) Init() excerpt.Excerpt {
	return excerpt.F("%s: %s{},\n", c.p.Name, c.p.Type)
}

func (c list) Methods() excerpt.Excerpt {
	name, one, n := c.p.Name, c.p.SingularName, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("%s appends elements to the list to be returned by %s.", c.adder(), c.getter()))
	b.Add(c.mutator(c.adder(), excerpt.F("%s ...%s", one, c.elem),
		c.nilCheckEach(c.elem, one, c.adder()),
		excerpt.F("b.%s = append(b.%s, %s...)\n", name, name, one),
		returnBuilder,
	))

	b.Add(c.doc("AddAll%s appends every element of %s to the list to be returned by %s.", n, name, c.getter()))
	b.Add(c.mutator("AddAll"+n, excerpt.F("%s %s", name, c.p.Type),
		excerpt.F("return b.%s(%s...)\n", c.adder(), name),
	))

	if c.removable() {
		remover := "Remove" + capitalize(one)
		b.Add(c.doc("%s removes the first occurrence of %s from the list to be returned by %s.", remover, one, c.getter()))
		b.Add(c.mutator(remover, excerpt.F("%s %s", one, c.elem),
			c.nilCheck(c.elem, one, remover),
			excerpt.If(feature.GoSlicesMaps,
				excerpt.F("if i := %s(b.%s, %s); i >= 0 {\nb.%s = %s(b.%s, i, i+1)\n}\n",
					slicesIndex, name, one, name, slicesDelete, name),
				excerpt.F("for i, e := range b.%s {\nif e == %s {\nb.%s = append(b.%s[:i], b.%s[i+1:]...)\nbreak\n}\n}\n",
					name, one, name, name, name),
			),
			returnBuilder,
		))
	}

	b.Add(c.doc("Mutate%s calls fn with the list to be returned by %s, which fn may modify in place.", n, c.getter()))
	b.Add(c.mutator("Mutate"+n, excerpt.F("fn func(%s *%s)", name, c.p.Type),
		c.fnCheck("Mutate"+n),
		excerpt.F("fn(&b.%s)\n", name),
		excerpt.F("if b.%s == nil {\nb.%s = %s{}\n}\n", name, name, c.p.Type),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s empties the list to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		excerpt.If(feature.GoSlicesMaps, excerpt.F("clear(b.%s)\n", name), excerpt.Empty),
		excerpt.F("b.%s = b.%s[:0]\n", name, name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns a live, read-only view of the list to be returned by %s.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("%s[%s]", Kit("ListView"), c.elem),
		excerpt.F("return %s(&b.%s)\n", Kit("NewListView"), name),
	))
	return b.Build()
}

func (c list) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("b.AddAll%s(value.%s())\n", c.p.CapitalizedName, c.p.GetterName)
}

func (c list) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("b.AddAll%s(template.%s)\n", c.p.CapitalizedName, c.p.Name)
}

func (c list) Clear() excerpt.Excerpt {
	return excerpt.F("b.Clear%s()\n", c.p.CapitalizedName)
}

func (c list) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s,\n", c.p.Name, cloneSlice("b."+c.p.Name))
}

func (c list) ValueField() excerpt.Excerpt {
	return c.valueField(c.p.Type)
}

func (c list) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.p.Type,
		excerpt.F("return %s\n", cloneSlice("d."+c.p.Name)))
}

func (c list) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.p.Type)
}

func (c list) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s = %s\n", c.p.Name, cloneSlice("d."+c.p.Name))
}

func (c list) Equal() excerpt.Excerpt {
	return c.equalBy(c.p.ElemComparable(c.elem),
		excerpt.If(feature.GoSlicesMaps, excerpt.Ref(slicesEqual), excerpt.Ref(Kit("EqualSlices"))))
}

func (c list) Hash() excerpt.Excerpt {
	if !c.p.ElemComparable(c.elem) {
		return excerpt.F("h.Mix(%s(len(d.%s)))\n", Kit("OfLen"), c.p.Name)
	}
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfSlice"), c.p.Name)
}

func (c list) Format() excerpt.Excerpt {
	return c.formatPart("d." + c.p.Name)
}

func (c list) JSONField() excerpt.Excerpt {
	return c.jsonField(c.p.Type, false)
}

func (c list) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
