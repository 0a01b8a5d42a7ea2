package property

import (
	"github.com/cmmoran/valuegen/internal/excerpt"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// bimap associates unique keys with unique values. The builder stores it in a
// builderkit.BiMapStore: a gods hash bidimap when the target module depends on
// gods, two ordinary maps otherwise. The choice is made once, here, so every
// method of the property agrees on it.
type bimap struct {
	common
	key, value model.TypeRef
	store      model.TypeRef // concrete storage type, a pointer
	newStore   model.QualifiedName
}

func newBiMap(c common, key, value model.TypeRef) bimap {
	storeName, ctor := Kit("BiMap"), Kit("NewBiMap")
	if c.env.Enabled(feature.GodsBiMap) {
		storeName, ctor = model.Q(GodsKitPath, "Map"), model.Q(GodsKitPath, "New")
	}
	return bimap{
		common:   c,
		key:      key,
		value:    value,
		store:    model.Pointer(model.Named(storeName, key, value)),
		newStore: ctor,
	}
}

func (c bimap) MethodNames() []string {
	n := c.p.CapitalizedName
	return []string{"Put" + n, "ForcePut" + n, "PutAll" + n, "RemoveKeyFrom" + n, "RemoveValueFrom" + n,
		"Mutate" + n, "Clear" + n, c.p.GetterName}
}

func (c bimap) mapType() model.TypeRef { return model.Map(c.key, c.value) }

func (c bimap) Field() excerpt.Excerpt {
	return c.valueField(c.store)
}

func (c bimap) Init() excerpt.Excerpt {
	return excerpt.F("%s: %s[%s, %s](),\n", c.p.Name, c.newStore, c.key, c.value)
}

func (c bimap) Methods() excerpt.Excerpt {
	name, n := c.p.Name, c.p.CapitalizedName
	var b excerpt.Builder
	b.Add(c.doc("Put%s binds key to value in the bimap to be returned by %s, replacing the previous value of key.\n"+
		"It panics with builderkit.ErrDuplicateValue, leaving the bimap unchanged, when value is\n"+
		"already bound to a different key; use ForcePut%s to rebind it.", n, c.getter(), n))
	b.Add(c.mutator("Put"+n, excerpt.F("key %s, value %s", c.key, c.value),
		c.nilCheck(c.key, "key", "Put"+n),
		c.nilCheck(c.value, "value", "Put"+n),
		excerpt.F("if bound, ok := b.%s.GetKey(value); ok && bound != key {\npanic(%s(%q, key, value, bound))\n}\n",
			name, Kit("DuplicateValue"), c.method("Put"+n)),
		excerpt.F("return b.ForcePut%s(key, value)\n", n),
	))

	b.Add(c.doc("ForcePut%s binds key to value in the bimap to be returned by %s, dropping any\n"+
		"previous binding of key and of value.", n, c.getter()))
	b.Add(c.mutator("ForcePut"+n, excerpt.F("key %s, value %s", c.key, c.value),
		c.nilCheck(c.key, "key", "ForcePut"+n),
		c.nilCheck(c.value, "value", "ForcePut"+n),
		excerpt.F("b.%s.ForcePut(key, value)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("PutAll%s binds every entry of %s in the bimap to be returned by %s.\n"+
		"It panics with builderkit.ErrDuplicateValue, leaving the bimap unchanged, when a value\n"+
		"would end up bound to two keys.", n, name, c.getter()))
	b.Add(c.mutator("PutAll"+n, excerpt.F("%s %s", name, c.mapType()),
		c.nilCheckEntries(name, "PutAll"+n),
		excerpt.F("if err := %s[%s, %s](b.%s, %q, %s); err != nil {\npanic(err)\n}\n",
			Kit("PutAll"), c.key, c.value, name, c.method("PutAll"+n), name),
		returnBuilder,
	))

	b.Add(c.doc("RemoveKeyFrom%s removes the binding of key from the bimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("RemoveKeyFrom"+n, excerpt.F("key %s", c.key),
		c.nilCheck(c.key, "key", "RemoveKeyFrom"+n),
		excerpt.F("b.%s.RemoveKey(key)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("RemoveValueFrom%s removes the binding of value from the bimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("RemoveValueFrom"+n, excerpt.F("value %s", c.value),
		c.nilCheck(c.value, "value", "RemoveValueFrom"+n),
		excerpt.F("b.%s.RemoveValue(value)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Mutate%s calls fn with the bimap to be returned by %s, which fn may modify in place.\n"+
		"The bimap keeps keys and values unique on its own.", n, c.getter()))
	b.Add(c.mutator("Mutate"+n, excerpt.F("fn func(%s %s[%s, %s])", name, Kit("BiMapStore"), c.key, c.value),
		c.fnCheck("Mutate"+n),
		excerpt.F("fn(b.%s)\n", name),
		returnBuilder,
	))

	b.Add(c.doc("Clear%s empties the bimap to be returned by %s.", n, c.getter()))
	b.Add(c.mutator("Clear"+n, "",
		excerpt.F("b.%s.Clear()\n", name),
		returnBuilder,
	))

	b.Add(c.doc("%s returns a live, read-only view of the bimap to be returned by %s.", c.p.GetterName, c.getter()))
	b.Add(c.fn(c.p.GetterName, "", excerpt.F("%s[%s, %s]", Kit("BiMapView"), c.key, c.value),
		excerpt.F("return %s[%s, %s](b.%s)\n", Kit("NewBiMapView"), c.key, c.value, name),
	))
	return b.Build()
}

func (c bimap) MergeFromValue() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(value.%s())\n", c.p.CapitalizedName, c.p.GetterName)
}

func (c bimap) MergeFromBuilder() excerpt.Excerpt {
	return excerpt.F("b.PutAll%s(%s[%s, %s](template.%s))\n",
		c.p.CapitalizedName, Kit("Snapshot"), c.key, c.value, c.p.Name)
}

// nilCheckEntries rejects nil keys and values of the map argument arg.
func (c bimap) nilCheckEntries(arg, method string) excerpt.Excerpt {
	keys, values := c.p.RejectsNil(c.key), c.p.RejectsNil(c.value)
	if !keys && !values {
		return excerpt.Empty
	}
	vars, cond := "k, v", "k == nil || v == nil"
	switch {
	case !values:
		vars, cond = "k", "k == nil"
	case !keys:
		vars, cond = "_, v", "v == nil"
	}
	return excerpt.F("for %s := range %s {\nif %s {\npanic(%s(%q, %q))\n}\n}\n",
		vars, arg, cond, Kit("NilArgument"), c.method(method), arg)
}

func (c bimap) Clear() excerpt.Excerpt {
	return excerpt.F("b.Clear%s()\n", c.p.CapitalizedName)
}

func (c bimap) Snapshot() excerpt.Excerpt {
	return excerpt.F("%s: %s[%s, %s](b.%s),\n", c.p.Name, Kit("Snapshot"), c.key, c.value, c.p.Name)
}

func (c bimap) ValueField() excerpt.Excerpt {
	return c.valueField(c.mapType())
}

func (c bimap) ValueAccessor() excerpt.Excerpt {
	return c.dataFn(c.p.GetterName, c.mapType(),
		excerpt.F("return %s\n", cloneMap("d."+c.p.Name)))
}

func (c bimap) InterfaceMethod() excerpt.Excerpt {
	return c.interfaceMethod(c.mapType())
}

func (c bimap) CopyToBuilder() excerpt.Excerpt {
	return excerpt.F("b.%s.Clear()\nfor k, v := range d.%s {\nb.%s.ForcePut(k, v)\n}\n", c.p.Name, c.p.Name, c.p.Name)
}

func (c bimap) Equal() excerpt.Excerpt {
	return c.equalBy(true, equalMaps())
}

func (c bimap) Hash() excerpt.Excerpt {
	return excerpt.F("h.Mix(%s(d.%s))\n", Kit("OfMap"), c.p.Name)
}

func (c bimap) Format() excerpt.Excerpt {
	return c.formatPart("d." + c.p.Name)
}

func (c bimap) JSONField() excerpt.Excerpt {
	return c.jsonField(c.mapType(), false)
}

func (c bimap) JSONValue() excerpt.Excerpt {
	return c.jsonValue()
}
