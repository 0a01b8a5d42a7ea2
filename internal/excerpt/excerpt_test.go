package excerpt

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// pkgContext qualifies names from other packages with their package name and
// leaves names from "example.com/local" bare.
type pkgContext struct {
	features map[feature.Name]bool
}

func (c pkgContext) Qualify(q model.QualifiedName) string {
	if q.IsPredeclared() || q.Path == "example.com/local" {
		return q.Name
	}
	return q.Package() + "." + q.Name
}

func (c pkgContext) Enabled(n feature.Name) bool { return c.features[n] }

var (
	duration = model.Q("time", "Duration")
	person   = model.Q("example.com/local", "Person")
)

func TestSeqCanonicalForm(t *testing.T) {
	a := Seq(Literal("a"), Seq(Literal("b"), Empty), Literal("c"))
	assert.True(t, Equal(a, Literal("abc")))

	b := Seq(Literal("x "), Ref(duration), Seq(Literal(" "), Literal("y")))
	c := Seq(Seq(Literal("x"), Literal(" ")), Ref(duration), Literal(" y"))
	assert.True(t, Equal(b, c))
	assert.False(t, Equal(b, Literal("x time.Duration y")))

	assert.True(t, Equal(Seq(), Empty))
	assert.True(t, Equal(Seq(nil, Literal("")), Empty))
}

func TestIfCollapsesEqualBranches(t *testing.T) {
	e := If(feature.GoSlicesMaps, Literal("same"), Seq(Literal("sa"), Literal("me")))
	assert.True(t, Equal(e, Literal("same")))

	e = If(feature.GoSlicesMaps, Literal("new"), Literal("old"))
	assert.False(t, Equal(e, Literal("new")))
	assert.Equal(t, "new", Render(e, pkgContext{features: map[feature.Name]bool{feature.GoSlicesMaps: true}}))
	assert.Equal(t, "old", Render(e, pkgContext{}))
}

func TestType(t *testing.T) {
	typ := model.Map(model.Builtin("string"), model.Slice(model.Pointer(model.Named(person))))
	assert.Equal(t, "map[string][]*Person", Render(Type(typ), pkgContext{}))

	generic := model.Named(model.Q("example.com/pkg/box", "Box"), model.Named(duration), model.Array(3, model.Builtin("int")))
	assert.Equal(t, "box.Box[time.Duration, [3]int]", Render(Type(generic), pkgContext{}))
	assert.Equal(t, "map[int]struct{}", Render(Type(model.Map(model.Builtin("int"), model.EmptyStruct())), pkgContext{}))
}

func TestWalkFollowsFeatureSelection(t *testing.T) {
	bimap := model.Q("github.com/emirpasic/gods/maps/hashbidimap", "Map")
	e := Seq(
		F("var d %s\n", duration),
		If(feature.GodsBiMap, F("var m *%s\n", bimap), Literal("var m map[string]int\n")),
	)

	var seen []string
	Walk(e, func(feature.Name) bool { return false }, func(q model.QualifiedName) { seen = append(seen, q.String()) })
	assert.Equal(t, []string{"time.Duration"}, seen)

	seen = nil
	Walk(e, func(n feature.Name) bool { return n == feature.GodsBiMap }, func(q model.QualifiedName) { seen = append(seen, q.String()) })
	assert.Equal(t, []string{"time.Duration", bimap.String()}, seen)
}

func TestF(t *testing.T) {
	ctx := pkgContext{}
	tests := []struct {
		name   string
		format string
		args   []any
		want   string
	}{
		{"literal only", "return nil", nil, "return nil"},
		{"qualified name", "var d %s", []any{duration}, "var d time.Duration"},
		{"type", "x := make(%s)", []any{model.Slice(model.Named(person))}, "x := make([]Person)"},
		{"quoted", "panic(%q)", []any{"name"}, `panic("name")`},
		{"quoted name", "return %q", []any{person}, `return "Person"`},
		{"percent", "100%%", nil, "100%"},
		{"nested excerpt", "{%s}", []any{F("%s", duration)}, "{time.Duration}"},
		{"number", "x[%s]", []any{3}, "x[3]"},
		{"trailing percent", "a%", nil, "a%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(F(tt.format, tt.args...), ctx))
		})
	}
}

func TestFPanicsOnArgumentMismatch(t *testing.T) {
	assert.Panics(t, func() { F("%s %s", "a") })
	assert.Panics(t, func() { F("%s", "a", "b") })
	assert.Panics(t, func() { F("%d", 1) })
}

func TestBuilder(t *testing.T) {
	var b Builder
	b.Line("func f() %s {", duration).
		Line("\treturn 0").
		Line("}").
		Blank().
		Add(Comment("Doc line one.\n\nLine two."))
	want := "func f() time.Duration {\n\treturn 0\n}\n\n// Doc line one.\n//\n// Line two.\n"
	assert.Equal(t, want, Render(b.Build(), pkgContext{}))
}

func TestJoin(t *testing.T) {
	e := Join([]Excerpt{Ref(duration), Literal("int"), Ref(person)}, ", ")
	assert.Equal(t, "time.Duration, int, Person", Render(e, pkgContext{}))
	assert.True(t, Equal(Join(nil, ", "), Empty))
}

func TestJen(t *testing.T) {
	e := Jen(
		jen.Type().Id("personProperty").Int(),
		jen.Const().Id("personPropertyCount").Op("=").Lit(2),
	)
	got := Render(e, pkgContext{})
	require.Contains(t, got, "type personProperty int")
	assert.Contains(t, got, "const personPropertyCount = 2")
}

func TestExpr(t *testing.T) {
	expr := model.Expr{Parts: []model.ExprPart{
		{Text: "5 * "},
		{Ref: &model.QualifiedName{Path: "time", Name: "Second", PkgName: "time"}},
	}}
	assert.Equal(t, "5 * time.Second", Render(Expr(expr), pkgContext{}))
}
