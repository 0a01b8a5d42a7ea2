// Package excerpt builds generated source as a tree of small immutable
// fragments whose final text depends on the file they are rendered into.
//
// A fragment is a literal, a reference to a qualified name, a sequence of
// fragments, or a choice between two fragments gated on a feature. References
// are spelled by the Context at render time, so the same tree renders correctly
// whatever imports the surrounding file ends up with.
package excerpt

import (
	"strconv"
	"strings"

	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// Context supplies everything rendering depends on.
type Context interface {
	// Qualify returns the spelling of q in the file being rendered.
	Qualify(q model.QualifiedName) string
	// Enabled reports whether a feature is available to the generated code.
	Enabled(n feature.Name) bool
}

// Excerpt is an immutable fragment of generated source. Excerpts built by this
// package are kept in a canonical form, so Equal is structural equality.
type Excerpt interface {
	render(b *strings.Builder, ctx Context)
	walk(enabled func(feature.Name) bool, fn func(model.QualifiedName))
}

type literal string

type ref model.QualifiedName

type seq []Excerpt

type cond struct {
	feature   feature.Name
	then, alt Excerpt
}

// Empty renders nothing.
var Empty Excerpt = literal("")

// Literal renders text verbatim.
func Literal(text string) Excerpt {
	return literal(text)
}

// Ref renders the shortest unambiguous spelling of q.
func Ref(q model.QualifiedName) Excerpt {
	return ref(q)
}

// Type renders a type expression, qualifying every name it mentions.
func Type(t model.TypeRef) Excerpt {
	switch t.Kind() {
	case model.TypeNamed:
		args := t.Args()
		if len(args) == 0 {
			return ref(t.Name())
		}
		parts := []Excerpt{ref(t.Name()), literal("[")}
		for i, a := range args {
			if i > 0 {
				parts = append(parts, literal(", "))
			}
			parts = append(parts, Type(a))
		}
		return Seq(append(parts, literal("]"))...)
	case model.TypePointer:
		return Seq(literal("*"), Type(t.Elem()))
	case model.TypeSlice:
		return Seq(literal("[]"), Type(t.Elem()))
	case model.TypeArray:
		return Seq(literal("["+strconv.Itoa(t.Len())+"]"), Type(t.Elem()))
	case model.TypeMap:
		return Seq(literal("map["), Type(t.Key()), literal("]"), Type(t.Elem()))
	case model.TypeEmptyStruct:
		return literal("struct{}")
	}
	return Empty
}

// Expr renders a Go expression whose references were resolved by the descriptor.
func Expr(e model.Expr) Excerpt {
	parts := make([]Excerpt, 0, len(e.Parts))
	for _, p := range e.Parts {
		if p.Ref != nil {
			parts = append(parts, ref(*p.Ref))
			continue
		}
		parts = append(parts, literal(p.Text))
	}
	return Seq(parts...)
}

// Seq concatenates parts. Nested sequences are flattened and adjacent literals
// merged; children carry their own whitespace.
func Seq(parts ...Excerpt) Excerpt {
	var out seq
	for _, p := range parts {
		switch p := p.(type) {
		case nil:
		case seq:
			for _, c := range p {
				out = appendPart(out, c)
			}
		default:
			out = appendPart(out, p)
		}
	}
	switch len(out) {
	case 0:
		return Empty
	case 1:
		return out[0]
	}
	return out
}

func appendPart(out seq, p Excerpt) seq {
	l, ok := p.(literal)
	if ok && l == "" {
		return out
	}
	if ok && len(out) > 0 {
		if prev, isLit := out[len(out)-1].(literal); isLit {
			out[len(out)-1] = prev + l
			return out
		}
	}
	return append(out, p)
}

// If renders then when the feature is enabled and otherwise when it is not.
func If(f feature.Name, then, otherwise Excerpt) Excerpt {
	if then == nil {
		then = Empty
	}
	if otherwise == nil {
		otherwise = Empty
	}
	if Equal(then, otherwise) {
		return then
	}
	return cond{feature: f, then: then, alt: otherwise}
}

func (l literal) render(b *strings.Builder, _ Context) { b.WriteString(string(l)) }

func (r ref) render(b *strings.Builder, ctx Context) {
	b.WriteString(ctx.Qualify(model.QualifiedName(r)))
}

func (s seq) render(b *strings.Builder, ctx Context) {
	for _, c := range s {
		c.render(b, ctx)
	}
}

func (c cond) render(b *strings.Builder, ctx Context) {
	if ctx.Enabled(c.feature) {
		c.then.render(b, ctx)
		return
	}
	c.alt.render(b, ctx)
}

func (literal) walk(func(feature.Name) bool, func(model.QualifiedName)) {}

func (r ref) walk(_ func(feature.Name) bool, fn func(model.QualifiedName)) {
	fn(model.QualifiedName(r))
}

func (s seq) walk(enabled func(feature.Name) bool, fn func(model.QualifiedName)) {
	for _, c := range s {
		c.walk(enabled, fn)
	}
}

func (c cond) walk(enabled func(feature.Name) bool, fn func(model.QualifiedName)) {
	if enabled(c.feature) {
		c.then.walk(enabled, fn)
		return
	}
	c.alt.walk(enabled, fn)
}

// Render returns the text of e in ctx.
func Render(e Excerpt, ctx Context) string {
	var b strings.Builder
	e.render(&b, ctx)
	return b.String()
}

// Walk calls fn for every reference e would render under the given feature
// availability, in render order.
func Walk(e Excerpt, enabled func(feature.Name) bool, fn func(model.QualifiedName)) {
	e.walk(enabled, fn)
}

// Equal reports whether a and b are structurally equal, which for canonical
// excerpts means they render identically in every context.
func Equal(a, b Excerpt) bool {
	switch a := a.(type) {
	case literal:
		b, ok := b.(literal)
		return ok && a == b
	case ref:
		b, ok := b.(ref)
		return ok && a == b
	case seq:
		b, ok := b.(seq)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	case cond:
		b, ok := b.(cond)
		return ok && a.feature == b.feature && Equal(a.then, b.then) && Equal(a.alt, b.alt)
	}
	return false
}
