package excerpt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

// F builds an excerpt from a format string. %s inserts an argument, %q inserts
// it as a quoted Go string literal and %% a percent sign. Arguments may be
// Excerpts, qualified names, types, expressions or anything fmt can print.
//
// A mismatch between verbs and arguments is a programming error and panics.
func F(format string, args ...any) Excerpt {
	var parts []Excerpt
	next := 0
	for {
		i := strings.IndexByte(format, '%')
		if i < 0 || i == len(format)-1 {
			parts = append(parts, literal(format))
			break
		}
		parts = append(parts, literal(format[:i]))
		verb := format[i+1]
		format = format[i+2:]
		switch verb {
		case '%':
			parts = append(parts, literal("%"))
			continue
		case 's', 'q':
		default:
			panic(fmt.Sprintf("excerpt: unsupported verb %%%c", verb))
		}
		if next >= len(args) {
			panic("excerpt: missing argument for %" + string(verb))
		}
		arg := args[next]
		next++
		if verb == 'q' {
			parts = append(parts, literal(strconv.Quote(plain(arg))))
			continue
		}
		parts = append(parts, Of(arg))
	}
	if next != len(args) {
		panic(fmt.Sprintf("excerpt: %d arguments for %d verbs", len(args), next))
	}
	return Seq(parts...)
}

// Of converts a value to an excerpt the way F does for %s.
func Of(arg any) Excerpt {
	switch a := arg.(type) {
	case nil:
		return Empty
	case Excerpt:
		return a
	case model.QualifiedName:
		return ref(a)
	case *model.QualifiedName:
		return ref(*a)
	case model.TypeRef:
		return Type(a)
	case model.Expr:
		return Expr(a)
	case string:
		return literal(a)
	case fmt.Stringer:
		return literal(a.String())
	}
	return literal(fmt.Sprint(arg))
}

func plain(arg any) string {
	switch a := arg.(type) {
	case string:
		return a
	case model.QualifiedName:
		return a.Name
	case fmt.Stringer:
		return a.String()
	}
	return fmt.Sprint(arg)
}

// Join concatenates parts with sep between them.
func Join(parts []Excerpt, sep string) Excerpt {
	out := make([]Excerpt, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, literal(sep))
		}
		out = append(out, p)
	}
	return Seq(out...)
}

// Comment renders text as a line comment block, one "//" line per input line.
// Empty text renders nothing.
func Comment(text string) Excerpt {
	text = strings.TrimSpace(text)
	if text == "" {
		return Empty
	}
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// " + line + "\n")
	}
	return literal(b.String())
}

// Builder accumulates an excerpt line by line. The zero value is ready to use.
// It is not safe for concurrent use.
type Builder struct {
	parts []Excerpt
}

// Line appends F(format, args...) followed by a newline.
func (b *Builder) Line(format string, args ...any) *Builder {
	b.parts = append(b.parts, F(format, args...), literal("\n"))
	return b
}

// Blank appends an empty line.
func (b *Builder) Blank() *Builder {
	b.parts = append(b.parts, literal("\n"))
	return b
}

// Add appends excerpts verbatim.
func (b *Builder) Add(e ...Excerpt) *Builder {
	b.parts = append(b.parts, e...)
	return b
}

// If appends then or otherwise depending on a feature.
func (b *Builder) If(f feature.Name, then, otherwise Excerpt) *Builder {
	b.parts = append(b.parts, If(f, then, otherwise))
	return b
}

// Build returns everything appended so far. The builder stays usable.
func (b *Builder) Build() Excerpt {
	return Seq(b.parts...)
}
