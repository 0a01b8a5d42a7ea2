package excerpt

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"
)

// Jen renders jennifer statements once, at construction, into a literal
// excerpt. The statements must not reference other packages: jennifer would
// qualify them itself, bypassing the file's import table.
//
// Render failures mean the statements were malformed and panic.
func Jen(stmts ...*jen.Statement) Excerpt {
	var buf bytes.Buffer
	for i, s := range stmts {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		if err := s.Render(&buf); err != nil {
			panic(fmt.Sprintf("excerpt: render jennifer statement: %v", err))
		}
	}
	buf.WriteByte('\n')
	return literal(buf.String())
}
