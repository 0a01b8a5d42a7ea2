package builderkit

import (
	"fmt"
	"slices"
	"strings"
)

// FormatSet formats the elements of s in sorted order of their formatted
// text, e.g. [admin ops].
func FormatSet[E comparable](s map[E]struct{}) string {
	elems := make([]string, 0, len(s))
	for e := range s {
		elems = append(elems, fmt.Sprint(e))
	}
	slices.Sort(elems)
	return "[" + strings.Join(elems, " ") + "]"
}
