// Package feature holds the optional capabilities of the target module that
// generated code may rely on.
package feature

import (
	"slices"
	"strings"
)

// Name identifies a feature.
type Name string

const (
	// GodsBiMap is available when the target module requires
	// github.com/emirpasic/gods; bimap properties then store a hashbidimap.Map.
	GodsBiMap Name = "gods-bimap"

	// GoSlicesMaps is available when the target module's go directive is at least
	// go1.21, providing the slices and maps packages and the clear builtin.
	GoSlicesMaps Name = "go1.21"
)

// GodsModule is the module path whose presence enables GodsBiMap.
const GodsModule = "github.com/emirpasic/gods"

// Feature describes one capability.
type Feature struct {
	Name        Name
	Description string
	// Default is assumed when no go.mod describes the target module.
	Default bool
}

// All lists every known feature, in a fixed order.
var All = []Feature{
	{
		Name:        GodsBiMap,
		Description: "bimap properties use github.com/emirpasic/gods/maps/hashbidimap",
		Default:     false,
	},
	{
		Name:        GoSlicesMaps,
		Description: "generated code uses the slices and maps packages and the clear builtin",
		Default:     true,
	},
}

// Lookup returns the feature called name.
func Lookup(name string) (Feature, bool) {
	for _, f := range All {
		if strings.EqualFold(string(f.Name), name) {
			return f, true
		}
	}
	return Feature{}, false
}

// Environment is the resolved availability of every feature for one generation
// run. It is immutable and safe to share.
type Environment struct {
	enabled map[Name]bool
}

// Defaults returns the environment assumed when nothing is known about the target.
func Defaults() Environment {
	return New(nil)
}

// New resolves every feature from its default, with overrides taking precedence.
func New(overrides map[Name]bool) Environment {
	enabled := make(map[Name]bool, len(All))
	for _, f := range All {
		enabled[f.Name] = f.Default
	}
	for n, v := range overrides {
		enabled[n] = v
	}
	return Environment{enabled: enabled}
}

// Enabled reports whether the feature is available. Unknown features are not.
func (e Environment) Enabled(n Name) bool {
	return e.enabled[n]
}

// With returns a copy of e with n set to v.
func (e Environment) With(n Name, v bool) Environment {
	enabled := make(map[Name]bool, len(e.enabled)+1)
	for k, x := range e.enabled {
		enabled[k] = x
	}
	enabled[n] = v
	return Environment{enabled: enabled}
}

// Names returns the enabled feature names, sorted.
func (e Environment) Names() []Name {
	var out []Name
	for n, v := range e.enabled {
		if v {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}

func (e Environment) String() string {
	names := e.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
