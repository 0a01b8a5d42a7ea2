package feature

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
)

// ErrNoModule is returned by FindModule when no go.mod encloses the directory.
var ErrNoModule = errors.New("no go.mod found")

// Module is what feature detection needs to know about the target module.
type Module struct {
	Dir       string // directory holding go.mod
	Path      string // module path
	GoVersion string // go directive, e.g. "1.22"
	Requires  []module.Version
}

// FindModule walks up from dir until it finds go.mod, and parses it.
func FindModule(dir string) (*Module, error) {
	from, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", dir)
	}
	for {
		if _, err = os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return ParseModule(from)
		}
		parent := filepath.Dir(from)
		if parent == from {
			return nil, errors.Wrapf(ErrNoModule, "searching from %s", dir)
		}
		from = parent
	}
}

// ParseModule parses the go.mod file in modDir.
func ParseModule(modDir string) (*Module, error) {
	name := filepath.Join(modDir, "go.mod")
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read go.mod")
	}
	mf, err := modfile.Parse(name, data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "parse go.mod")
	}
	m := &Module{Dir: modDir}
	if mf.Module != nil {
		m.Path = mf.Module.Mod.Path
	}
	if mf.Go != nil {
		m.GoVersion = mf.Go.Version
	}
	for _, r := range mf.Require {
		m.Requires = append(m.Requires, r.Mod)
	}
	return m, nil
}

// RequiresModule reports whether the module requires modulePath. Major version
// variants (path/v2) are different modules and do not count.
func (m *Module) RequiresModule(modulePath string) bool {
	for _, r := range m.Requires {
		if r.Path == modulePath {
			return true
		}
	}
	return false
}

// AtLeast reports whether the go directive is at least version, e.g. "1.21".
func (m *Module) AtLeast(version string) bool {
	if m.GoVersion == "" {
		return false
	}
	return semver.Compare(canonical(m.GoVersion), canonical(version)) >= 0
}

// canonical turns a go directive version (1.21, 1.21.3, 1.22rc1) into semver.
func canonical(v string) string {
	if i := strings.IndexFunc(v, func(r rune) bool { return r != '.' && (r < '0' || r > '9') }); i >= 0 {
		v = v[:i]
	}
	return semver.Canonical("v" + v)
}

// Detect resolves the environment for the target module m. Overrides win over
// detection; a nil module yields the defaults.
func Detect(m *Module, overrides map[Name]bool) Environment {
	if m == nil {
		return New(overrides)
	}
	detected := map[Name]bool{
		GodsBiMap:    m.RequiresModule(GodsModule),
		GoSlicesMaps: m.AtLeast("1.21"),
	}
	for n, v := range overrides {
		detected[n] = v
	}
	return New(detected)
}
