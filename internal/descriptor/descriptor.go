// Package descriptor loads YAML descriptions of value types and turns them into
// the model the generators work on.
//
// A descriptor names the package the generated code lives in, the imports its
// type expressions refer to, and one or more types with their properties:
//
//	package: example.com/shop/person
//	imports:
//	  uuid: github.com/google/uuid
//	types:
//	  - name: Person
//	    properties:
//	      - name: id
//	        type: uuid.UUID
//	      - name: nicknames
//	        type: "[]string"
//	      - name: aliases
//	        type: map[string]int
//	        kind: bimap
package descriptor

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/valuegen/internal/model"
)

// Document is one descriptor file.
type Document struct {
	// Package is the import path of the generated code. When empty it is derived
	// from the enclosing module by the caller.
	Package string `yaml:"package,omitempty"`
	// Name is the package clause name, when it differs from the import path.
	Name string `yaml:"name,omitempty"`
	// Imports maps the package names used in type and default expressions to
	// import paths. Undeclared names are taken to be standard library packages.
	Imports map[string]string `yaml:"imports,omitempty"`
	Types   []TypeSpec        `yaml:"types"`

	source string
}

// TypeSpec describes one value type.
type TypeSpec struct {
	Name string `yaml:"name"`
	Doc  string `yaml:"doc,omitempty"`
	// Output is the generated file name, relative to the descriptor.
	Output string `yaml:"output,omitempty"`
	// Builder overrides the builder type name, <Name>Builder by default.
	Builder string `yaml:"builder,omitempty"`
	// Interface is set when the value interface is declared by hand next to the
	// generated file.
	Interface bool `yaml:"interface,omitempty"`
	// Extensible exports the builder constructor; it defaults to true.
	Extensible *bool `yaml:"extensible,omitempty"`
	// Factory names a function of the package returning fresh builders, used
	// instead of the generated constructor.
	Factory      string         `yaml:"factory,omitempty"`
	Serializable bool           `yaml:"serializable,omitempty"`
	Properties   []PropertySpec `yaml:"properties"`
}

// PropertySpec describes one property.
type PropertySpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Kind is inferred from Type when empty: slices are lists, map[E]struct{} sets,
	// map[K][]V multimaps, other maps maps, everything else scalars.
	Kind       string `yaml:"kind,omitempty"`
	Getter     string `yaml:"getter,omitempty"`
	Singular   string `yaml:"singular,omitempty"`
	Default    string `yaml:"default,omitempty"`
	Nillable   *bool  `yaml:"nillable,omitempty"`
	Comparable *bool  `yaml:"comparable,omitempty"`
	Doc        string `yaml:"doc,omitempty"`
}

// Target is one file to generate.
type Target struct {
	Datatype *model.Datatype
	// Output is the file name the generated source is written to.
	Output string
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read descriptor %s", path)
	}
	return Parse(path, data)
}

// Parse decodes a descriptor. Unknown keys are schema errors.
func Parse(name string, data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	doc := &Document{source: name}
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, model.Schemaf("%s: empty descriptor", name)
		}
		return nil, errors.Mark(errors.Wrapf(err, "decode descriptor %s", name), model.ErrSchema)
	}
	return doc, nil
}

// Source is the name the document was parsed from.
func (d *Document) Source() string {
	return d.source
}

// Compile validates the document and returns one target per type, in
// declaration order.
func (d *Document) Compile() ([]Target, error) {
	if d.Package == "" {
		return nil, model.SchemaHintf("set package to the import path of the generated code",
			"%s: no package", d.source)
	}
	if len(d.Types) == 0 {
		return nil, model.Schemaf("%s: no types", d.source)
	}
	r, err := newResolver(d)
	if err != nil {
		return nil, err
	}
	var (
		out     = make([]Target, 0, len(d.Types))
		outputs = map[string]string{}
	)
	for _, ts := range d.Types {
		dt, err := r.datatype(ts)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", d.source)
		}
		output := ts.OutputFile()
		if prev, ok := outputs[output]; ok {
			return nil, model.Schemaf("%s: %s and %s are both generated into %s", d.source, prev, ts.Name, output)
		}
		outputs[output] = ts.Name
		out = append(out, Target{Datatype: dt, Output: output})
	}
	return out, nil
}

// OutputFile is the generated file name of t.
func (t TypeSpec) OutputFile() string {
	if t.Output != "" {
		return filepath.Clean(t.Output)
	}
	return snakeCase(t.Name) + "_builder.gen.go"
}

// Marshal renders d back to YAML.
func (d *Document) Marshal() ([]byte, error) {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, errors.Wrap(err, "encode descriptor")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode descriptor")
	}
	return b.Bytes(), nil
}

func snakeCase(s string) string {
	return strings.ToLower(strings.Join(words(s), "_"))
}
