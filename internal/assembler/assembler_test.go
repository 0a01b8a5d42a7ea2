package assembler

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/descriptor"
	"github.com/cmmoran/valuegen/internal/feature"
	"github.com/cmmoran/valuegen/internal/model"
)

const shop = `
package: example.com/shop
imports:
  uuid: github.com/google/uuid
types:
  - name: Person
    serializable: true
    properties:
      - {name: id, type: uuid.UUID}
      - {name: name, type: string}
      - {name: age, type: int, default: "18"}
      - {name: email, type: string, kind: optional}
      - {name: nicknames, type: "[]string"}
      - {name: tags, type: "map[string]struct{}"}
      - {name: scores, type: "map[string]int"}
      - {name: addresses, type: "map[string][]Address"}
      - {name: codes, type: "map[string]int", kind: bimap}
  - name: Address
    extensible: false
    factory: makeAddressBuilder
    interface: true
    properties:
      - {name: street, type: string}
      - {name: timeout, type: time.Duration, default: "time.Second * 5"}
`

var (
	modern   = feature.New(map[feature.Name]bool{feature.GoSlicesMaps: true})
	legacy   = feature.New(map[feature.Name]bool{feature.GoSlicesMaps: false})
	withGods = feature.New(map[feature.Name]bool{feature.GoSlicesMaps: true, feature.GodsBiMap: true})
)

func compile(t *testing.T, src string) []*model.Datatype {
	t.Helper()
	doc, err := descriptor.Parse("test.yaml", []byte(src))
	require.NoError(t, err)
	targets, err := doc.Compile()
	require.NoError(t, err)
	out := make([]*model.Datatype, len(targets))
	for i, tgt := range targets {
		out[i] = tgt.Datatype
	}
	return out
}

// declarations lists the top-level declarations of a parsed file as Type,
// func and Recv.Method names.
type declarations struct {
	file  *ast.File
	names map[string]bool
}

func parse(t *testing.T, src []byte) declarations {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))
	d := declarations{file: f, names: map[string]bool{}}
	for _, decl := range f.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			name := decl.Name.Name
			if decl.Recv != nil {
				recv := decl.Recv.List[0].Type
				if star, ok := recv.(*ast.StarExpr); ok {
					recv = star.X
				}
				name = recv.(*ast.Ident).Name + "." + name
			}
			d.names[name] = true
		case *ast.GenDecl:
			for _, spec := range decl.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok {
					d.names[ts.Name.Name] = true
				}
			}
		}
	}
	return d
}

func (d declarations) imports() map[string]string {
	out := map[string]string{}
	for _, imp := range d.file.Imports {
		path, _ := strconv.Unquote(imp.Path.Value)
		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		}
		out[path] = name
	}
	return out
}

func TestGeneratePerson(t *testing.T) {
	person := compile(t, shop)[0]
	for name, env := range map[string]feature.Environment{"modern": modern, "legacy": legacy, "gods": withGods} {
		t.Run(name, func(t *testing.T) {
			out, err := Generate(person, env)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(out), Header))

			d := parse(t, out)
			assert.Equal(t, "shop", d.file.Name.Name)
			for _, want := range []string{
				"Person", "PersonBuilder", "personProperty", "personRebuildable", "personData", "personValue", "personPartial",
				"NewPersonBuilder", "PersonBuilderFrom",
				"PersonBuilder.SetID", "PersonBuilder.MapID", "PersonBuilder.ID",
				"PersonBuilder.SetAge", "PersonBuilder.SetNullableEmail", "PersonBuilder.ClearEmail",
				"PersonBuilder.AddNickname", "PersonBuilder.AddAllNicknames", "PersonBuilder.RemoveNickname",
				"PersonBuilder.AddTag", "PersonBuilder.RemoveTag", "PersonBuilder.Tags",
				"PersonBuilder.PutScores", "PersonBuilder.RemoveScores",
				"PersonBuilder.PutAddresses", "PersonBuilder.RemoveAddresses", "PersonBuilder.RemoveAllAddresses",
				"PersonBuilder.PutCodes", "PersonBuilder.ForcePutCodes", "PersonBuilder.PutAllCodes",
				"PersonBuilder.RemoveKeyFromCodes", "PersonBuilder.RemoveValueFromCodes", "PersonBuilder.MutateCodes",
				"PersonBuilder.MergeFrom", "PersonBuilder.MergeFromBuilder", "PersonBuilder.Clear",
				"PersonBuilder.Build", "PersonBuilder.MustBuild", "PersonBuilder.BuildPartial", "PersonBuilder.snapshot",
				"personProperty.String",
				"personData.ID", "personData.Codes", "personData.equal", "personData.Hash", "personData.format",
				"personData.copyTo", "personData.MarshalJSON",
				"personValue.ToBuilder", "personValue.Equal", "personValue.String",
				"personPartial.ToBuilder", "personPartial.Equal", "personPartial.String",
			} {
				assert.True(t, d.names[want], "missing declaration %s", want)
			}

			imports := d.imports()
			assert.Contains(t, imports, "github.com/cmmoran/valuegen/pkg/builderkit")
			assert.Contains(t, imports, "github.com/google/uuid")
			assert.Contains(t, imports, "encoding/json")
			_, gods := imports["github.com/cmmoran/valuegen/pkg/builderkit/godsbimap"]
			assert.Equal(t, env.Enabled(feature.GodsBiMap), gods)
			_, slices := imports["slices"]
			assert.Equal(t, env.Enabled(feature.GoSlicesMaps), slices)

			var paths []string
			for _, imp := range d.file.Imports {
				paths = append(paths, imp.Path.Value)
			}
			assert.IsIncreasing(t, paths)
		})
	}
}

func TestGenerateBuildChecksRequiredInOrder(t *testing.T) {
	out, err := Generate(compile(t, shop)[0], modern)
	require.NoError(t, err)
	src := string(out)

	id := strings.Index(src, "missing = append(missing, personPropertyID.String())")
	name := strings.Index(src, "missing = append(missing, personPropertyName.String())")
	require.Positive(t, id)
	require.Positive(t, name)
	assert.Less(t, id, name)
	assert.NotContains(t, src, "personPropertyAge.String()")
	assert.Contains(t, src, `return nil, builderkit.Incomplete("Person", missing...)`)
	assert.Contains(t, src, "[personPropertyCount]bool{personPropertyID: true, personPropertyName: true, personPropertyAge: true},")
}

func TestGenerateFactoryAndInterface(t *testing.T) {
	address := compile(t, shop)[1]
	out, err := Generate(address, modern)
	require.NoError(t, err)

	d := parse(t, out)
	assert.False(t, d.names["Address"], "hand-written interface must not be generated")
	assert.True(t, d.names["newAddressBuilder"])
	assert.True(t, d.names["addressBuilderFrom"])
	assert.False(t, d.names["addressData.MarshalJSON"])
	assert.NotContains(t, d.imports(), "encoding/json")

	src := string(out)
	assert.Contains(t, src, "defaults := makeAddressBuilder()")
	assert.Contains(t, src, "return makeAddressBuilder().MergeFrom(value)")
	assert.Contains(t, src, "timeout: time.Second * 5,")
}

func TestGenerateIsDeterministic(t *testing.T) {
	person := compile(t, shop)[0]
	first, err := Generate(person, withGods)
	require.NoError(t, err)
	for range 3 {
		again, err := Generate(person, withGods)
		require.NoError(t, err)
		if diff := cmp.Diff(string(first), string(again)); diff != "" {
			t.Fatalf("output changed between runs (-first +again):\n%s", diff)
		}
	}
}

func TestGenerateAliasesContestedPackages(t *testing.T) {
	dt := compile(t, `
package: example.com/shop
imports:
  builderkit: example.com/vendor/builderkit
types:
  - name: Order
    properties:
      - {name: kit, type: builderkit.Kit}
`)[0]
	out, err := Generate(dt, modern)
	require.NoError(t, err)

	imports := parse(t, out).imports()
	assert.Equal(t, "vendorbuilderkit", imports["example.com/vendor/builderkit"])
	assert.Equal(t, "pkgbuilderkit", imports["github.com/cmmoran/valuegen/pkg/builderkit"])
	assert.Contains(t, string(out), "Kit() vendorbuilderkit.Kit")
	assert.Contains(t, string(out), "pkgbuilderkit.NotSet(")
}

func TestGenerateSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		dt   func() *model.Datatype
		want string
	}{
		{
			name: "getter collides with value method",
			dt: func() *model.Datatype {
				dt := compile(t, "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, getter: String}\n")[0]
				return dt
			},
			want: "getter String collides with a generated method",
		},
		{
			name: "getter collides with builder method",
			dt: func() *model.Datatype {
				return compile(t, "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, getter: Build}\n")[0]
			},
			want: "builder method Build already declared by ABuilder",
		},
		{
			name: "shared getter",
			dt: func() *model.Datatype {
				return compile(t, "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, getter: Value}\n      - {name: y, type: int, getter: Value}\n")[0]
			},
			want: "getter Value collides",
		},
		{
			name: "kind does not fit type",
			dt: func() *model.Datatype {
				return compile(t, "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, kind: list}\n")[0]
			},
			want: "kind list does not fit type int",
		},
		{
			name: "invalid import path",
			dt: func() *model.Datatype {
				dt := compile(t, "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int}\n")[0]
				dt.Properties[0].Type = model.Named(model.Q("bad path!", "X"))
				return dt
			},
			want: "bad path!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Generate(tt.dt(), modern)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, errors.Is(err, model.ErrSchema), "not a schema error: %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestGeneratedCodeRuns compiles generated code into a scratch package of this
// module and runs the behavioural tests in testdata/runtime against it.
func TestGeneratedCodeRuns(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go tool")
	}
	goTool, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go tool not found")
	}
	tests, err := os.ReadFile(filepath.Join("testdata", "runtime", "person_test.go"))
	require.NoError(t, err)

	for name, env := range map[string]feature.Environment{"modern": modern, "legacy": legacy, "gods": withGods} {
		t.Run(name, func(t *testing.T) {
			dir, err := os.MkdirTemp(".", "scratch")
			require.NoError(t, err)
			t.Cleanup(func() { _ = os.RemoveAll(dir) })

			dt := compile(t, `
package: github.com/cmmoran/valuegen/internal/assembler/`+filepath.Base(dir)+`
name: people
types:
  - name: Person
    serializable: true
    properties:
      - {name: name, type: string}
      - {name: age, type: int, default: "18"}
      - {name: email, type: string, kind: optional}
      - {name: nicknames, type: "[]string"}
      - {name: tags, type: "map[string]struct{}"}
      - {name: scores, type: "map[string]int"}
      - {name: visits, type: "map[string][]int"}
      - {name: codes, type: "map[int]string", kind: bimap}
`)[0]
			src, err := Generate(dt, env)
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "person_builder.gen.go"), src, 0o644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, "person_test.go"), tests, 0o644))

			cmd := exec.Command(goTool, "test", "./"+filepath.Base(dir))
			out, err := cmd.CombinedOutput()
			require.NoError(t, err, "%s\n%s", out, src)
		})
	}
}
