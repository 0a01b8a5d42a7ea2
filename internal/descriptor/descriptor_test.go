package descriptor

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/cmmoran/valuegen/internal/model"
)

// summarize prints the parts of the compiled model generators depend on.
func summarize(targets []Target) string {
	var b strings.Builder
	for _, t := range targets {
		dt := t.Datatype
		fmt.Fprintf(&b, "%s -> %s\n", dt.Type, t.Output)
		fmt.Fprintf(&b, "  builder=%s new=%s from=%s factory=%s\n",
			dt.Builder.Name, dt.Constructor.Name, dt.From.Name, dt.Factory.Func)
		fmt.Fprintf(&b, "  value=%s partial=%s data=%s enum=%s\n",
			dt.ValueType.Name, dt.PartialType.Name, dt.DataType.Name, dt.PropertyEnum.Name)
		fmt.Fprintf(&b, "  extensible=%t interface=%t serializable=%t\n",
			dt.Extensible, dt.InterfaceBacked, dt.BuilderSerializable)
		for _, p := range dt.Properties {
			fmt.Fprintf(&b, "  %s %s %s getter=%s caps=%s", p.Name, p.Kind, p.Type, p.GetterName, p.AllCapsName)
			if p.SingularName != p.Name {
				fmt.Fprintf(&b, " singular=%s", p.SingularName)
			}
			if !p.Default.IsZero() {
				fmt.Fprintf(&b, " default=%s", p.Default)
			}
			if p.IsRequired() {
				b.WriteString(" required")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func archiveFile(t *testing.T, a *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("archive has no %s", name)
	return nil
}

func TestCompileGolden(t *testing.T) {
	archives, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, name := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(name), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(name)
			require.NoError(t, err)

			doc, err := Parse(name, archiveFile(t, a, "descriptor.yaml"))
			require.NoError(t, err)
			targets, err := doc.Compile()
			require.NoError(t, err)

			if diff := cmp.Diff(string(archiveFile(t, a, "want")), summarize(targets)); diff != "" {
				t.Errorf("compiled model mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	a, err := txtar.ParseFile("testdata/person.txtar")
	require.NoError(t, err)
	doc, err := Parse("person", archiveFile(t, a, "descriptor.yaml"))
	require.NoError(t, err)

	data, err := doc.Marshal()
	require.NoError(t, err)
	again, err := Parse("person", data)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(doc, again, cmp.AllowUnexported(Document{})))

	first, err := doc.Compile()
	require.NoError(t, err)
	second, err := again.Compile()
	require.NoError(t, err)
	assert.Equal(t, summarize(first), summarize(second))
}

func TestDefaultExpressionReferences(t *testing.T) {
	r, err := newResolver(&Document{
		Package: "example.com/app",
		Imports: map[string]string{"clock": "example.com/lib/clock"},
	})
	require.NoError(t, err)

	e, err := r.parseExpr("clock.Every(time.Minute) + offset")
	require.NoError(t, err)
	require.Len(t, e.Parts, 4)
	assert.Equal(t, model.Q("example.com/lib/clock", "Every"), *e.Parts[0].Ref)
	assert.Equal(t, "(", e.Parts[1].Text)
	assert.Equal(t, model.Q("time", "Minute"), *e.Parts[2].Ref)
	assert.Equal(t, ") + offset", e.Parts[3].Text)
	assert.Equal(t, "clock.Every(time.Minute) + offset", e.String())
}

func TestNames(t *testing.T) {
	tests := []struct {
		in                         string
		exported, unexported, caps string
		singular                   string
	}{
		{in: "firstName", exported: "FirstName", unexported: "firstName", caps: "FIRST_NAME", singular: "firstName"},
		{in: "user_id", exported: "UserID", unexported: "userID", caps: "USER_ID", singular: "userID"},
		{in: "HTTPServer", exported: "HTTPServer", unexported: "httpServer", caps: "HTTP_SERVER", singular: "httpServer"},
		{in: "ID", exported: "ID", unexported: "id", caps: "ID", singular: "id"},
		{in: "emailAddresses", exported: "EmailAddresses", unexported: "emailAddresses", caps: "EMAIL_ADDRESSES", singular: "emailAddress"},
		{in: "children", exported: "Children", unexported: "children", caps: "CHILDREN", singular: "child"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.exported, exported(tt.in))
			assert.Equal(t, tt.unexported, unexported(tt.in))
			assert.Equal(t, tt.caps, allCaps(tt.in))
			assert.Equal(t, tt.singular, singular(unexported(tt.in)))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown key",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    colour: red\n",
			want: "colour",
		},
		{
			name: "missing package",
			yaml: "types:\n  - name: A\n    properties:\n      - {name: x, type: int}\n",
			want: "no package",
		},
		{
			name: "invalid package path",
			yaml: "package: \"example.com/a b\"\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int}\n",
			want: "package",
		},
		{
			name: "unexported type",
			yaml: "package: example.com/a\ntypes:\n  - name: a\n    properties:\n      - {name: x, type: int}\n",
			want: "not an exported Go identifier",
		},
		{
			name: "no properties",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n",
			want: "no properties",
		},
		{
			name: "keyword property",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: type, type: int}\n",
			want: "is a Go keyword",
		},
		{
			name: "reserved property",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: partial, type: int}\n",
			want: "is used by generated code",
		},
		{
			name: "predeclared property",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: len, type: int}\n",
			want: "shadows a predeclared identifier",
		},
		{
			name: "duplicate property",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int}\n      - {name: X, type: string}\n",
			want: "both named x",
		},
		{
			name: "singular clashes with property",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: tag, type: string}\n      - {name: tags, type: \"[]string\"}\n",
			want: "both named tag",
		},
		{
			name: "unknown kind",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, kind: tuple}\n",
			want: "unknown kind",
		},
		{
			name: "unknown package",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: uuid.UUID}\n",
			want: "unknown package uuid",
		},
		{
			name: "unparsable type",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: \"map[string\"}\n",
			want: "type",
		},
		{
			name: "channel type",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: chan int}\n",
			want: "unsupported type expression",
		},
		{
			name: "default on collection",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: xs, type: \"[]int\", default: \"nil\"}\n",
			want: "default only applies to scalar properties",
		},
		{
			name: "singular on scalar",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, singular: y}\n",
			want: "singular only applies",
		},
		{
			name: "unexported getter",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    properties:\n      - {name: x, type: int, getter: x}\n",
			want: "getter",
		},
		{
			name: "shared output",
			yaml: "package: example.com/a\ntypes:\n  - name: A\n    output: out.go\n    properties:\n      - {name: x, type: int}\n  - name: B\n    output: out.go\n    properties:\n      - {name: x, type: int}\n",
			want: "both generated into out.go",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.name, []byte(tt.yaml))
			if err == nil {
				_, err = doc.Compile()
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrSchema), "not a schema error: %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse("empty.yaml", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrSchema))
}
