package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cmmoran/valuegen/pkg/action/verify"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func module(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"),
		[]byte("module example.com/shop\n\ngo 1.22\n\nrequire github.com/emirpasic/gods v1.18.1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "person.yaml"), []byte(`
types:
  - name: Person
    properties:
      - {name: name, type: string}
      - {name: friends, type: "[]string"}
`), 0o644))
	return root
}

func TestGenerateThenVerify(t *testing.T) {
	root := module(t)
	desc := filepath.Join(root, "person.yaml")
	manifest := filepath.Join(root, "valuegen.manifest.yaml")

	out, err := run(t, "generate", "--manifest", manifest, desc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "person_builder.gen.go")+"\n", out)
	assert.FileExists(t, manifest)

	_, err = run(t, "verify", "--manifest", manifest, desc)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "person_builder.gen.go")))
	out, err = run(t, "verify", "--manifest", manifest, desc)
	assert.ErrorIs(t, err, verify.ErrStale)
	assert.Contains(t, out, "missing: ")
}

func TestGenerateGlobSkipsConfigAndManifest(t *testing.T) {
	root := module(t)
	config := filepath.Join(root, ".valuegen.yaml")
	manifest := filepath.Join(root, "valuegen.manifest.yaml")
	require.NoError(t, os.WriteFile(config, []byte("generate:\n  manifest: "+manifest+"\n"), 0o644))
	t.Cleanup(func() { configFiles = nil })

	for range 2 {
		_, err := run(t, "generate", "--config", config, filepath.Join(root, "*.yaml"))
		require.NoError(t, err)
	}
	assert.FileExists(t, manifest)
	_, err := run(t, "verify", "--config", config, filepath.Join(root, "*.yaml"))
	require.NoError(t, err)
}

func TestGenerateNeedsDescriptors(t *testing.T) {
	_, err := run(t, "generate", "--manifest", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no descriptors")
}

func TestDescribe(t *testing.T) {
	root := module(t)
	out, err := run(t, "describe", "-F", "!gods-bimap", filepath.Join(root, "person.yaml"))
	require.NoError(t, err)

	var got []describedType
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "example.com/shop.Person", got[0].Type)
	assert.Equal(t, "PersonBuilder", got[0].Builder)
	assert.Equal(t, []string{"go1.21"}, got[0].Features)
	require.Len(t, got[0].Properties, 2)
	assert.Equal(t, describedProperty{Name: "friends", Kind: "list", Type: "[]string", Getter: "Friends", Singular: "friend"}, got[0].Properties[1])
}

func TestFeatures(t *testing.T) {
	out, err := run(t, "features", module(t))
	require.NoError(t, err)
	assert.Contains(t, out, "example.com/shop")
	assert.Regexp(t, `gods-bimap\s+on`, out)
	assert.Regexp(t, `go1.21\s+on`, out)
}
