package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
	assert.Empty(t, m.Generator)
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "valuegen.manifest.yaml")

	m, err := Load(path)
	require.NoError(t, err)
	m.Generator = "v1.0.0"
	m.Record(Entry{Descriptor: "shop.yaml", Type: "example.com/shop.Person", File: "z/person_builder.gen.go", Checksum: Checksum([]byte("a"))})
	m.Record(Entry{Descriptor: "shop.yaml", Type: "example.com/shop.Address", File: "a/address.gen.go", Checksum: Checksum([]byte("b")), Features: []string{"go1.21"}})
	m.Record(Entry{Descriptor: "shop.yaml", Type: "example.com/shop.Person", File: "z/person_builder.gen.go", Checksum: Checksum([]byte("c"))})
	require.NoError(t, m.Save(path))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", again.Generator)
	require.Len(t, again.Entries, 2)
	assert.Equal(t, "a/address.gen.go", again.Entries[0].File)
	assert.Equal(t, []string{"go1.21"}, again.Entries[0].Features)

	e, ok := again.Lookup("z/person_builder.gen.go")
	require.True(t, ok)
	assert.Equal(t, Checksum([]byte("c")), e.Checksum)
	_, ok = again.Lookup("other.go")
	assert.False(t, ok)
}

func TestRelAndAbs(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(filepath.Join(dir, "valuegen.manifest.yaml"))
	require.NoError(t, err)

	abs := filepath.Join(dir, "shop", "person.gen.go")
	assert.Equal(t, "shop/person.gen.go", m.Rel(abs))
	assert.Equal(t, abs, m.Abs("shop/person.gen.go"))
	assert.Equal(t, abs, m.Abs(abs))
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: {"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal manifest")
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
}
