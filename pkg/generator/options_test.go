package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/valuegen/internal/feature"
)

func TestNormalizeFeatures(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		flags   []string
		want    map[feature.Name]bool
		wantErr string
	}{
		{
			name:  "flag forms",
			flags: []string{"gods-bimap", "!go1.21"},
			want:  map[feature.Name]bool{feature.GodsBiMap: true, feature.GoSlicesMaps: false},
		},
		{
			name:  "flags override configured features",
			opts:  []Option{WithFeature("gods-bimap", true)},
			flags: []string{"gods-bimap=false"},
			want:  map[feature.Name]bool{feature.GodsBiMap: false},
		},
		{
			name: "names are case insensitive",
			opts: []Option{WithFeature("GODS-BIMAP", true)},
			want: map[feature.Name]bool{feature.GodsBiMap: true},
		},
		{
			name:    "unknown feature",
			flags:   []string{"generics"},
			wantErr: `unknown feature "generics"`,
		},
		{
			name:    "bad value",
			flags:   []string{"go1.21=maybe"},
			wantErr: "feature go1.21=maybe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions(tt.opts...)
			err := o.Normalize(tt.flags...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.Overrides())
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	o := NewOptions(WithParallelism(0), WithModuleDir("."))
	require.NoError(t, o.Normalize())
	assert.Positive(t, o.Parallelism)
	assert.True(t, filepath.IsAbs(o.ModuleDir))
	assert.Equal(t, DefaultManifest, o.Manifest)

	o = NewOptions(WithoutManifest(), WithVersion("v1.2.3"))
	assert.Empty(t, o.Manifest)
	assert.Equal(t, "v1.2.3", o.Version)
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yaml", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	o := NewOptions(WithDescriptors(filepath.Join(dir, "*.yaml"), filepath.Join(dir, "a.yaml")))
	got, err := o.Expand()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.yaml")}, got)

	o = NewOptions(WithDescriptors(filepath.Join(dir, "*.json")))
	_, err = o.Expand()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no descriptor matches")
}

func TestExpandSkipsManifestAndConfig(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"person.yaml", DefaultManifest, ".valuegen.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	o := NewOptions(
		WithDescriptors(filepath.Join(dir, "*.yaml")),
		WithManifest(filepath.Join(dir, DefaultManifest)),
		WithExclude(filepath.Join(dir, ".valuegen.yaml")),
	)
	got, err := o.Expand()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "person.yaml")}, got)

	o.Descriptors = []string{filepath.Join(dir, DefaultManifest)}
	_, err = o.Expand()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no descriptor matches")

	o = NewOptions(WithoutManifest(), WithDescriptors(filepath.Join(dir, "*.yaml")))
	got, err = o.Expand()
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
