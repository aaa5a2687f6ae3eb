package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/repool/pkg/config"
	"github.com/ajitpratap0/repool/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pools.yaml", `
pools:
  - name: connections
    prototype: conn
    count: 8
    container: main
    eager: true
  - name: buffers
    prototype: buffer
    count: 0
`)

	f, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, f.Pools, 2)

	assert.Equal(t, "connections", f.Pools[0].Name)
	assert.Equal(t, "conn", f.Pools[0].Prototype)
	assert.Equal(t, 8, f.Pools[0].Count)
	assert.Equal(t, "main", f.Pools[0].Container)
	assert.True(t, f.Pools[0].Eager)

	assert.Equal(t, 0, f.Pools[1].Count)
	assert.False(t, f.Pools[1].Eager)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "pools.json", `{
  "pools": [
    {"name": "connections", "prototype": "conn", "count": 4, "eager": false}
  ]
}`)

	f, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, f.Pools, 1)
	assert.Equal(t, 4, f.Pools[0].Count)
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("REPOOL_TEST_CONTAINER", "shard-7")

	path := writeFile(t, "pools.yaml", `
pools:
  - name: shards
    prototype: shard
    count: 2
    container: ${REPOOL_TEST_CONTAINER}
`)

	f, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shard-7", f.Pools[0].Container)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestValidateRejectsDuplicateNames(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 4},
		{Name: "buffers", Prototype: "buffer", Count: 2},
		{Name: "connections", Prototype: "conn", Count: 8},
	}}

	err := f.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "connections", "failure must name the offending duplicate")
}

func TestValidateRejectsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		spec config.PoolSpec
	}{
		{"empty name", config.PoolSpec{Prototype: "conn", Count: 1}},
		{"empty prototype", config.PoolSpec{Name: "connections", Count: 1}},
		{"negative count", config.PoolSpec{Name: "connections", Prototype: "conn", Count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &config.File{Pools: []config.PoolSpec{tt.spec}}
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		})
	}
}

func TestValidateAcceptsValidFile(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 4, Eager: true},
		{Name: "buffers", Prototype: "buffer", Count: 0},
	}}
	assert.NoError(t, f.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 8, Container: "main", Eager: true},
	}}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Save(path, f))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.Pools, loaded.Pools)
}

func TestLookup(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 8},
	}}

	spec, ok := f.Lookup("connections")
	require.True(t, ok)
	assert.Equal(t, 8, spec.Count)

	_, ok = f.Lookup("absent")
	assert.False(t, ok)
}
