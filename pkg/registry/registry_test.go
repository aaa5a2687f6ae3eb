package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/repool/pkg/config"
	"github.com/ajitpratap0/repool/pkg/errors"
	"github.com/ajitpratap0/repool/pkg/pool"
	"github.com/ajitpratap0/repool/pkg/registry"
)

type conn struct {
	id     int
	parent pool.Location
}

type connFactory struct {
	made int
}

func (f *connFactory) Instantiate(_ *conn, loc pool.Location) *conn {
	f.made++
	return &conn{id: f.made, parent: loc}
}

func (f *connFactory) Destroy(*conn) {}

type buffer struct {
	data []byte
}

type bufferFactory struct{}

func (bufferFactory) Instantiate(proto *buffer, _ pool.Location) *buffer {
	return &buffer{data: make([]byte, 0, cap(proto.data))}
}

func (bufferFactory) Destroy(*buffer) {}

func testBlueprints(cf *connFactory) map[string]registry.Blueprint {
	return map[string]registry.Blueprint{
		"conn":   registry.Bind[*conn](cf, &conn{}),
		"buffer": registry.Bind[*buffer](bufferFactory{}, &buffer{data: make([]byte, 0, 1024)}),
	}
}

func TestBuildConstructsDeclaredPools(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 4, Container: "main", Eager: true},
		{Name: "scratch", Prototype: "buffer", Count: 0},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"connections", "scratch"}, r.Names())

	// The eager pool was prewarmed to capacity at build time.
	h, ok := r.GetPool("connections")
	require.True(t, ok)
	assert.Equal(t, 4, h.Size())
	assert.Equal(t, 4, h.FreeCount())
	assert.Equal(t, 4, cf.made)

	// The lazy unbounded pool starts empty.
	h, ok = r.GetPool("scratch")
	require.True(t, ok)
	assert.Zero(t, h.Size())
	assert.True(t, h.Unbounded())
}

func TestBuildRejectsDuplicateName(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 2},
		{Name: "connections", Prototype: "buffer", Count: 2},
	}}

	_, err := registry.Build(f, testBlueprints(&connFactory{}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "connections")
}

func TestBuildRejectsUnknownPrototype(t *testing.T) {
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "sessions", Prototype: "session", Count: 2},
	}}

	_, err := registry.Build(f, testBlueprints(&connFactory{}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
	assert.Contains(t, err.Error(), "session")
}

func TestRuntimeLookupMissIsAbsentNotError(t *testing.T) {
	r := registry.NewRegistry()

	h, ok := r.GetPool("absent")
	assert.False(t, ok)
	assert.Nil(t, h)

	h, ok = r.PoolAt(0)
	assert.False(t, ok)
	assert.Nil(t, h)

	h, ok = r.PoolAt(-1)
	assert.False(t, ok)
	assert.Nil(t, h)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	cf := &connFactory{}
	p := pool.New[*conn](cf, &conn{}, 2)

	r := registry.NewRegistry()
	require.NoError(t, r.Register("connections", p))

	err := r.Register("connections", p)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
}

func TestPoolAtFollowsRegistrationOrder(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "first", Prototype: "conn", Count: 1},
		{Name: "second", Prototype: "buffer", Count: 1},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	h, ok := r.PoolAt(0)
	require.True(t, ok)
	byName, _ := r.GetPool("first")
	assert.Same(t, byName, h)
}

func TestTypedLookup(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 2, Container: "main"},
		{Name: "scratch", Prototype: "buffer", Count: 2},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	p, ok := registry.Lookup[*conn](r, "connections")
	require.True(t, ok)
	c, ok := p.Acquire()
	require.True(t, ok)
	assert.Equal(t, pool.Location("main"), c.parent)
}

func TestTypedLookupMismatch(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 2},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	_, ok := registry.Lookup[*buffer](r, "connections")
	assert.False(t, ok, "element type mismatch must miss, not panic")

	_, ok = registry.Lookup[*conn](r, "absent")
	assert.False(t, ok)
}

func TestByType(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "scratch", Prototype: "buffer", Count: 2},
		{Name: "connections", Prototype: "conn", Count: 2},
		{Name: "more-connections", Prototype: "conn", Count: 2},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	p, ok := registry.ByType[*conn](r)
	require.True(t, ok)
	named, _ := registry.Lookup[*conn](r, "connections")
	assert.Same(t, named, p, "first registered pool of the type wins")

	type session struct{ _ int }
	_, ok = registry.ByType[*session](r)
	assert.False(t, ok)
}

func TestErasedAcquireReleaseThroughRegistry(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 1},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	h, _ := r.GetPool("connections")
	inst, ok := h.AcquireAny()
	require.True(t, ok)

	_, ok = h.AcquireAny()
	assert.False(t, ok, "capacity 1 saturates after one acquire")

	require.NoError(t, h.ReleaseAny(inst))
	assert.Equal(t, 1, h.FreeCount())
}

func TestClearTearsDownEveryPool(t *testing.T) {
	cf := &connFactory{}
	f := &config.File{Pools: []config.PoolSpec{
		{Name: "connections", Prototype: "conn", Count: 2, Eager: true},
	}}

	r, err := registry.Build(f, testBlueprints(cf))
	require.NoError(t, err)

	r.Clear(true)
	assert.Zero(t, r.Len())
	_, ok := r.GetPool("connections")
	assert.False(t, ok)
}
