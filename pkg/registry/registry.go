// Package registry maps names, indexes and element types to pool
// instances. A registry is built once, at startup, from a validated
// configuration file plus a blueprint table; after that it only answers
// lookups. Lookup misses are absent results, never errors — the fatal
// conditions (duplicate names, unknown prototypes) are all caught while
// the registry is being built.
//
// Blueprints are the closed generic-factory-table: each prototype name in
// the configuration resolves to a typed pool constructor bound at the
// registry's construction call site with Bind. No reflection is involved;
// heterogeneous storage goes through the pool.Erased capability interface.
package registry

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/repool/pkg/config"
	"github.com/ajitpratap0/repool/pkg/errors"
	"github.com/ajitpratap0/repool/pkg/logger"
	"github.com/ajitpratap0/repool/pkg/metrics"
	"github.com/ajitpratap0/repool/pkg/pool"
)

// Blueprint builds a pool from its declarative spec. The registry keys
// blueprints by the spec's prototype name.
type Blueprint func(spec config.PoolSpec) pool.Erased

// Registry owns named type-erased pool handles. Lookups by name, by
// registration index and by element type are all supported; misses come
// back as (nil, false).
type Registry struct {
	pools map[string]pool.Erased
	order []string
	log   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pools: make(map[string]pool.Erased),
		log:   logger.With(zap.String("component", "pool_registry")),
	}
}

// Build validates the configuration file and constructs one pool per
// record, in declaration order. Eager pools are prewarmed. Any failure —
// invalid file, duplicate name, prototype with no blueprint — aborts the
// whole build before the first lookup can happen.
func Build(f *config.File, blueprints map[string]Blueprint) (*Registry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, spec := range f.Pools {
		bp, ok := blueprints[spec.Prototype]
		if !ok {
			return nil, errors.Newf(errors.ErrorTypeConfig, "pool %q references unknown prototype %q", spec.Name, spec.Prototype).
				WithDetail("name", spec.Name).
				WithDetail("prototype", spec.Prototype)
		}

		h := bp(spec)
		if spec.Eager {
			h.PrewarmAny()
		}
		if err := r.Register(spec.Name, h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a pool under a unique name. Duplicate names are a setup
// error, consistent with config validation.
func (r *Registry) Register(name string, h pool.Erased) error {
	if _, exists := r.pools[name]; exists {
		return errors.Newf(errors.ErrorTypeConflict, "pool %q already registered", name).
			WithDetail("name", name)
	}

	r.pools[name] = h
	r.order = append(r.order, name)
	r.log.Info("pool registered",
		zap.String("name", name),
		zap.Int("capacity", h.Capacity()),
		zap.Int("size", h.Size()))
	return nil
}

// GetPool returns the pool registered under name, or (nil, false).
func (r *Registry) GetPool(name string) (pool.Erased, bool) {
	h, ok := r.pools[name]
	return h, ok
}

// PoolAt returns the pool at the given registration index, or (nil, false).
func (r *Registry) PoolAt(index int) (pool.Erased, bool) {
	if index < 0 || index >= len(r.order) {
		return nil, false
	}
	return r.pools[r.order[index]], true
}

// Names returns pool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered pools.
func (r *Registry) Len() int {
	return len(r.order)
}

// Clear tears down every pool, destroying instances when requested, and
// empties the registry.
func (r *Registry) Clear(destroyInstances bool) {
	for _, name := range r.order {
		r.pools[name].ClearAny(destroyInstances)
	}
	r.pools = make(map[string]pool.Erased)
	r.order = nil
}

// Bind adapts a typed factory and prototype into a Blueprint, attaching a
// per-pool metrics collector. This is how each pool's element type gets
// statically bound at the registry's construction call site.
//
// Example:
//
//	blueprints := map[string]registry.Blueprint{
//	    "conn":   registry.Bind[*Conn](connFactory, connProto),
//	    "buffer": registry.Bind[*bytes.Buffer](bufFactory, bufProto),
//	}
//	reg, err := registry.Build(cfg, blueprints)
func Bind[T comparable](factory pool.Factory[T], prototype T) Blueprint {
	return func(spec config.PoolSpec) pool.Erased {
		opts := []pool.Option[T]{
			pool.WithCollector[T](metrics.NewCollector(spec.Name)),
		}
		if spec.Container != "" {
			opts = append(opts, pool.WithLocation[T](spec.Container))
		}
		return pool.New(factory, prototype, spec.Count, opts...)
	}
}

// Lookup returns the pool registered under name as its typed form. The
// second result is false when the name is unknown or the element type
// does not match.
func Lookup[T comparable](r *Registry, name string) (*pool.Pool[T], bool) {
	h, ok := r.pools[name]
	if !ok {
		return nil, false
	}
	p, ok := h.(*pool.Pool[T])
	return p, ok
}

// ByType returns the first registered pool (in registration order) whose
// element type is T.
func ByType[T comparable](r *Registry) (*pool.Pool[T], bool) {
	for _, name := range r.order {
		if p, ok := r.pools[name].(*pool.Pool[T]); ok {
			return p, true
		}
	}
	return nil, false
}
