package pool

import (
	"github.com/ajitpratap0/repool/pkg/errors"
)

// Erased is the type-erased view of a pool, used where pools of
// heterogeneous element types must live in one container (the registry).
// The pool's own logic never goes through this interface; it exists only
// so an owner can hold and drive pools without knowing their element type.
type Erased interface {
	// AcquireAny acquires an instance, returning false on saturation.
	AcquireAny() (any, bool)
	// ReleaseAny releases an instance previously returned by AcquireAny.
	ReleaseAny(instance any) error
	// PrewarmAny eagerly manufactures instances up to capacity.
	PrewarmAny()
	// ClearAny empties the pool, optionally destroying instances.
	ClearAny(destroyInstances bool)

	Size() int
	FreeCount() int
	BusyCount() int
	Capacity() int
	Unbounded() bool
}

var _ Erased = (*Pool[int])(nil)

// AcquireAny implements Erased.
func (p *Pool[T]) AcquireAny() (any, bool) {
	inst, ok := p.Acquire()
	if !ok {
		return nil, false
	}
	return inst, true
}

// ReleaseAny implements Erased. An instance of the wrong dynamic type was
// by definition never manufactured by this pool.
func (p *Pool[T]) ReleaseAny(instance any) error {
	inst, ok := instance.(T)
	if !ok {
		return errors.New(errors.ErrorTypeNotOwned, "instance type does not match pool element type").
			WithDetail("instance", instance)
	}
	return p.Release(inst)
}

// PrewarmAny implements Erased.
func (p *Pool[T]) PrewarmAny() {
	p.Prewarm()
}

// ClearAny implements Erased.
func (p *Pool[T]) ClearAny(destroyInstances bool) {
	p.Clear(destroyInstances)
}
