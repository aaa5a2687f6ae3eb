package pool

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/repool/pkg/errors"
	"github.com/ajitpratap0/repool/pkg/logger"
	"github.com/ajitpratap0/repool/pkg/metrics"
)

// waitTick is the poll interval for WaitFree. Each tick re-checks the
// free-count predicate; there is no other wakeup path.
const waitTick = time.Millisecond

// Pool is a tracked object-recycling engine. It owns every instance it has
// ever manufactured, keeps them in creation order, and partitions them into
// free and busy. Acquire hands out the first free instance in creation
// order, manufacturing a new one through the factory when the free set is
// exhausted and capacity allows.
//
// A pool has a single logical owner: no operation is safe to call
// concurrently from multiple goroutines without external synchronization.
// Mutator methods return the pool itself so construction reads fluently:
//
//	p := pool.New[*Conn](factory, proto, 0).
//	    SetResetHook(func(c *Conn) { c.ResetDeadlines() }).
//	    SetCapacity(8, true).
//	    Prewarm()
type Pool[T comparable] struct {
	factory   Factory[T]
	activator Activator[T] // nil when the factory lacks the capability
	relocator Relocator[T]

	prototype T
	capacity  int // 0 = unbounded
	location  Location
	instances []T // creation order, never reordered, no duplicates
	busy      map[T]struct{}
	reset     func(T)

	log   *zap.Logger
	coll  *metrics.Collector
	stats Stats
}

// Stats holds cumulative pool counters. Counters only ever increase;
// current occupancy comes from Size, FreeCount and BusyCount.
type Stats struct {
	// Manufactured is the total number of instances created by the pool
	Manufactured int64
	// Destroyed is the total number of instances disposed via the factory
	Destroyed int64
	// Acquires is the number of successful acquires
	Acquires int64
	// Releases is the number of successful releases
	Releases int64
	// Exhausted is the number of acquires that came back empty
	Exhausted int64
}

// Option configures a pool at construction time.
type Option[T comparable] func(*Pool[T])

// WithLocation sets the placement context passed to the factory when
// instances are manufactured.
func WithLocation[T comparable](location Location) Option[T] {
	return func(p *Pool[T]) {
		p.location = location
	}
}

// WithResetHook sets the callback invoked on every successful acquire,
// after activation and before the instance is handed to the caller.
func WithResetHook[T comparable](hook func(T)) Option[T] {
	return func(p *Pool[T]) {
		p.reset = hook
	}
}

// WithCollector attaches a Prometheus collector that tracks the pool's
// acquire/release activity and occupancy.
func WithCollector[T comparable](coll *metrics.Collector) Option[T] {
	return func(p *Pool[T]) {
		p.coll = coll
	}
}

// New creates a pool over the given factory. It is the sole construction
// entry point; the zero value of Pool is not usable. The prototype is the
// template cloned on every manufacture and is immutable afterwards.
// A capacity of 0 means unbounded; negative capacities are clamped to 0.
//
// The factory's optional Activator and Relocator capabilities are
// discovered here, once, by type assertion.
func New[T comparable](factory Factory[T], prototype T, capacity int, opts ...Option[T]) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}

	p := &Pool[T]{
		factory:   factory,
		prototype: prototype,
		capacity:  capacity,
		busy:      make(map[T]struct{}),
		log:       logger.With(zap.String("component", "pool")),
	}
	if capacity > 0 {
		p.instances = make([]T, 0, capacity)
	}

	if a, ok := factory.(Activator[T]); ok {
		p.activator = a
	}
	if r, ok := factory.(Relocator[T]); ok {
		p.relocator = r
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.coll != nil {
		p.log = p.log.With(zap.String("pool", p.coll.Name()))
	}

	return p
}

// Acquire returns a ready-to-use instance, or (zero, false) when the pool
// is bounded and saturated. Saturation is a normal, recoverable condition,
// not an error; callers poll, queue, or use WaitFree.
//
// Allocation is first-fit by creation order: the free instance with the
// lowest creation index wins. This scan order determines which instance a
// caller receives under contention and is part of the contract.
func (p *Pool[T]) Acquire() (T, bool) {
	for _, inst := range p.instances {
		if _, taken := p.busy[inst]; taken {
			continue
		}
		p.checkout(inst, metrics.OutcomeHit)
		return inst, true
	}

	if p.capacity > 0 && len(p.instances) >= p.capacity {
		p.stats.Exhausted++
		if p.coll != nil {
			p.coll.RecordAcquire(metrics.OutcomeExhausted)
		}
		var zero T
		return zero, false
	}

	inst := p.manufacture()
	p.checkout(inst, metrics.OutcomeMiss)
	return inst, true
}

// manufacture clones the prototype and appends the new instance.
func (p *Pool[T]) manufacture() T {
	inst := p.factory.Instantiate(p.prototype, p.location)
	p.instances = append(p.instances, inst)
	p.stats.Manufactured++
	if p.coll != nil {
		p.coll.RecordManufactured(1)
		p.coll.SetSize(len(p.instances))
	}
	return inst
}

// checkout marks an instance busy, activates it and runs the reset hook.
// The hook fires after activation, once per successful acquire.
func (p *Pool[T]) checkout(inst T, outcome string) {
	p.busy[inst] = struct{}{}
	if p.activator != nil {
		p.activator.Activate(inst)
	}
	if p.reset != nil {
		p.reset(inst)
	}
	p.stats.Acquires++
	if p.coll != nil {
		p.coll.RecordAcquire(outcome)
		p.coll.SetInUse(len(p.busy))
	}
}

// Release returns a checked-out instance to circulation and deactivates it.
// It fails with an ErrorTypeNotOwned error for instances the pool never
// manufactured and with ErrorTypeAlreadyFree for instances that are not
// currently busy. Both are caller contract violations and are surfaced
// loudly rather than swallowed.
func (p *Pool[T]) Release(inst T) error {
	if !p.Contains(inst) {
		p.log.Error("release of foreign instance rejected")
		return errors.New(errors.ErrorTypeNotOwned, "instance was not manufactured by this pool")
	}
	if _, taken := p.busy[inst]; !taken {
		p.log.Error("double release rejected")
		return errors.New(errors.ErrorTypeAlreadyFree, "instance is not checked out")
	}

	delete(p.busy, inst)
	if p.activator != nil {
		p.activator.Deactivate(inst)
	}
	p.stats.Releases++
	if p.coll != nil {
		p.coll.RecordRelease()
		p.coll.SetInUse(len(p.busy))
	}
	return nil
}

// SetCapacity changes the maximum live instance count and returns the pool.
//
// A count of 0 makes the pool unbounded without touching any instance.
// Raising a bounded capacity pre-reserves storage and touches nothing.
// Any other change truncates the instance list to count entries, dropping
// the tail (highest creation index first). Dropped entries are destroyed
// via the factory when destroyExcess is true, otherwise they are abandoned:
// ownership transfers to whoever holds them and the pool forgets them.
//
// Truncation does not prefer free instances: a busy instance in the tail
// is destroyed out from under its holder. This is the documented contract,
// a deliberate caller hazard rather than an eviction policy.
func (p *Pool[T]) SetCapacity(count int, destroyExcess bool) *Pool[T] {
	switch {
	case count <= 0:
		p.capacity = 0

	case p.capacity > 0 && count > p.capacity:
		p.capacity = count
		if cap(p.instances) < count {
			grown := make([]T, len(p.instances), count)
			copy(grown, p.instances)
			p.instances = grown
		}

	default:
		if count < len(p.instances) {
			p.truncate(count, destroyExcess)
		}
		p.capacity = count
	}

	if p.coll != nil {
		p.coll.SetSize(len(p.instances))
		p.coll.SetInUse(len(p.busy))
	}
	return p
}

// truncate drops instances[keep:], highest creation index first. Busy
// entries leave busy tracking implicitly as they leave the instance list.
func (p *Pool[T]) truncate(keep int, destroyExcess bool) {
	dropped := len(p.instances) - keep
	for i := len(p.instances) - 1; i >= keep; i-- {
		inst := p.instances[i]
		delete(p.busy, inst)
		if destroyExcess {
			p.factory.Destroy(inst)
			p.stats.Destroyed++
		}
		var zero T
		p.instances[i] = zero // release the reference
	}
	p.instances = p.instances[:keep]

	p.log.Debug("capacity shrink truncated instances",
		zap.Int("kept", keep),
		zap.Int("dropped", dropped),
		zap.Bool("destroyed", destroyExcess))
	if destroyExcess && p.coll != nil {
		p.coll.RecordDestroyed(dropped)
	}
}

// Relocate updates the pool's location hint and moves every instance, free
// and busy alike, under the new location. preservePlacement asks the host
// to keep each instance's absolute placement during the move. Pools whose
// factory lacks the Relocator capability only update the hint, which
// affects instances manufactured from then on.
func (p *Pool[T]) Relocate(location Location, preservePlacement bool) *Pool[T] {
	p.location = location
	if p.relocator != nil {
		for _, inst := range p.instances {
			p.relocator.Move(inst, location, preservePlacement)
		}
	}
	return p
}

// SetResetHook replaces the reset callback. It takes effect on subsequent
// acquires only; instances already checked out are unaffected.
func (p *Pool[T]) SetResetHook(hook func(T)) *Pool[T] {
	p.reset = hook
	return p
}

// Prewarm synchronously manufactures instances until the pool holds
// capacity of them, each created inactive. It is a no-op on unbounded
// pools and on pools already at capacity.
func (p *Pool[T]) Prewarm() *Pool[T] {
	if p.capacity == 0 {
		return p
	}
	warmed := 0
	for len(p.instances) < p.capacity {
		p.manufacture()
		warmed++
	}
	if warmed > 0 {
		p.log.Debug("prewarmed pool", zap.Int("manufactured", warmed))
	}
	return p
}

// Clear empties the pool, destroying each instance via the factory when
// destroyInstances is true and abandoning them to their holders otherwise.
func (p *Pool[T]) Clear(destroyInstances bool) *Pool[T] {
	for _, inst := range p.instances {
		if destroyInstances {
			p.factory.Destroy(inst)
			p.stats.Destroyed++
		}
	}
	if destroyInstances && p.coll != nil {
		p.coll.RecordDestroyed(len(p.instances))
	}

	p.instances = nil
	p.busy = make(map[T]struct{})
	if p.coll != nil {
		p.coll.SetSize(0)
		p.coll.SetInUse(0)
	}
	return p
}

// WaitFree suspends the calling goroutine until at least one instance is
// free, re-checking the predicate every poll tick. The wait has no side
// effects; cancel it by cancelling ctx. There is no spurious-wakeup
// protection beyond the predicate re-check.
//
// The predicate can only flip while some other task releases an instance,
// so callers are responsible for whatever synchronization that implies.
func (p *Pool[T]) WaitFree(ctx context.Context) error {
	tick := time.NewTicker(waitTick)
	defer tick.Stop()

	for {
		if len(p.busy) < len(p.instances) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
	}
}

// Contains reports whether the pool owns the instance.
func (p *Pool[T]) Contains(inst T) bool {
	for _, owned := range p.instances {
		if owned == inst {
			return true
		}
	}
	return false
}

// IsBusy reports whether the instance is currently checked out.
func (p *Pool[T]) IsBusy(inst T) bool {
	_, taken := p.busy[inst]
	return taken
}

// Size returns the number of instances the pool currently owns.
func (p *Pool[T]) Size() int {
	return len(p.instances)
}

// FreeCount returns the number of instances available for acquire.
func (p *Pool[T]) FreeCount() int {
	return len(p.instances) - len(p.busy)
}

// BusyCount returns the number of instances currently checked out.
func (p *Pool[T]) BusyCount() int {
	return len(p.busy)
}

// Capacity returns the maximum live instance count, 0 meaning unbounded.
func (p *Pool[T]) Capacity() int {
	return p.capacity
}

// Unbounded reports whether the pool has no capacity limit.
func (p *Pool[T]) Unbounded() bool {
	return p.capacity == 0
}

// Location returns the current placement context.
func (p *Pool[T]) Location() Location {
	return p.location
}

// Prototype returns the template instance clones are manufactured from.
func (p *Pool[T]) Prototype() T {
	return p.prototype
}

// Stats returns a snapshot of the pool's cumulative counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}
