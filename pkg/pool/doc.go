// Package pool implements a tracked object-recycling engine: a bounded or
// unbounded collection that manufactures reusable instances from a
// prototype, hands them out on demand, remembers exactly which instances
// are checked out, and returns freed instances to circulation without
// destroying the underlying resource.
//
// This is deliberately not a sync.Pool. A sync.Pool may drop or duplicate
// objects at the runtime's whim; this pool maintains a consistent
// free/busy partition over a known instance set, which is what resources
// with identity (connections, plugin instances, scene objects) need.
//
// Core types:
//
//   - Pool[T]: the engine; acquire, release, resize, relocate, clear,
//     prewarm, and a cooperative WaitFree
//   - Factory[T]: host-provided instantiate/destroy primitive, with
//     optional Activator and Relocator capabilities
//   - FuncFactory[T]: function-field adapter for Factory
//   - Erased: type-erased pool view consumed by the registry
//
// Allocation is first-fit by creation order, so the instance a caller
// receives is reproducible: the free instance with the lowest creation
// index always wins.
//
// # Ownership
//
// The pool exclusively owns every instance it manufactures until the pool
// destroys it, or until the instance is abandoned via Clear or SetCapacity
// with destroyExcess=false, at which point ownership transfers to the
// caller and the pool never references it again. Shrinking capacity
// truncates the instance list from the tail regardless of busy state; an
// instance currently checked out can be destroyed out from under its
// holder. That asymmetry is intentional and documented on SetCapacity.
//
// # Concurrency
//
// Pools are single-owner and never lock. No operation is safe to call
// concurrently without external synchronization.
package pool
