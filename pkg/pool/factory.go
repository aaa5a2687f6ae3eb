package pool

// Location is an opaque placement or grouping context handed to the factory
// when instances are manufactured or relocated. The pool never inspects it;
// a host might use a parent object, a shard identifier, or nothing at all.
type Location any

// Factory manufactures and disposes pool instances. Instantiate clones the
// prototype into a new live instance positioned at or under location; the
// instance must come back in an inactive, idle state. Instantiate has no
// error return: the environment is assumed always able to manufacture a
// clone of a valid prototype, and failure is fatal to the caller.
// Destroy permanently disposes an instance; it is irreversible.
type Factory[T comparable] interface {
	Instantiate(prototype T, location Location) T
	Destroy(instance T)
}

// Activator is an optional factory capability. When the factory implements
// it, the pool activates instances on acquire (ready-for-use state) and
// deactivates them on release (idle state). Prewarmed instances are never
// activated; they come out of Instantiate already idle.
type Activator[T comparable] interface {
	Activate(instance T)
	Deactivate(instance T)
}

// Relocator is an optional factory capability used by Pool.Relocate to move
// instances under a new location, optionally preserving their absolute
// placement during the move.
type Relocator[T comparable] interface {
	Move(instance T, location Location, preservePlacement bool)
}

// FuncFactory adapts plain functions into a Factory. Only InstantiateFunc
// is required; every other func may be left nil, in which case the
// corresponding operation is a no-op.
//
// Example:
//
//	factory := &pool.FuncFactory[*bytes.Buffer]{
//	    InstantiateFunc: func(proto *bytes.Buffer, _ pool.Location) *bytes.Buffer {
//	        return bytes.NewBuffer(make([]byte, 0, proto.Cap()))
//	    },
//	    DestroyFunc: func(b *bytes.Buffer) { b.Reset() },
//	}
type FuncFactory[T comparable] struct {
	InstantiateFunc func(prototype T, location Location) T
	DestroyFunc     func(instance T)
	ActivateFunc    func(instance T)
	DeactivateFunc  func(instance T)
	MoveFunc        func(instance T, location Location, preservePlacement bool)
}

// Instantiate implements Factory.
func (f *FuncFactory[T]) Instantiate(prototype T, location Location) T {
	return f.InstantiateFunc(prototype, location)
}

// Destroy implements Factory. A nil DestroyFunc makes disposal a no-op,
// which suits garbage-collected resources.
func (f *FuncFactory[T]) Destroy(instance T) {
	if f.DestroyFunc != nil {
		f.DestroyFunc(instance)
	}
}

// Activate implements Activator.
func (f *FuncFactory[T]) Activate(instance T) {
	if f.ActivateFunc != nil {
		f.ActivateFunc(instance)
	}
}

// Deactivate implements Activator.
func (f *FuncFactory[T]) Deactivate(instance T) {
	if f.DeactivateFunc != nil {
		f.DeactivateFunc(instance)
	}
}

// Move implements Relocator.
func (f *FuncFactory[T]) Move(instance T, location Location, preservePlacement bool) {
	if f.MoveFunc != nil {
		f.MoveFunc(instance, location, preservePlacement)
	}
}
