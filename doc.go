// Package repool provides a tracked object-recycling engine for Go. Unlike
// sync.Pool, a repool pool owns the full set of instances it has ever
// manufactured, partitions them into free and busy, and hands out the
// first free instance in creation order on every acquire. Freed instances
// return to circulation without the underlying resource being destroyed
// and recreated.
//
// The engine is built for resources whose construction is expensive and
// whose identity matters: pooled connections, plugin instances, scene
// objects, pre-sized buffers. A pool knows exactly which instances are
// checked out, can grow and shrink its capacity while instances are live,
// can relocate every instance under a new placement context, and runs a
// pluggable reset hook on every reuse.
//
// # Architecture
//
// Core packages:
//
//   - pool: the recycling engine itself (Pool[T], Factory[T])
//   - registry: named pools built from declarative configuration
//   - config: YAML/JSON pool specifications with validation
//   - errors: structured error handling with types and stack traces
//   - logger: zap-based structured logging
//   - metrics: Prometheus collectors for pool activity
//
// # Quick Start
//
// Create a pool over a host factory and acquire instances from it:
//
//	import (
//	    "github.com/ajitpratap0/repool/pkg/pool"
//	)
//
//	factory := &pool.FuncFactory[*Conn]{
//	    InstantiateFunc: func(proto *Conn, loc pool.Location) *Conn {
//	        return proto.Clone(loc)
//	    },
//	    DestroyFunc: func(c *Conn) { c.Close() },
//	}
//
//	p := pool.New[*Conn](factory, prototype, 8)
//	conn, ok := p.Acquire()
//	if !ok {
//	    // capacity saturated; poll, queue, or use p.WaitFree
//	}
//	defer p.Release(conn)
//
// Named pools are declared in configuration and owned by a registry:
//
//	pools:
//	  - name: connections
//	    prototype: conn
//	    count: 8
//	    eager: true
//
// # Concurrency Model
//
// Pools are single-owner: all operations on a pool must run on one logical
// thread of control. There is no internal locking. WaitFree is the only
// suspending operation; it polls the free-count predicate cooperatively
// and has no side effects while waiting.
package repool
