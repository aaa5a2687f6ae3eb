// Package metrics provides Prometheus collectors for pool activity.
//
// Every named pool gets its own Collector, labeled with the pool name.
// The package-level metric vectors are registered once via promauto;
// collectors are cheap label-bound views over them.
//
// # Basic Usage
//
//	collector := metrics.NewCollector("connections")
//	collector.RecordAcquire("hit")
//	collector.SetInUse(3)
//
// # Metric Types
//
// Counter: acquires, releases, manufactured, destroyed instances.
// Gauge: instances currently in use, total instances owned.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Acquire outcome labels.
const (
	// OutcomeHit means an already-manufactured free instance was handed out.
	OutcomeHit = "hit"
	// OutcomeMiss means a new instance had to be manufactured.
	OutcomeMiss = "miss"
	// OutcomeExhausted means capacity was saturated and the acquire came back empty.
	OutcomeExhausted = "exhausted"
)

var (
	// Acquires tracks acquire calls per pool and outcome.
	// Labels: pool, outcome (hit/miss/exhausted)
	Acquires = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_acquires_total",
			Help: "Total number of acquire calls",
		},
		[]string{"pool", "outcome"},
	)

	// Releases tracks successful release calls per pool.
	Releases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_releases_total",
			Help: "Total number of successful release calls",
		},
		[]string{"pool"},
	)

	// Manufactured tracks instances created by pools.
	Manufactured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_instances_manufactured_total",
			Help: "Total number of instances manufactured",
		},
		[]string{"pool"},
	)

	// Destroyed tracks instances destroyed by pools (capacity shrinks, clears).
	Destroyed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_instances_destroyed_total",
			Help: "Total number of instances destroyed",
		},
		[]string{"pool"},
	)

	// InUse tracks instances currently checked out per pool.
	InUse = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_instances_in_use",
			Help: "Number of instances currently checked out",
		},
		[]string{"pool"},
	)

	// Size tracks total instances owned per pool.
	Size = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_instances_owned",
			Help: "Total number of instances owned by the pool",
		},
		[]string{"pool"},
	)
)

// Collector is a per-pool view over the package-level metric vectors.
// It pre-binds the pool label so hot-path recording avoids label lookups.
type Collector struct {
	name         string
	releases     prometheus.Counter
	manufactured prometheus.Counter
	destroyed    prometheus.Counter
	inUse        prometheus.Gauge
	size         prometheus.Gauge
}

// NewCollector creates a metrics collector for the named pool.
func NewCollector(name string) *Collector {
	return &Collector{
		name:         name,
		releases:     Releases.WithLabelValues(name),
		manufactured: Manufactured.WithLabelValues(name),
		destroyed:    Destroyed.WithLabelValues(name),
		inUse:        InUse.WithLabelValues(name),
		size:         Size.WithLabelValues(name),
	}
}

// Name returns the pool name this collector is bound to.
func (c *Collector) Name() string {
	return c.name
}

// RecordAcquire records an acquire call with its outcome
// (OutcomeHit, OutcomeMiss or OutcomeExhausted).
func (c *Collector) RecordAcquire(outcome string) {
	Acquires.WithLabelValues(c.name, outcome).Inc()
}

// RecordRelease records a successful release.
func (c *Collector) RecordRelease() {
	c.releases.Inc()
}

// RecordManufactured records newly manufactured instances.
func (c *Collector) RecordManufactured(n int) {
	c.manufactured.Add(float64(n))
}

// RecordDestroyed records destroyed instances.
func (c *Collector) RecordDestroyed(n int) {
	c.destroyed.Add(float64(n))
}

// SetInUse updates the in-use gauge.
func (c *Collector) SetInUse(n int) {
	c.inUse.Set(float64(n))
}

// SetSize updates the owned-instances gauge.
func (c *Collector) SetSize(n int) {
	c.size.Set(float64(n))
}
