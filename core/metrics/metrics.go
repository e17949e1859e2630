// Package metrics defines the instrumentation primitives consumed by the
// process core. Backends (Prometheus, StatsD, ...) are plugged in through
// adapters; the core never imports a concrete client.
package metrics

// Counter is a monotonically increasing metric.
type Counter interface {
	Inc()
	// Add increments the counter by delta. delta must be >= 0.
	Add(delta float64)
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// Histogram samples observations, e.g. message application latencies.
type Histogram interface {
	Observe(value float64)
}

// Timer records the elapsed time since its creation when ObserveDuration is
// called, enabling: defer m.ApplyDuration(mt).ObserveDuration()
type Timer interface {
	ObserveDuration()
}
