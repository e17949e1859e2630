package process

import "github.com/hedulewei/prockit/core/metrics"

// Metrics is the instrumentation surface of the process core. All methods
// must be safe for concurrent use across processes.
type Metrics interface {
	// Message application
	ApplyDuration(msgType string) metrics.Timer
	MessageApplied(msgType string, success bool)

	// Dead letters, labeled by reason ("nil", "type", "decode", "failure")
	DeadLettered(reason string)

	// Failure recovery
	Restarted(path string)

	// Persistence write-through
	PersistDuration() metrics.Timer
	PersistFailed()
}

type nopMetrics struct{}

func (nopMetrics) ApplyDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) MessageApplied(string, bool)        {}
func (nopMetrics) DeadLettered(string)                {}
func (nopMetrics) Restarted(string)                   {}
func (nopMetrics) PersistDuration() metrics.Timer     { return metrics.NopTimer() }
func (nopMetrics) PersistFailed()                     {}

// NopMetrics returns a no-op Metrics implementation.
func NopMetrics() Metrics { return nopMetrics{} }
