package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedulewei/prockit/core/metrics"
	"github.com/hedulewei/prockit/core/process"
)

// processMetrics implements process.Metrics using Prometheus.
type processMetrics struct {
	applyDuration   *prometheus.HistogramVec
	messagesTotal   *prometheus.CounterVec
	deadLetters     *prometheus.CounterVec
	restartsTotal   *prometheus.CounterVec
	persistDuration prometheus.Histogram
	persistFailures prometheus.Counter
}

// NewProcessMetrics creates a Prometheus implementation of process.Metrics
// and registers its collectors with reg.
func NewProcessMetrics(reg prometheus.Registerer) process.Metrics {
	m := &processMetrics{
		applyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prockit_process_apply_duration_seconds",
			Help:    "Message application time in seconds",
			Buckets: defaultBuckets,
		}, []string{"message_type"}),

		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prockit_process_messages_total",
			Help: "Total number of messages applied",
		}, []string{"message_type", "success"}),

		deadLetters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prockit_process_dead_letters_total",
			Help: "Total number of dead-lettered messages",
		}, []string{"reason"}),

		restartsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prockit_process_restarts_total",
			Help: "Total number of failure-triggered restarts",
		}, []string{"process"}),

		persistDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prockit_process_persist_duration_seconds",
			Help:    "State snapshot write time in seconds",
			Buckets: defaultBuckets,
		}),

		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "prockit_process_persist_failures_total",
			Help: "Total number of failed state snapshot writes",
		}),
	}

	reg.MustRegister(
		m.applyDuration,
		m.messagesTotal,
		m.deadLetters,
		m.restartsTotal,
		m.persistDuration,
		m.persistFailures,
	)

	return m
}

func (m *processMetrics) ApplyDuration(msgType string) metrics.Timer {
	return newTimer(m.applyDuration.WithLabelValues(msgType))
}

func (m *processMetrics) MessageApplied(msgType string, success bool) {
	m.messagesTotal.WithLabelValues(msgType, boolToStr(success)).Inc()
}

func (m *processMetrics) DeadLettered(reason string) {
	m.deadLetters.WithLabelValues(reason).Inc()
}

func (m *processMetrics) Restarted(path string) {
	m.restartsTotal.WithLabelValues(path).Inc()
}

func (m *processMetrics) PersistDuration() metrics.Timer {
	return newTimer(m.persistDuration)
}

func (m *processMetrics) PersistFailed() {
	m.persistFailures.Inc()
}

var _ process.Metrics = (*processMetrics)(nil)
