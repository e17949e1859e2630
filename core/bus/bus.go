// Package bus broadcasts failure traffic to external observers. It
// implements the process core's dead-letter and error sinks on top of a
// kelindar/event dispatcher, so supervisors and tooling can subscribe
// without coupling to individual processes.
package bus

import (
	"github.com/kelindar/event"

	"github.com/hedulewei/prockit/core/process"
)

// Event type identifiers for kelindar/event.
const (
	TypeDeadLetter uint32 = iota + 1
	TypeFailure
)

// DeadLetterEvent wraps a dead letter for broadcast.
type DeadLetterEvent struct {
	process.DeadLetter
}

func (DeadLetterEvent) Type() uint32 { return TypeDeadLetter }

// FailureEvent wraps a failure record for broadcast.
type FailureEvent struct {
	process.Failure
}

func (FailureEvent) Type() uint32 { return TypeFailure }

// Bus fans failure traffic out to subscribers. Delivery is asynchronous and
// fire-and-forget, matching the sink contracts.
type Bus struct {
	d *event.Dispatcher
}

func New() *Bus {
	return &Bus{d: event.NewDispatcher()}
}

// DeadLetter implements process.DeadLetterSink.
func (b *Bus) DeadLetter(dl process.DeadLetter) {
	event.Publish(b.d, DeadLetterEvent{DeadLetter: dl})
}

// Failure implements process.ErrorSink.
func (b *Bus) Failure(f process.Failure) {
	event.Publish(b.d, FailureEvent{Failure: f})
}

// SubscribeDeadLetters registers fn for every dead letter. Returns an
// unsubscribe func.
func (b *Bus) SubscribeDeadLetters(fn func(DeadLetterEvent)) func() {
	return event.Subscribe(b.d, fn)
}

// SubscribeFailures registers fn for every failure record. Returns an
// unsubscribe func.
func (b *Bus) SubscribeFailures(fn func(FailureEvent)) func() {
	return event.Subscribe(b.d, fn)
}

// Close stops the dispatcher. No delivery happens afterwards.
func (b *Bus) Close() error {
	return b.d.Close()
}

var (
	_ process.DeadLetterSink = (*Bus)(nil)
	_ process.ErrorSink      = (*Bus)(nil)
)
