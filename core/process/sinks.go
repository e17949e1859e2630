package process

import (
	"time"
)

// DeadLetter records a message that could not be delivered or applied: nil
// messages, type mismatches, decode failures and messages whose transition
// failed.
type DeadLetter struct {
	ID          string
	Sender      Identity
	Destination Identity
	Reason      error
	Message     any
	At          time.Time
}

// Failure records an uncaught transition failure or ask misuse, for
// observability.
type Failure struct {
	ID      string
	Process Identity
	Cause   error
	Message any
	Stack   []byte
	At      time.Time
}

// DeadLetterSink consumes dead letters. Fire-and-forget.
type DeadLetterSink interface {
	DeadLetter(dl DeadLetter)
}

// ErrorSink consumes failure records. Fire-and-forget.
type ErrorSink interface {
	Failure(f Failure)
}

type nopSink struct{}

func (nopSink) DeadLetter(DeadLetter) {}
func (nopSink) Failure(Failure)       {}

// NopDeadLetterSink returns a DeadLetterSink that discards everything.
func NopDeadLetterSink() DeadLetterSink { return nopSink{} }

// NopErrorSink returns an ErrorSink that discards everything.
func NopErrorSink() ErrorSink { return nopSink{} }
