package process

import (
	"context"
)

// Ask is a request/reply delivery: the message plus the addressing needed for
// the receiver (or code it calls) to reply. ID correlates the reply with the
// request and is stamped with a fresh id when left empty.
type Ask struct {
	ID      string
	Message any
	Sender  Identity
	ReplyTo Identity
}

// Call is the ambient context of one message application: who is being
// called, who sent the message, the message itself, the pending ask (nil on
// the tell path) and the process flags. It is immutable and travels on the
// context, so nested processing observes correctly scoped values and the
// caller's call is never corrupted by a callee.
type Call struct {
	Self    Identity
	Sender  Identity
	Message any
	Ask     *Ask
	Flags   Flags
}

type callKey struct{}

func withCall(ctx context.Context, c Call) context.Context {
	return context.WithValue(ctx, callKey{}, c)
}

// CallFrom returns the call in flight on ctx. Code invoked transitively
// during a transition uses this to identify the sender or address a reply.
func CallFrom(ctx context.Context) (Call, bool) {
	c, ok := ctx.Value(callKey{}).(Call)
	return c, ok
}

type senderKey struct{}

// WithSender marks id as the sender of subsequent tells on ctx. Dispatchers
// use it to thread "who sent this" into ProcessMessage.
func WithSender(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, senderKey{}, id)
}

// SenderFrom returns the sender attached with WithSender, or nil.
func SenderFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(senderKey{}).(Identity)
	return id
}
