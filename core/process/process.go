package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/hedulewei/prockit/internal/reflector"
	"github.com/hedulewei/prockit/ports/codec"
	"github.com/hedulewei/prockit/ports/kv"
)

// ErrTerminate requests normal termination of the process. A transition that
// returns it (or wraps it) is routed through the dispatcher's kill path
// instead of the failure path: no restart, no sink traffic.
var ErrTerminate = errors.New("terminate process")

type (
	// SetupFn produces the initial state. Invoked on startup (unless a
	// persisted snapshot is restored) and on every restart.
	SetupFn[S, M any] func(ctx context.Context, self *Process[S, M]) S

	// TransitionFn applies one message to the state and returns the next
	// state. It must be pure with respect to the process: any error return
	// or panic is a failure that resets the process, except ErrTerminate.
	TransitionFn[S, M any] func(ctx context.Context, state S, msg M) (S, error)
)

// Config carries everything a process is constructed with. ID, Dispatcher,
// Setup and Transition are required; the rest defaults to no-op
// implementations.
type Config[S, M any] struct {
	ID         Identity
	Parent     Identity
	Dispatcher Dispatcher
	Setup      SetupFn[S, M]
	Transition TransitionFn[S, M]
	Flags      Flags

	// Store backs state persistence; required when FlagPersistState is set.
	Store kv.Store

	Logger      *slog.Logger
	Codec       codec.Codec
	Metrics     Metrics
	Errors      ErrorSink
	DeadLetters DeadLetterSink
}

// Process is one actor instance: identity plus exclusively owned state plus
// the (setup, transition) pair. The dispatcher must drive it serially; see
// the package documentation for the full contract.
type Process[S, M any] struct {
	id     Identity
	parent Identity
	name   string
	flags  Flags

	disp       Dispatcher
	setup      SetupFn[S, M]
	transition TransitionFn[S, M]

	log         *slog.Logger
	codec       codec.Codec
	metrics     Metrics
	errors      ErrorSink
	deadLetters DeadLetterSink
	store       kv.Store

	state    S
	started  bool
	shutdown bool

	children childSet
	subs     subscriptionSet

	stateStream   *Stream[S]
	publishStream *Stream[any]
}

// New validates the config and constructs the process. With
// FlagPersistState set it also wires the internal write-through subscription
// on the state stream, so persistence observes every emission in order.
func New[S, M any](cfg Config[S, M]) (*Process[S, M], error) {
	if cfg.ID == nil {
		return nil, errors.New("process: id is required")
	}
	if cfg.Dispatcher == nil {
		return nil, errors.New("process: dispatcher is required")
	}
	if cfg.Setup == nil {
		return nil, errors.New("process: setup function is required")
	}
	if cfg.Transition == nil {
		return nil, errors.New("process: transition function is required")
	}
	if cfg.Flags.Has(FlagPersistState) && cfg.Store == nil {
		return nil, errors.New("process: FlagPersistState requires a store")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.JSON{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NopMetrics()
	}
	if cfg.Errors == nil {
		cfg.Errors = NopErrorSink()
	}
	if cfg.DeadLetters == nil {
		cfg.DeadLetters = NopDeadLetterSink()
	}

	p := &Process[S, M]{
		id:            cfg.ID,
		parent:        cfg.Parent,
		name:          cfg.ID.Name(),
		flags:         cfg.Flags,
		disp:          cfg.Dispatcher,
		setup:         cfg.Setup,
		transition:    cfg.Transition,
		log:           cfg.Logger.With(slog.String("process", cfg.ID.Path())),
		codec:         cfg.Codec,
		metrics:       cfg.Metrics,
		errors:        cfg.Errors,
		deadLetters:   cfg.DeadLetters,
		store:         cfg.Store,
		children:      newChildSet(),
		subs:          newSubscriptionSet(),
		stateStream:   NewStream[S](),
		publishStream: NewStream[any](),
	}

	if p.flags.Has(FlagPersistState) {
		p.initPersistence()
	}

	return p, nil
}

func (p *Process[S, M]) ID() Identity     { return p.id }
func (p *Process[S, M]) Parent() Identity { return p.parent }
func (p *Process[S, M]) Name() string     { return p.name }
func (p *Process[S, M]) Flags() Flags     { return p.flags }

// StateStream emits every post-transition state value, in application order.
func (p *Process[S, M]) StateStream() *Stream[S] { return p.stateStream }

// PublishStream emits events passed to Publish, independent of state.
func (p *Process[S, M]) PublishStream() *Stream[any] { return p.publishStream }

// Startup establishes the initial state and announces it on the state
// stream. With persistence enabled an existing snapshot is restored instead
// of calling setup; load failures fall back to setup and are only logged.
// Calling Startup more than once is a contract violation and is ignored.
func (p *Process[S, M]) Startup(ctx context.Context) {
	if p.shutdown || p.started {
		p.log.Warn("startup ignored", slog.Bool("started", p.started), slog.Bool("shutdown", p.shutdown))
		return
	}
	p.started = true

	cctx := withCall(ctx, Call{Self: p.id, Flags: p.flags})
	p.state = p.restoreOrSetup(cctx)
	p.stateStream.Emit(p.state)
}

// ProcessMessage applies one fire-and-forget message. Nothing escapes to the
// caller: malformed messages are dead-lettered and failures reset the
// process.
func (p *Process[S, M]) ProcessMessage(ctx context.Context, msg any) {
	if p.shutdown {
		p.log.Warn("message after shutdown dropped", slog.String("msg_type", reflector.TypeName(msg)))
		return
	}

	call := Call{Self: p.id, Sender: SenderFrom(ctx), Message: msg, Flags: p.flags}
	cctx := withCall(ctx, call)

	m, cerr := p.coerce(msg)
	if cerr != nil {
		p.toDeadLetters(call.Sender, msg, cerr)
		return
	}
	p.apply(cctx, call, m)
}

// ProcessAsk applies one request/reply message. The pending ask is visible
// through the call context so the transition (or code it invokes) can
// address a reply. Uncoercible ask messages are surfaced to the error sink
// as misuse, not just silently dead-lettered; failed asks never produce a
// synthesized reply, callers apply their own timeout.
func (p *Process[S, M]) ProcessAsk(ctx context.Context, ask Ask) {
	if p.shutdown {
		p.log.Warn("ask after shutdown dropped", slog.String("msg_type", reflector.TypeName(ask.Message)))
		return
	}
	if ask.ID == "" {
		ask.ID = gonanoid.Must()
	}

	call := Call{Self: p.id, Sender: ask.Sender, Message: ask.Message, Ask: &ask, Flags: p.flags}
	cctx := withCall(ctx, call)

	m, cerr := p.coerce(ask.Message)
	if cerr != nil {
		p.errors.Failure(Failure{
			ID:      gonanoid.Must(),
			Process: p.id,
			Cause:   fmt.Errorf("ask %s: %w", ask.ID, cerr),
			Message: ask.Message,
			At:      time.Now(),
		})
		p.toDeadLetters(ask.ReplyTo, ask.Message, cerr)
		return
	}
	p.apply(cctx, call, m)
}

// apply runs the transition with crash containment and routes the outcome:
// success emits the next state, ErrTerminate goes to the kill path,
// everything else restarts the process and feeds the sinks.
func (p *Process[S, M]) apply(cctx context.Context, call Call, m M) {
	mt := reflector.TypeName(call.Message)
	defer p.metrics.ApplyDuration(mt).ObserveDuration()

	next, stack, err := p.safeTransition(cctx, m)

	switch {
	case err == nil:
		p.state = next
		p.stateStream.Emit(p.state)
		p.metrics.MessageApplied(mt, true)

	case errors.Is(err, ErrTerminate):
		p.metrics.MessageApplied(mt, true)
		if kerr := p.disp.Kill(cctx, p.id); kerr != nil {
			p.log.Warn("kill request failed", slog.Any("error", kerr))
		}

	default:
		p.metrics.MessageApplied(mt, false)
		p.Restart(cctx)
		p.errors.Failure(Failure{
			ID:      gonanoid.Must(),
			Process: p.id,
			Cause:   err,
			Message: call.Message,
			Stack:   stack,
			At:      time.Now(),
		})

		// the ask path addresses the record at the reply target
		sender := call.Sender
		if call.Ask != nil {
			sender = call.Ask.ReplyTo
		}
		p.metrics.DeadLettered("failure")
		p.deadLetters.DeadLetter(DeadLetter{
			ID:          gonanoid.Must(),
			Sender:      sender,
			Destination: p.id,
			Reason:      err,
			Message:     call.Message,
			At:          time.Now(),
		})
	}
}

// safeTransition contains panics: a panicking transition is reported as an
// ordinary failure with its stack attached.
func (p *Process[S, M]) safeTransition(ctx context.Context, m M) (next S, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack = debug.Stack()
			err = fmt.Errorf("transition panicked: %v", r)
		}
	}()
	next, err = p.transition(ctx, p.state, m)
	return
}

func (p *Process[S, M]) toDeadLetters(sender Identity, msg any, reason error) {
	p.metrics.DeadLettered(coerceReason(reason))
	p.deadLetters.DeadLetter(DeadLetter{
		ID:          gonanoid.Must(),
		Sender:      sender,
		Destination: p.id,
		Reason:      reason,
		Message:     msg,
		At:          time.Now(),
	})
}

// Restart resets the process in place: subscriptions are revoked before the
// reset state is announced, disposable state is released, state is re-derived
// via setup (never from a snapshot) and every registered child is sent a
// SystemRestart. Child registrations survive.
func (p *Process[S, M]) Restart(ctx context.Context) {
	p.subs.clear()
	p.closeState()

	cctx := withCall(ctx, Call{Self: p.id, Flags: p.flags})
	p.state = p.setup(cctx, p)
	p.stateStream.Emit(p.state)
	p.metrics.Restarted(p.id.Path())

	for _, child := range p.children.values() {
		if err := p.disp.Tell(ctx, child, SystemRestart{}); err != nil {
			p.log.Warn("restart propagation failed",
				slog.String("child", child.Path()), slog.Any("error", err))
		}
	}
}

// Shutdown revokes all subscriptions, completes both streams and releases
// disposable state. Terminal and idempotent.
func (p *Process[S, M]) Shutdown(ctx context.Context) {
	if p.shutdown {
		return
	}
	p.shutdown = true

	p.subs.clear()
	p.stateStream.Close()
	p.publishStream.Close()
	p.closeState()
}

// closeState releases a disposable resource embedded in the state, if any.
func (p *Process[S, M]) closeState() {
	if c, ok := any(p.state).(io.Closer); ok {
		if err := c.Close(); err != nil {
			p.log.Warn("state close failed", slog.Any("error", err))
		}
	}
}

// Publish emits event on the publish stream. No state mutation, no
// persistence.
func (p *Process[S, M]) Publish(event any) {
	p.publishStream.Emit(event)
}

// LinkChild registers id under its leaf name. Linking the process to itself
// is ignored.
func (p *Process[S, M]) LinkChild(id Identity) {
	if id == nil {
		return
	}
	if id.Path() == p.id.Path() {
		p.log.Warn("self link ignored")
		return
	}
	p.children.add(id)
}

// UnlinkChild removes the registration for id's leaf name. No-op if absent.
func (p *Process[S, M]) UnlinkChild(id Identity) {
	if id == nil {
		return
	}
	p.children.remove(id.Name())
}

// Children returns the registered children in insertion order.
func (p *Process[S, M]) Children() []Identity {
	return p.children.values()
}

// NextRoundRobinIndex returns 0 when there are no children; otherwise it
// advances the round-robin cursor and returns its new value in [0, n).
func (p *Process[S, M]) NextRoundRobinIndex() int {
	return p.children.nextIndex()
}

// AddSubscription stores a revocable handle under key, revoking any prior
// handle for the same key first.
func (p *Process[S, M]) AddSubscription(key string, cancel func()) {
	if cancel == nil {
		return
	}
	p.subs.add(key, cancel)
}

// RemoveSubscription revokes and removes the handle under key, if any.
func (p *Process[S, M]) RemoveSubscription(key string) {
	p.subs.remove(key)
}
