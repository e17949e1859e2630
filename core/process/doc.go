// Package process implements the execution core of the actor runtime: the
// per-process state machine that owns private state, applies messages one at
// a time through a pure transition function, and survives failures by
// restarting with fresh state.
//
// A process is generic over its state type S and its expected message type M.
// The (setup, transition) pair is captured at construction:
//
//	p, err := process.New(process.Config[Counter, Add]{
//	    ID:         process.PathID("/user/counter"),
//	    Dispatcher: disp,
//	    Setup:      func(ctx context.Context, self *process.Process[Counter, Add]) Counter { return Counter{} },
//	    Transition: func(ctx context.Context, s Counter, m Add) (Counter, error) {
//	        s.Value += m.N
//	        return s, nil
//	    },
//	})
//
// # Message delivery
//
// The external dispatcher feeds messages in serially; the process never locks
// internally and must not be driven concurrently:
//
//   - [Process.ProcessMessage] is the fire-and-forget (tell) path.
//   - [Process.ProcessAsk] is the request/reply (ask) path.
//
// Messages arriving in the generic wire form ([]byte or string) are decoded
// into M through the configured codec. Nil messages, undecodable payloads and
// type mismatches are routed to the dead-letter sink without touching state.
//
// # Failure recovery
//
// A transition that returns an error (or panics) triggers [Process.Restart]:
// subscriptions are revoked, state is re-derived via setup, every child is
// sent a [SystemRestart] control message, and the failure is forwarded to the
// error and dead-letter sinks. Returning [ErrTerminate] instead requests a
// normal stop through the dispatcher's kill path.
//
// # Side channels
//
// Every post-transition state value is emitted on [Process.StateStream];
// explicitly published events go to [Process.PublishStream]. Both streams
// complete on [Process.Shutdown]. With [FlagPersistState] set, each state
// emission is written through to the configured kv store under the process
// path suffixed with "@state", and startup restores the last snapshot
// instead of calling setup.
//
// # Call context
//
// The current call (self, sender, message, pending ask, flags) travels on the
// context.Context given to setup and transition. Code invoked transitively
// during a transition can recover it with [CallFrom], and nested processing
// is naturally scoped because contexts are immutable.
package process
