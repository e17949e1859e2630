package process

import (
	"context"
	"log/slog"

	"github.com/hedulewei/prockit/ports/kv"
)

// stateSuffix distinguishes the state record from other records stored under
// the process path.
const stateSuffix = "@state"

func (p *Process[S, M]) stateKey() string {
	return p.id.Path() + stateSuffix
}

// initPersistence subscribes the process to its own state stream so every
// emission is written through to the store, synchronously and in emission
// order. Writes are best-effort: a failure is logged and counted, never
// surfaced to the message that triggered it. The subscription lives until
// the stream completes on shutdown.
func (p *Process[S, M]) initPersistence() {
	p.stateStream.Subscribe(func(s S) {
		defer p.metrics.PersistDuration().ObserveDuration()

		data, err := p.codec.Marshal(s)
		if err == nil {
			err = p.store.Put(context.Background(), p.stateKey(), kv.Entry{Data: data}, kv.PutOptions{})
		}
		if err != nil {
			p.metrics.PersistFailed()
			p.log.Warn("state persist failed", slog.String("key", p.stateKey()), slog.Any("error", err))
		}
	})
}

// restoreOrSetup returns the persisted snapshot when persistence is enabled
// and one exists; otherwise (or on any load failure) it falls back to setup.
func (p *Process[S, M]) restoreOrSetup(cctx context.Context) S {
	if !p.flags.Has(FlagPersistState) {
		return p.setup(cctx, p)
	}

	key := p.stateKey()
	ok, err := p.store.Exists(cctx, key)
	if err != nil {
		p.log.Warn("state lookup failed, using setup", slog.String("key", key), slog.Any("error", err))
		return p.setup(cctx, p)
	}
	if !ok {
		return p.setup(cctx, p)
	}

	entry, err := p.store.Get(cctx, key)
	if err != nil {
		p.log.Warn("state load failed, using setup", slog.String("key", key), slog.Any("error", err))
		return p.setup(cctx, p)
	}

	var s S
	if err := p.codec.Unmarshal(entry.Data, &s); err != nil {
		p.log.Warn("state decode failed, using setup", slog.String("key", key), slog.Any("error", err))
		return p.setup(cctx, p)
	}
	return s
}
