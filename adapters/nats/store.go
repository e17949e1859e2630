package nats

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/hedulewei/prockit/ports/kv"
)

type StoreConfig struct {
	// Bucket names the JetStream KV bucket. Required.
	Bucket string
	// Connect establishes the connection; defaults to ConnectDefault.
	Connect Connector
	// MaxBytes bounds the bucket size; defaults to 16 MiB.
	MaxBytes int64
}

// Store implements kv.Store on a JetStream key-value bucket.
type Store struct {
	kv      jetstream.KeyValue
	release closeFunc
}

func NewStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}

	doConnect := cfg.Connect
	if doConnect == nil {
		doConnect = ConnectDefault()
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = 16 * 1024 * 1024
	}

	nc, release, err := doConnect()
	if err != nil {
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		release()
		return nil, err
	}

	bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:   cfg.Bucket,
		Storage:  jetstream.FileStorage,
		MaxBytes: maxBytes,
	})
	if err != nil {
		release()
		return nil, err
	}

	return &Store{kv: bucket, release: release}, nil
}

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, key string) (kv.Entry, error) {
	v, err := s.kv.Get(ctx, encodeKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return kv.Entry{}, kv.ErrNotFound
		}
		return kv.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	return kv.Entry{Data: v.Value()}, nil
}

func (s *Store) Put(ctx context.Context, key string, entry kv.Entry, _ kv.PutOptions) error {
	_, err := s.kv.Put(ctx, encodeKey(key), entry.Data)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.kv.Delete(ctx, encodeKey(key))
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil
	}
	return err
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s.release != nil {
		s.release()
	}
	return nil
}

// encodeKey maps process keys onto the KV key alphabet: a leading slash is
// invalid in JetStream and '@' (the state-record suffix) is not allowed at
// all, so "/user/counter@state" becomes "user/counter=state".
func encodeKey(key string) string {
	key = strings.TrimPrefix(key, "/")
	return strings.ReplaceAll(key, "@", "=")
}

var _ kv.Store = (*Store)(nil)
