package nats

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hedulewei/prockit/ports/kv"
)

// requires a running JetStream-enabled server, e.g. `nats-server -js`
func newTestStore(t *testing.T) *Store {
	if os.Getenv("NATS_URL") == "" {
		t.Skip("NATS_URL not set")
	}
	s, err := NewStore(context.Background(), StoreConfig{Bucket: "prockit_test"})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestStore_roundTrip(t *testing.T) {
	s := newTestStore(t)

	key := "/user/counter@state"
	ok, err := s.Exists(context.Background(), key)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = s.Get(context.Background(), key)
	require.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Put(context.Background(), key, kv.Entry{Data: []byte(`{"Value":42}`)}, kv.PutOptions{}))

	ok, err = s.Exists(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)

	entry, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	require.JSONEq(t, `{"Value":42}`, string(entry.Data))

	require.NoError(t, s.Delete(context.Background(), key))
	require.NoError(t, s.Delete(context.Background(), key)) // idempotent
}

func TestEncodeKey(t *testing.T) {
	require.Equal(t, "user/counter=state", encodeKey("/user/counter@state"))
	require.Equal(t, "plain", encodeKey("plain"))
}
