package bus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hedulewei/prockit/core/process"
)

func TestBus_deadLetters(t *testing.T) {
	b := New()
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	var mu sync.Mutex
	got := make([]DeadLetterEvent, 0)
	unsub := b.SubscribeDeadLetters(func(e DeadLetterEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})
	defer unsub()

	b.DeadLetter(process.DeadLetter{
		ID:          "dl-1",
		Destination: process.PathID("/user/counter"),
		Reason:      process.ErrNilMessage,
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "dl-1", got[0].ID)
	require.ErrorIs(t, got[0].Reason, process.ErrNilMessage)
}

func TestBus_failures(t *testing.T) {
	b := New()
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	var mu sync.Mutex
	got := make([]FailureEvent, 0)
	b.SubscribeFailures(func(e FailureEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	})

	b.Failure(process.Failure{
		ID:      "f-1",
		Process: process.PathID("/user/counter"),
		Cause:   errors.New("boom"),
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "f-1", got[0].ID)
}
