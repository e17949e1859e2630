package process

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStream_order_and_cancel(t *testing.T) {
	s := NewStream[int]()

	got1 := make([]int, 0)
	got2 := make([]int, 0)
	cancel1 := s.Subscribe(func(v int) { got1 = append(got1, v) })
	s.Subscribe(func(v int) { got2 = append(got2, v) })

	s.Emit(1)
	s.Emit(2)
	cancel1()
	s.Emit(3)

	require.Equal(t, []int{1, 2}, got1)
	require.Equal(t, []int{1, 2, 3}, got2)
}

func TestStream_completion(t *testing.T) {
	s := NewStream[string]()

	got := make([]string, 0)
	s.Subscribe(func(v string) { got = append(got, v) })

	s.Emit("a")
	require.False(t, s.Closed())

	s.Close()
	s.Close() // idempotent
	require.True(t, s.Closed())

	select {
	case <-s.Done():
	default:
		t.Fatal("done not closed")
	}

	s.Emit("late")
	require.Equal(t, []string{"a"}, got)

	// subscriptions on a completed stream never fire
	s.Subscribe(func(v string) { t.Fatalf("unexpected emission %q", v) })
	s.Emit("later")
}

func TestStream_reentrant_cancel(t *testing.T) {
	s := NewStream[int]()

	var cancel func()
	got := 0
	cancel = s.Subscribe(func(v int) {
		got++
		cancel()
	})

	s.Emit(1)
	s.Emit(2)
	require.Equal(t, 1, got)
}
