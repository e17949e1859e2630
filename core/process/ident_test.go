package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	id := PathID("/user/router")
	require.Equal(t, "/user/router", id.Path())
	require.Equal(t, "router", id.Name())
	require.Equal(t, PathID("/user/router/w1"), id.Child("w1"))
	require.Equal(t, "root", PathID("root").Name())
}

// A process whose expected message type is the wire type itself must take
// string messages as-is, with no decode attempt.
func TestCoerce_wire_type_expected(t *testing.T) {
	disp := NewRecordingDispatcher()
	seen := make([]string, 0)
	p, err := New(Config[[]string, string]{
		ID:         PathID("/user/log"),
		Dispatcher: disp,
		Setup:      func(context.Context, *Process[[]string, string]) []string { return nil },
		Transition: func(_ context.Context, s []string, m string) ([]string, error) {
			seen = append(seen, m)
			return append(s, m), nil
		},
	})
	require.NoError(t, err)
	p.Startup(context.Background())

	p.ProcessMessage(context.Background(), `{"N": 1}`)
	require.Equal(t, []string{`{"N": 1}`}, seen)
}
