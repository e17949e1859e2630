package process

import (
	"context"
	"strings"
)

// Identity is the hierarchical path of a process. Naming and path resolution
// are owned by the surrounding runtime; the core only navigates what it is
// given.
type Identity interface {
	// Path is the full, unique path of the process, e.g. "/user/router/w1".
	Path() string
	// Name is the leaf segment of the path.
	Name() string
}

// Dispatcher is the external scheduler/mailbox collaborator. It delivers
// control messages to other processes and owns the kill path used when a
// transition requests termination. Delivery and ordering are its concern.
type Dispatcher interface {
	Tell(ctx context.Context, to Identity, msg any) error
	Kill(ctx context.Context, id Identity) error
}

// SystemRestart is the control message sent to every registered child when
// the parent restarts.
type SystemRestart struct{}

// PathID is a minimal slash-separated Identity for setups that do not bring
// their own identity scheme.
type PathID string

func (p PathID) Path() string { return string(p) }

func (p PathID) Name() string {
	s := strings.TrimSuffix(string(p), "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Child returns the PathID of a direct child.
func (p PathID) Child(name string) PathID {
	return PathID(strings.TrimSuffix(string(p), "/") + "/" + name)
}

var _ Identity = PathID("")
