package process

import (
	"errors"
	"fmt"

	"github.com/hedulewei/prockit/internal/reflector"
)

var (
	// ErrNilMessage marks a nil message; the transition is never invoked.
	ErrNilMessage = errors.New("nil message")
	// ErrTypeMismatch marks a message whose runtime type is neither the
	// expected type nor the generic wire form.
	ErrTypeMismatch = errors.New("message type mismatch")
	// ErrDecode marks a wire-form message that failed structured decode.
	ErrDecode = errors.New("message decode failed")
)

// coerce applies the boundary policy for an incoming message: the expected
// type passes as-is, the generic wire form ([]byte or string) is decoded into
// the expected type, everything else is rejected with a typed error. When M
// is itself the wire type (or an interface), the first assertion matches and
// no decode is attempted.
func (p *Process[S, M]) coerce(raw any) (m M, err error) {
	if raw == nil {
		return m, ErrNilMessage
	}

	if v, ok := raw.(M); ok {
		return v, nil
	}

	var data []byte
	switch w := raw.(type) {
	case []byte:
		data = w
	case string:
		data = []byte(w)
	default:
		return m, fmt.Errorf("%w: got %s, want %s",
			ErrTypeMismatch, reflector.TypeName(raw), reflector.TypeNameFor[M]())
	}

	if uerr := p.codec.Unmarshal(data, &m); uerr != nil {
		var zero M
		return zero, fmt.Errorf("%w: into %s: %v", ErrDecode, reflector.TypeNameFor[M](), uerr)
	}
	return m, nil
}

// coerceReason maps a coercion error to its metrics label.
func coerceReason(err error) string {
	switch {
	case errors.Is(err, ErrNilMessage):
		return "nil"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrTypeMismatch):
		return "type"
	default:
		return "failure"
	}
}
