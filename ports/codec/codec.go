// Package codec is the wire-encoding port consumed by the process core for
// message coercion and state snapshots. The wire format belongs to external
// collaborators, so the core only depends on this narrow interface.
package codec

import "encoding/json"

type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default codec.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)   { return json.Marshal(v) }
func (JSON) Unmarshal(b []byte, v any) error { return json.Unmarshal(b, v) }

var _ Codec = JSON{}
