// Package nats backs the persistence port with a NATS JetStream key-value
// bucket, giving process state snapshots a durable cluster store.
package nats

import (
	"os"

	natsgo "github.com/nats-io/nats.go"
)

type closeFunc = func()

// Connector establishes a NATS connection and returns it together with a
// release func.
type Connector func() (nc *natsgo.Conn, close closeFunc, err error)

// ConnectURL dials the given URL.
func ConnectURL(natsURL string) Connector {
	return func() (*natsgo.Conn, closeFunc, error) {
		nc, err := natsgo.Connect(
			natsURL,
			natsgo.MaxReconnects(3),
		)
		if err != nil {
			return nil, nil, err
		}
		return nc, func() { nc.Close() }, nil
	}
}

// ConnectDefault dials NATS_URL when set, the default URL otherwise.
func ConnectDefault() Connector {
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		return ConnectURL(natsURL)
	}
	return ConnectURL(natsgo.DefaultURL)
}
