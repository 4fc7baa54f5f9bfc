// Package natsbus consumes the facts the kitchen reacts to. The only
// inbound subject today is the order confirmation published by the
// Ordering context.
package natsbus

import (
	"context"

	"github.com/nats-io/nats.go"
)

// HandlerFunc processes one raw message. Returning an error signals a
// transient failure; a nil return acknowledges the message even when it
// was dropped as malformed.
type HandlerFunc func(ctx context.Context, data []byte) error

// Bus subscribes handlers to subjects. Satisfied by NATSBus in
// production and by test doubles in unit tests.
type Bus interface {
	Subscribe(subject string, handler HandlerFunc) error
}

// NATSBus adapts a NATS connection to the Bus interface.
type NATSBus struct {
	conn *nats.Conn
	subs []*nats.Subscription
}

// NewNATSBus wraps an existing NATS connection.
func NewNATSBus(conn *nats.Conn) *NATSBus {
	return &NATSBus{conn: conn}
}

// Subscribe registers the handler for the subject.
func (b *NATSBus) Subscribe(subject string, handler HandlerFunc) error {
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		_ = handler(context.Background(), msg.Data)
	})
	if err != nil {
		return err
	}

	b.subs = append(b.subs, sub)
	return nil
}

// Close unsubscribes all registered handlers.
func (b *NATSBus) Close() {
	for _, sub := range b.subs {
		_ = sub.Unsubscribe()
	}
	b.subs = nil
}
