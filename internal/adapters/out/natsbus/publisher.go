// Package natsbus publishes kitchen domain events on NATS subjects.
// Payloads travel as JSON; subscribers in other bounded contexts decode
// them by subject.
package natsbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"kitchen/internal/core/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher delivers events over a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the NATS server and returns a publisher bound to the
// connection.
func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return NewPublisher(conn), nil
}

// NewPublisher wraps an existing NATS connection.
func NewPublisher(conn *nats.Conn) *Publisher {
	return &Publisher{conn: conn}
}

// Publish marshals the payload to JSON and publishes it on the subject.
func (p *Publisher) Publish(ctx context.Context, subject string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event for subject %s: %w", subject, err)
	}

	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}

// Close flushes pending messages and closes the underlying connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}
