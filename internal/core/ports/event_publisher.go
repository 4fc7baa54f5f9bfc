package ports

import "context"

// EventPublisher publishes kitchen domain events to the outside world.
// Implementations marshal the payload and deliver it on the given subject;
// the core treats delivery as fire-and-forget after a successful publish.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}
