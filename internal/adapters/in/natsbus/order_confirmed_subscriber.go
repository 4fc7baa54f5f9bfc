package natsbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/events"
)

// createKitchenOrderHandler is the slice of the command layer the
// subscriber needs.
type createKitchenOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateKitchenOrderCommand) error
}

// OrderConfirmedSubscriber listens for order confirmations and starts
// production for each one. Malformed or invalid facts are logged and
// dropped; they will never become valid on redelivery. Handler failures
// are returned so the transport can retry.
type OrderConfirmedSubscriber struct {
	bus     Bus
	handler createKitchenOrderHandler
	logger  *slog.Logger
}

// NewOrderConfirmedSubscriber creates a subscriber wired to the bus and
// the create kitchen order handler.
func NewOrderConfirmedSubscriber(
	bus Bus,
	handler createKitchenOrderHandler,
	logger *slog.Logger,
) *OrderConfirmedSubscriber {
	return &OrderConfirmedSubscriber{
		bus:     bus,
		handler: handler,
		logger:  logger.With("component", "order_confirmed_subscriber"),
	}
}

// Start subscribes to the order confirmation subject.
func (s *OrderConfirmedSubscriber) Start() error {
	if err := s.bus.Subscribe(events.SubjectOrderConfirmed, s.handleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", events.SubjectOrderConfirmed, err)
	}

	s.logger.InfoContext(context.Background(), "Order confirmed subscriber started",
		"subject", events.SubjectOrderConfirmed)
	return nil
}

func (s *OrderConfirmedSubscriber) handleMessage(ctx context.Context, data []byte) error {
	var fact events.OrderConfirmed
	if err := json.Unmarshal(data, &fact); err != nil {
		s.logger.ErrorContext(ctx, "Failed to unmarshal order confirmation", "error", err)
		return nil
	}

	cmd, err := commands.NewCreateKitchenOrderCommand(fact)
	if err != nil {
		s.logger.ErrorContext(ctx, "Rejected order confirmation",
			"order_id", fact.OrderID, "error", err)
		return nil
	}

	if err := s.handler.Handle(ctx, cmd); err != nil {
		s.logger.ErrorContext(ctx, "Failed to start production for confirmed order",
			"order_id", fact.OrderID, "order_version", fact.Version, "error", err)
		return err
	}

	return nil
}
