package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/ports"
)

// ReportQualityIssueCommandHandler surfaces quality problems as events.
// Reporting changes no kitchen state; downstream consumers decide whether an
// issue triggers a re-fire, a comp, or a hold.
type ReportQualityIssueCommandHandler struct {
	uowFactory KitchenOrderUoWFactory
	publisher  ports.EventPublisher
}

// NewReportQualityIssueCommandHandler creates the handler.
func NewReportQualityIssueCommandHandler(uowFactory KitchenOrderUoWFactory, publisher ports.EventPublisher) ReportQualityIssueCommandHandler {
	return ReportQualityIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle verifies the order (and item, when given) exist, then publishes the
// issue.
func (h ReportQualityIssueCommandHandler) Handle(ctx context.Context, cmd ReportQualityIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	order, err := uow.KitchenOrderRepository().Get(ctx, cmd.KitchenOrderID())
	if err != nil {
		return err
	}

	itemID := ""
	if cmd.ItemID() != nil {
		item, err := order.Item(*cmd.ItemID())
		if err != nil {
			return err
		}
		itemID = item.ID().String()
	}

	return h.publisher.Publish(ctx, events.SubjectQualityIssueReported, events.QualityIssueReported{
		KitchenOrderID: order.ID().String(),
		ItemID:         itemID,
		Severity:       cmd.Severity(),
		Note:           cmd.Note(),
		OccurredAt:     time.Now().UTC(),
	})
}
