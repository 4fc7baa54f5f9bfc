package jobs

import (
	"context"
	"log/slog"
	"time"

	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ConsistencyAuditJob periodically re-validates every active kitchen order
// against its contract, stations, recipes and the commercial source. The
// audit never mutates production state: warnings are logged, and blocking
// errors additionally surface as QualityIssueReported facts so operators see
// drift that crept in after the assignment-time validation passed.
type ConsistencyAuditJob struct {
	tenants      queries.GetActiveTenantsQueryHandler
	activeOrders queries.GetActiveKitchenOrdersQueryHandler
	audit        queries.GetAuditReportQueryHandler
	publisher    ports.EventPublisher
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewConsistencyAuditJob creates a job auditing active production every minute.
func NewConsistencyAuditJob(
	tenants queries.GetActiveTenantsQueryHandler,
	activeOrders queries.GetActiveKitchenOrdersQueryHandler,
	audit queries.GetAuditReportQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *ConsistencyAuditJob {
	return &ConsistencyAuditJob{
		tenants:      tenants,
		activeOrders: activeOrders,
		audit:        audit,
		publisher:    publisher,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "consistency_audit_job"),
	}
}

// Start begins the audit on its schedule.
func (j *ConsistencyAuditJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.auditAll(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Consistency audit job started (running every minute)")
	return nil
}

// Stop stops the audit job.
func (j *ConsistencyAuditJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Consistency audit job stopped")
}

func (j *ConsistencyAuditJob) auditAll(ctx context.Context) {
	tenantIDs, err := j.tenants.Handle(ctx, queries.NewGetActiveTenantsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list active tenants", "error", err)
		return
	}

	for _, tenantID := range tenantIDs {
		listQuery, err := queries.NewGetActiveKitchenOrdersQuery(tenantID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build active orders query",
				"tenant_id", tenantID.String(), "error", err)
			continue
		}

		orders, err := j.activeOrders.Handle(ctx, listQuery)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to list active orders",
				"tenant_id", tenantID.String(), "error", err)
			continue
		}

		for _, order := range orders {
			j.auditOne(ctx, tenantID.String(), order.ID)
		}
	}
}

func (j *ConsistencyAuditJob) auditOne(ctx context.Context, tenantID string, orderID kernel.UUID) {
	query, err := queries.NewGetAuditReportQuery(orderID)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to build audit query",
			"tenant_id", tenantID, "kitchen_order_id", orderID.String(), "error", err)
		return
	}

	result, err := j.audit.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Audit failed",
			"tenant_id", tenantID, "kitchen_order_id", orderID.String(), "error", err)
		return
	}

	for _, finding := range result.Report.Errors {
		j.logger.ErrorContext(ctx, "Consistency audit found an error",
			"tenant_id", tenantID,
			"kitchen_order_id", orderID.String(),
			"check", string(finding.Check),
			"finding", finding.Message)

		issue := events.QualityIssueReported{
			KitchenOrderID: orderID.String(),
			Severity:       "critical",
			Note:           string(finding.Check) + ": " + finding.Message,
			OccurredAt:     time.Now().UTC(),
		}
		if err := j.publisher.Publish(ctx, events.SubjectQualityIssueReported, issue); err != nil {
			j.logger.ErrorContext(ctx, "Failed to publish audit finding",
				"kitchen_order_id", orderID.String(), "error", err)
		}
	}
	for _, finding := range result.Report.Warnings {
		j.logger.WarnContext(ctx, "Consistency audit found a warning",
			"tenant_id", tenantID,
			"kitchen_order_id", orderID.String(),
			"check", string(finding.Check),
			"finding", finding.Message)
	}
}
