package jobs

import (
	"context"
	"log/slog"

	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/events"
	"kitchen/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AssignmentProposalsJob periodically sweeps every tenant with active
// production and broadcasts fresh advisory station placements. The broadcast
// commits nothing; operators accept placements through the assignment command.
type AssignmentProposalsJob struct {
	tenants   queries.GetActiveTenantsQueryHandler
	proposals queries.GetAssignmentProposalsQueryHandler
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewAssignmentProposalsJob creates a job running the proposal sweep every
// thirty seconds.
func NewAssignmentProposalsJob(
	tenants queries.GetActiveTenantsQueryHandler,
	proposals queries.GetAssignmentProposalsQueryHandler,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *AssignmentProposalsJob {
	return &AssignmentProposalsJob{
		tenants:   tenants,
		proposals: proposals,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "assignment_proposals_job"),
	}
}

// Start begins the proposal sweep on its schedule.
func (j *AssignmentProposalsJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment proposals job started (running every 30 seconds)")
	return nil
}

// Stop stops the proposal sweep.
func (j *AssignmentProposalsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment proposals job stopped")
}

func (j *AssignmentProposalsJob) sweep(ctx context.Context) {
	tenantIDs, err := j.tenants.Handle(ctx, queries.NewGetActiveTenantsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list active tenants", "error", err)
		return
	}

	for _, tenantID := range tenantIDs {
		query, err := queries.NewGetAssignmentProposalsQuery(tenantID)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build proposals query",
				"tenant_id", tenantID.String(), "error", err)
			continue
		}

		result, err := j.proposals.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Proposal sweep failed",
				"tenant_id", tenantID.String(), "error", err)
			continue
		}

		batch := toBroadcast(tenantID.String(), result)
		if len(batch.Suggestions) == 0 && len(batch.ManualItemIDs) == 0 {
			continue
		}

		if err := j.publisher.Publish(ctx, events.SubjectAssignmentProposals, batch); err != nil {
			j.logger.ErrorContext(ctx, "Failed to broadcast proposals",
				"tenant_id", tenantID.String(), "error", err)
		}
	}
}

func toBroadcast(tenantID string, result queries.GetAssignmentProposalsQueryResponse) events.AssignmentProposalsGenerated {
	batch := events.AssignmentProposalsGenerated{
		TenantID:    tenantID,
		GeneratedAt: result.GeneratedAt,
	}

	for _, s := range result.Result.Suggestions {
		orderID := ""
		if id, ok := result.ItemOrders[s.ItemID.String()]; ok {
			orderID = id.String()
		}
		batch.Suggestions = append(batch.Suggestions, events.ProposalSuggestion{
			ItemID:               s.ItemID.String(),
			KitchenOrderID:       orderID,
			StationID:            s.StationID.String(),
			StationName:          s.StationName,
			Confidence:           s.Confidence,
			EstimatedWaitMinutes: s.EstimatedWaitMinutes,
		})
	}

	for _, m := range result.Result.ManualItems {
		batch.ManualItemIDs = append(batch.ManualItemIDs, m.ItemID.String())
	}
	for _, w := range result.Result.Overloads {
		batch.OverloadedStationIDs = append(batch.OverloadedStationIDs, w.StationID.String())
	}

	return batch
}
