// Package http exposes the kitchen read models and operator commands over a
// thin Echo surface. Handlers translate between wire contracts and use cases;
// no business rule lives here.
package http

import (
	"errors"
	"net/http"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	acceptAssignmentHandler   commands.AcceptAssignmentCommandHandler
	changeKitchenStatus       commands.ChangeKitchenStatusCommandHandler
	changeItemStatus          commands.ChangeItemStatusCommandHandler
	reportQualityIssue        commands.ReportQualityIssueCommandHandler

	// Query handlers
	getActiveKitchenOrders  queries.GetActiveKitchenOrdersQueryHandler
	getStationWorkloads     queries.GetStationWorkloadsQueryHandler
	getAssignmentProposals  queries.GetAssignmentProposalsQueryHandler
	getAuditReport          queries.GetAuditReportQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	acceptAssignmentHandler commands.AcceptAssignmentCommandHandler,
	changeKitchenStatus commands.ChangeKitchenStatusCommandHandler,
	changeItemStatus commands.ChangeItemStatusCommandHandler,
	reportQualityIssue commands.ReportQualityIssueCommandHandler,
	getActiveKitchenOrders queries.GetActiveKitchenOrdersQueryHandler,
	getStationWorkloads queries.GetStationWorkloadsQueryHandler,
	getAssignmentProposals queries.GetAssignmentProposalsQueryHandler,
	getAuditReport queries.GetAuditReportQueryHandler,
) *Server {
	return &Server{
		acceptAssignmentHandler: acceptAssignmentHandler,
		changeKitchenStatus:     changeKitchenStatus,
		changeItemStatus:        changeItemStatus,
		reportQualityIssue:      reportQualityIssue,
		getActiveKitchenOrders:  getActiveKitchenOrders,
		getStationWorkloads:     getStationWorkloads,
		getAssignmentProposals:  getAssignmentProposals,
		getAuditReport:          getAuditReport,
	}
}

// RegisterRoutes attaches all kitchen routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/tenants/:tenant_id/kitchen-orders/active", s.GetActiveKitchenOrders)
	api.GET("/tenants/:tenant_id/stations/workloads", s.GetStationWorkloads)
	api.GET("/tenants/:tenant_id/assignment-proposals", s.GetAssignmentProposals)
	api.GET("/kitchen-orders/:order_id/audit", s.GetAuditReport)

	api.POST("/kitchen-orders/:order_id/status", s.ChangeKitchenStatus)
	api.POST("/kitchen-orders/:order_id/items/:item_id/status", s.ChangeItemStatus)
	api.POST("/kitchen-orders/:order_id/items/:item_id/assignment", s.AcceptAssignment)
	api.POST("/kitchen-orders/:order_id/quality-issues", s.ReportQualityIssue)
}

// GetActiveKitchenOrders handles GET /api/v1/tenants/:tenant_id/kitchen-orders/active.
func (s *Server) GetActiveKitchenOrders(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	query, err := queries.NewGetActiveKitchenOrdersQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getActiveKitchenOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve kitchen orders")
	}

	response := make([]KitchenOrderSummary, len(rows))
	for i, row := range rows {
		response[i] = KitchenOrderSummary{
			ID:                  row.ID.String(),
			OrderID:             row.OrderID.String(),
			Status:              row.Status,
			Priority:            row.Priority,
			EstimatedCompletion: row.EstimatedCompletion,
			ActualStart:         row.ActualStart,
			TotalItems:          row.TotalItems,
			CompletedItems:      row.CompletedItems,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetStationWorkloads handles GET /api/v1/tenants/:tenant_id/stations/workloads.
func (s *Server) GetStationWorkloads(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	query, err := queries.NewGetStationWorkloadsQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getStationWorkloads.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve station workloads")
	}

	response := make([]StationWorkload, len(rows))
	for i, row := range rows {
		response[i] = StationWorkload{
			ID:                   row.ID.String(),
			Name:                 row.Name,
			StationType:          row.StationType,
			Status:               row.Status,
			Capacity:             row.Capacity,
			Workload:             row.Workload,
			Utilization:          row.Utilization,
			EstimatedWaitMinutes: row.EstimatedWaitMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAssignmentProposals handles GET /api/v1/tenants/:tenant_id/assignment-proposals.
func (s *Server) GetAssignmentProposals(ctx echo.Context) error {
	tenantID, err := kernel.UUIDFromString(ctx.Param("tenant_id"))
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	query, err := queries.NewGetAssignmentProposalsQuery(tenantID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getAssignmentProposals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to generate assignment proposals")
	}

	return ctx.JSON(http.StatusOK, toAssignmentProposals(result))
}

// GetAuditReport handles GET /api/v1/kitchen-orders/:order_id/audit.
func (s *Server) GetAuditReport(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen order id")
	}

	query, err := queries.NewGetAuditReportQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.getAuditReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "Kitchen order not found")
		}
		return internalError(ctx, "Failed to audit kitchen order")
	}

	report := AuditReport{
		KitchenOrderID: result.KitchenOrderID.String(),
		IsValid:        result.IsValid,
		CheckedAt:      result.CheckedAt,
	}
	for _, finding := range result.Report.Errors {
		report.Errors = append(report.Errors, Finding{Check: string(finding.Check), Message: finding.Message})
	}
	for _, finding := range result.Report.Warnings {
		report.Warnings = append(report.Warnings, Finding{Check: string(finding.Check), Message: finding.Message})
	}

	return ctx.JSON(http.StatusOK, report)
}

// ChangeKitchenStatus handles POST /api/v1/kitchen-orders/:order_id/status.
func (s *Server) ChangeKitchenStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen order id")
	}

	var req ChangeStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := kitchenorder.StatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeKitchenStatusCommand(orderID, target, req.Actor, req.DelayEstimateMinutes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.changeKitchenStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeItemStatus handles POST /api/v1/kitchen-orders/:order_id/items/:item_id/status.
func (s *Server) ChangeItemStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen order id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req ChangeItemStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := kitchenorder.ItemStatusFromString(req.Target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeItemStatusCommand(orderID, itemID, target)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.changeItemStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AcceptAssignment handles POST /api/v1/kitchen-orders/:order_id/items/:item_id/assignment.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen order id")
	}
	itemID, err := kernel.UUIDFromString(ctx.Param("item_id"))
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req AcceptAssignmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stationID, err := kernel.UUIDFromString(req.StationID)
	if err != nil {
		return badRequest(ctx, "Invalid station id")
	}

	cmd, err := commands.NewAcceptAssignmentCommand(orderID, itemID, stationID, req.AcceptedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.acceptAssignmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportQualityIssue handles POST /api/v1/kitchen-orders/:order_id/quality-issues.
func (s *Server) ReportQualityIssue(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid kitchen order id")
	}

	var req ReportQualityIssueRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var itemID *kernel.UUID
	if req.ItemID != "" {
		parsed, err := kernel.UUIDFromString(req.ItemID)
		if err != nil {
			return badRequest(ctx, "Invalid item id")
		}
		itemID = &parsed
	}

	cmd, err := commands.NewReportQualityIssueCommand(orderID, itemID, req.Severity, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.reportQualityIssue.Handle(ctx.Request().Context(), cmd); err != nil {
		return commandError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

func toAssignmentProposals(result queries.GetAssignmentProposalsQueryResponse) AssignmentProposals {
	response := AssignmentProposals{GeneratedAt: result.GeneratedAt}

	response.Suggestions = make([]AssignmentSuggestion, 0, len(result.Result.Suggestions))
	for _, s := range result.Result.Suggestions {
		orderID := ""
		if id, ok := result.ItemOrders[s.ItemID.String()]; ok {
			orderID = id.String()
		}
		response.Suggestions = append(response.Suggestions, AssignmentSuggestion{
			ItemID:               s.ItemID.String(),
			KitchenOrderID:       orderID,
			StationID:            s.StationID.String(),
			StationName:          s.StationName,
			Confidence:           s.Confidence,
			Reason:               s.Reason,
			EstimatedWaitMinutes: s.EstimatedWaitMinutes,
			ProjectedUtilization: s.ProjectedUtilization,
			SpecializationMatch:  s.SpecializationMatch,
			EquipmentMatch:       s.EquipmentMatch,
		})
	}

	for _, m := range result.Result.ManualItems {
		response.ManualItems = append(response.ManualItems, ManualItem{
			ItemID: m.ItemID.String(),
			Reason: m.Reason,
		})
	}

	for _, w := range result.Result.Overloads {
		response.Overloads = append(response.Overloads, OverloadWarning{
			StationID:            w.StationID.String(),
			StationName:          w.StationName,
			Severity:             string(w.Severity),
			ProjectedUtilization: w.ProjectedUtilization,
			Message:              w.Message,
		})
	}

	for _, r := range result.Result.Redistributions {
		itemIDs := make([]string, 0, len(r.ItemIDs))
		for _, id := range r.ItemIDs {
			itemIDs = append(itemIDs, id.String())
		}
		response.Redistributions = append(response.Redistributions, RedistributionSuggestion{
			FromStationID:         r.FromStationID.String(),
			ToStationID:           r.ToStationID.String(),
			ItemIDs:               itemIDs,
			EstimatedMinutesSaved: r.EstimatedMinutesSaved,
			Priority:              r.Priority,
		})
	}

	for _, c := range result.Result.CrossTraining {
		response.CrossTraining = append(response.CrossTraining, CrossTrainingSuggestion{
			StaffName:             c.StaffName,
			TargetStationID:       c.TargetStationID.String(),
			StationType:           string(c.StationType),
			SkillGap:              c.SkillGap,
			EstimatedTrainingDays: c.EstimatedTrainingDays,
		})
	}

	return response
}

// commandError maps command failures onto HTTP statuses: missing aggregates
// become 404, illegal transitions and validation findings become 409, and
// everything else is a 500.
func commandError(ctx echo.Context, err error) error {
	var transitionErr *kitchenorder.TransitionError
	var itemTransitionErr *kitchenorder.ItemTransitionError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return notFound(ctx, err.Error())
	case errors.As(err, &transitionErr), errors.As(err, &itemTransitionErr),
		errors.Is(err, ports.ErrVersionConflict),
		errors.Is(err, commands.ErrAssignmentBlocked),
		errors.Is(err, commands.ErrManualAssignmentRequired):
		return conflict(ctx, err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return badRequest(ctx, err.Error())
	default:
		return internalError(ctx, err.Error())
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{Code: http.StatusInternalServerError, Message: message})
}
