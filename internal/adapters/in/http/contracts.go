package http

import "time"

// Error is the JSON body returned on every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// KitchenOrderSummary is one row of the active kitchen orders listing.
type KitchenOrderSummary struct {
	ID                  string     `json:"id"`
	OrderID             string     `json:"order_id"`
	Status              string     `json:"status"`
	Priority            string     `json:"priority"`
	EstimatedCompletion time.Time  `json:"estimated_completion"`
	ActualStart         *time.Time `json:"actual_start,omitempty"`
	TotalItems          int        `json:"total_items"`
	CompletedItems      int        `json:"completed_items"`
}

// StationWorkload is one row of the station load listing.
type StationWorkload struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	StationType          string  `json:"station_type"`
	Status               string  `json:"status"`
	Capacity             int     `json:"capacity"`
	Workload             int     `json:"workload"`
	Utilization          float64 `json:"utilization"`
	EstimatedWaitMinutes int     `json:"estimated_wait_minutes"`
}

// AssignmentSuggestion is one advisory placement in a proposal batch.
type AssignmentSuggestion struct {
	ItemID               string  `json:"item_id"`
	KitchenOrderID       string  `json:"kitchen_order_id"`
	StationID            string  `json:"station_id"`
	StationName          string  `json:"station_name"`
	Confidence           float64 `json:"confidence"`
	Reason               string  `json:"reason"`
	EstimatedWaitMinutes int     `json:"estimated_wait_minutes"`
	ProjectedUtilization float64 `json:"projected_utilization"`
	SpecializationMatch  bool    `json:"specialization_match"`
	EquipmentMatch       bool    `json:"equipment_match"`
}

// ManualItem is an item no station could take, flagged for human routing.
type ManualItem struct {
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}

// OverloadWarning flags a station the proposal batch would push past its
// comfortable utilization.
type OverloadWarning struct {
	StationID            string  `json:"station_id"`
	StationName          string  `json:"station_name"`
	Severity             string  `json:"severity"`
	ProjectedUtilization float64 `json:"projected_utilization"`
	Message              string  `json:"message"`
}

// RedistributionSuggestion proposes moving proposed work between stations.
type RedistributionSuggestion struct {
	FromStationID         string   `json:"from_station_id"`
	ToStationID           string   `json:"to_station_id"`
	ItemIDs               []string `json:"item_ids"`
	EstimatedMinutesSaved int      `json:"estimated_minutes_saved"`
	Priority              string   `json:"priority"`
}

// CrossTrainingSuggestion flags a skill bottleneck worth training for.
type CrossTrainingSuggestion struct {
	StaffName             string   `json:"staff_name"`
	TargetStationID       string   `json:"target_station_id"`
	StationType           string   `json:"station_type"`
	SkillGap              []string `json:"skill_gap"`
	EstimatedTrainingDays int      `json:"estimated_training_days"`
}

// AssignmentProposals is the full advisory batch for a tenant.
type AssignmentProposals struct {
	GeneratedAt     time.Time                  `json:"generated_at"`
	Suggestions     []AssignmentSuggestion     `json:"suggestions"`
	ManualItems     []ManualItem               `json:"manual_items,omitempty"`
	Overloads       []OverloadWarning          `json:"overloads,omitempty"`
	Redistributions []RedistributionSuggestion `json:"redistributions,omitempty"`
	CrossTraining   []CrossTrainingSuggestion  `json:"cross_training,omitempty"`
}

// Finding is one consistency check observation.
type Finding struct {
	Check   string `json:"check"`
	Message string `json:"message"`
}

// AuditReport is the on-demand consistency audit of one kitchen order.
type AuditReport struct {
	KitchenOrderID string    `json:"kitchen_order_id"`
	IsValid        bool      `json:"is_valid"`
	Errors         []Finding `json:"errors,omitempty"`
	Warnings       []Finding `json:"warnings,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// ChangeStatusRequest asks for an order-level transition.
type ChangeStatusRequest struct {
	Target               string `json:"target"`
	Actor                string `json:"actor"`
	DelayEstimateMinutes *int   `json:"delay_estimate_minutes,omitempty"`
}

// ChangeItemStatusRequest asks for an item-level transition.
type ChangeItemStatusRequest struct {
	Target string `json:"target"`
}

// AcceptAssignmentRequest commits a proposed station placement.
type AcceptAssignmentRequest struct {
	StationID  string `json:"station_id"`
	AcceptedBy string `json:"accepted_by"`
}

// ReportQualityIssueRequest files a quality problem against an order or item.
type ReportQualityIssueRequest struct {
	ItemID   string `json:"item_id,omitempty"`
	Severity string `json:"severity"`
	Note     string `json:"note,omitempty"`
}
