package station

import (
	"kitchen/internal/core/domain/model/kernel"
)

// Severity grades advisory findings emitted by the assignment engine.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AssignmentSuggestion proposes a station for one kitchen order item.
// It is advisory: nothing is committed until a human or an upstream policy
// accepts it, at which point the state machine records the item as assigned.
type AssignmentSuggestion struct {
	ItemID               kernel.UUID
	StationID            kernel.UUID
	StationName          string
	Confidence           float64 // 0..100
	Reason               string
	EstimatedWaitMinutes int
	ProjectedUtilization float64
	SpecializationMatch  bool
	EquipmentMatch       bool
}

// OverloadWarning is raised when a tentative selection pushes a station's
// projected utilization past a configured threshold.
type OverloadWarning struct {
	StationID            kernel.UUID
	StationName          string
	Severity             Severity
	ProjectedUtilization float64
	Message              string
}

// RedistributionSuggestion proposes moving pending work from an overloaded
// station to a compatible under-utilized one. Never auto-applied.
type RedistributionSuggestion struct {
	FromStationID         kernel.UUID
	ToStationID           kernel.UUID
	ItemIDs               []kernel.UUID
	EstimatedMinutesSaved int
	Priority              string
}

// CrossTrainingSuggestion flags a recurring skill/demand mismatch and proposes
// a staff member to train for a target station. Never auto-applied.
type CrossTrainingSuggestion struct {
	StaffName             string
	TargetStationID       kernel.UUID
	StationType           Type
	SkillGap              []string
	EstimatedTrainingDays int
}
