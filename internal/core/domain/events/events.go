// Package events defines the facts the kitchen core exchanges with its
// collaborators: the order-confirmation fact it consumes and the production
// events it publishes. These are the only vocabulary shared with the Ordering
// domain; no component besides the event bridge reads or writes commercial
// order fields directly.
package events

import "time"

// Subjects for the outbound kitchen events and the inbound confirmation fact.
const (
	SubjectOrderConfirmed            = "orders.confirmed"
	SubjectContractCreated           = "kitchen.contract.created"
	SubjectKitchenOrderCreated       = "kitchen.order.created"
	SubjectPreparationStarted        = "kitchen.preparation.started"
	SubjectPreparationCompleted      = "kitchen.preparation.completed"
	SubjectStationAssignmentAccepted = "kitchen.assignment.accepted"
	SubjectQualityIssueReported      = "kitchen.quality.issue"
	SubjectIngredientConsumed        = "kitchen.ingredient.consumed"
	SubjectAssignmentProposals       = "kitchen.assignment.proposals"
)

// OrderLine is one line of a confirmed commercial order.
type OrderLine struct {
	ProductID     string   `json:"product_id"`
	RecipeID      string   `json:"recipe_id"`
	RecipeVersion int      `json:"recipe_version"`
	Quantity      int      `json:"quantity"`
	Modifications []string `json:"modifications,omitempty"`
}

// OrderConfirmed is the order-confirmation fact owned by the Ordering
// collaborator. Redelivery happens; contract generation is idempotent keyed by
// (OrderID, Version).
type OrderConfirmed struct {
	OrderID    string      `json:"order_id"`
	TenantID   string      `json:"tenant_id"`
	Version    int         `json:"version"`
	Priority   string      `json:"priority,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Lines      []OrderLine `json:"lines"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// ContractItem is the wire form of one production item.
type ContractItem struct {
	ItemID        string   `json:"item_id"`
	RecipeID      string   `json:"recipe_id"`
	RecipeVersion int      `json:"recipe_version"`
	ProductID     string   `json:"product_id"`
	Quantity      int      `json:"quantity"`
	Modifications []string `json:"modifications,omitempty"`
	Allergens     []string `json:"allergens,omitempty"`
}

// ProductionContractCreated announces a freshly generated production contract.
type ProductionContractCreated struct {
	ContractID          string         `json:"contract_id"`
	OrderID             string         `json:"order_id"`
	TenantID            string         `json:"tenant_id"`
	Version             int            `json:"version"`
	Priority            string         `json:"priority"`
	SpecialInstructions string         `json:"special_instructions,omitempty"`
	EstimatedCompletion time.Time      `json:"estimated_completion"`
	Items               []ContractItem `json:"items"`
	OccurredAt          time.Time      `json:"occurred_at"`
}

// KitchenOrderCreated announces the production unit derived from a contract.
type KitchenOrderCreated struct {
	KitchenOrderID   string    `json:"kitchen_order_id"`
	ContractID       string    `json:"contract_id"`
	TenantID         string    `json:"tenant_id"`
	CommercialStatus string    `json:"commercial_status"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// PreparationStarted announces that stations began working an order.
type PreparationStarted struct {
	KitchenOrderID   string    `json:"kitchen_order_id"`
	StartedAt        time.Time `json:"started_at"`
	CommercialStatus string    `json:"commercial_status"`
}

// PreparationCompleted announces that an order reached ready_for_pickup.
type PreparationCompleted struct {
	KitchenOrderID   string    `json:"kitchen_order_id"`
	CompletedAt      time.Time `json:"completed_at"`
	CommercialStatus string    `json:"commercial_status"`
}

// StationAssignmentAccepted announces a committed station assignment.
type StationAssignmentAccepted struct {
	KitchenOrderID string    `json:"kitchen_order_id"`
	ItemID         string    `json:"item_id"`
	StationID      string    `json:"station_id"`
	AcceptedBy     string    `json:"accepted_by,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// QualityIssueReported surfaces a preparation quality problem.
type QualityIssueReported struct {
	KitchenOrderID string    `json:"kitchen_order_id"`
	ItemID         string    `json:"item_id,omitempty"`
	Severity       string    `json:"severity"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ProposalSuggestion is the wire form of one advisory station placement.
type ProposalSuggestion struct {
	ItemID               string  `json:"item_id"`
	KitchenOrderID       string  `json:"kitchen_order_id"`
	StationID            string  `json:"station_id"`
	StationName          string  `json:"station_name"`
	Confidence           float64 `json:"confidence"`
	EstimatedWaitMinutes int     `json:"estimated_wait_minutes"`
}

// AssignmentProposalsGenerated broadcasts an advisory proposal batch for a
// tenant. Nothing in it is committed; operators accept individual placements
// through the assignment command.
type AssignmentProposalsGenerated struct {
	TenantID             string               `json:"tenant_id"`
	Suggestions          []ProposalSuggestion `json:"suggestions"`
	ManualItemIDs        []string             `json:"manual_item_ids,omitempty"`
	OverloadedStationIDs []string             `json:"overloaded_station_ids,omitempty"`
	GeneratedAt          time.Time            `json:"generated_at"`
}

// IngredientConsumed is a fact for the Inventory collaborator to apply;
// the kitchen core never writes inventory data directly.
type IngredientConsumed struct {
	KitchenOrderID string    `json:"kitchen_order_id"`
	IngredientID   string    `json:"ingredient_id"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
