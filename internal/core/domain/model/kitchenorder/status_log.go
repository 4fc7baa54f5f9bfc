package kitchenorder

import "time"

// StatusChange is one entry in a kitchen order's append-only audit trail.
// Entries are only ever appended, never edited or removed.
type StatusChange struct {
	From                 Status
	To                   Status
	Actor                string
	At                   time.Time
	DelayEstimateMinutes *int
}
