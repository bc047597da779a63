package model

import "time"

// AuditRecord is an immutable log entry capturing a state-changing admin
// action. Records are append-only and never mutated or deleted.
type AuditRecord struct {
	ID          int64     `json:"id"`
	EventID     string    `json:"event_id"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	AdminID     int64     `json:"admin_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Joined fields (not always populated).
	AdminName string `json:"admin_name,omitempty"`
}

// Audit action types.
const (
	ActionItemAdded     = "item_added"
	ActionItemUpdated   = "item_updated"
	ActionItemDeleted   = "item_deleted"
	ActionItemClaimed   = "item_claimed"
	ActionClaimApproved = "claim_approved"
	ActionClaimRejected = "claim_rejected"
)
