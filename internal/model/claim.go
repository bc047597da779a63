package model

import "time"

// Claim represents a claimant's assertion of ownership over an item,
// pending admin adjudication.
type Claim struct {
	ID           int64     `json:"id"`
	ItemID       int64     `json:"item_id"`
	ClaimantName string    `json:"claimant_name"`
	CampusID     string    `json:"campus_id"`
	Course       string    `json:"course,omitempty"`
	Message      string    `json:"message,omitempty"`
	ProofMime    string    `json:"proof_mime,omitempty"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`

	// Joined fields (not always populated).
	ItemName   string `json:"item_name,omitempty"`
	ItemStatus string `json:"item_status,omitempty"`
}

// Claim statuses. A claim transitions exactly once from pending to either
// approved or rejected.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// ValidClaimStatus reports whether status is a known claim status.
func ValidClaimStatus(status string) bool {
	switch status {
	case ClaimStatusPending, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}
