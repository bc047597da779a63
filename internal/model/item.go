package model

import "time"

// Item represents a reported lost object tracked by the portal.
type Item struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	LocationLost string    `json:"location_lost,omitempty"`
	DateLost     string    `json:"date_lost,omitempty"`
	PhotoMime    string    `json:"photo_mime,omitempty"`
	Status       string    `json:"status"`
	AddedBy      *int64    `json:"added_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	AddedByName string `json:"added_by_name,omitempty"`
}

// Item statuses. An item transitions lost -> claimed exactly once and
// never back.
const (
	ItemStatusLost    = "lost"
	ItemStatusClaimed = "claimed"
)

// ValidItemStatus reports whether status is a known item status.
func ValidItemStatus(status string) bool {
	return status == ItemStatusLost || status == ItemStatusClaimed
}
