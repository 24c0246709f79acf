package missions

import "time"

const (
	DefaultRequiredRank = "Initiate"
	DefaultStatus       = "Active"
)

// Mission is an admin-managed task descriptor.
type Mission struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	RequiredRank string    `json:"requiredRank"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}
