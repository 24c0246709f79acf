package suggestions

import "time"

// Suggestion is a free-text feedback item. From holds a denormalized copy
// of the submitting user's codename at submission time, not a live
// reference.
type Suggestion struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	From      string    `json:"from"`
	UserID    int       `json:"userId"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}
