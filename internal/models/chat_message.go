package models

import "time"

// ChatMessage is append-only; messages are never edited or deleted
// individually (they go away with their auction or author).
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AuctionID string    `json:"auction_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`

	// Username is denormalized for display; populated on create and on
	// history reads, not stored on the row.
	Username string `json:"username,omitempty"`
}
