package domain

import "time"

// Message is immutable once created.
// UserID is a lookup key, the account does not own its messages.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
