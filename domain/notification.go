package domain

import (
	"fmt"
	"time"
)

// Notification is recorded exactly once per created Message.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MessageID string    `json:"messageId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageNotificationText renders the content of the notification
// emitted when userID posts content.
func NewMessageNotificationText(userID, content string) string {
	return fmt.Sprintf("New message from user %s: %s", userID, content)
}
