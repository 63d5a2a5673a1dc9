package domain

import "time"

// Notification is a message addressed to a user, created as a side effect of
// domain transitions. Rows are never mutated except for the read flag;
// consumers discover new rows by polling with a since cursor.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Link      string
	IsRead    bool
	CreatedAt time.Time
}

// NewNotification creates an unread notification.
func NewNotification(id, userID, title, message, link string) Notification {
	return Notification{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Message:   message,
		Link:      link,
		CreatedAt: time.Now().UTC(),
	}
}
