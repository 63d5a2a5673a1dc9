package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// NotificationService exposes the pull side of the notification dispatcher.
// Rows are created by transition writes; consumers poll with a since cursor.
type NotificationService struct {
	notifications domain.NotificationRepository
}

// NewNotificationService creates a service with the given repository.
func NewNotificationService(notifications domain.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// Notify records a notification addressed to a user. It is a pure insert
// with no delivery guarantee beyond row persistence.
func (s *NotificationService) Notify(ctx context.Context, userID, title, message, link string) (domain.Notification, error) {
	id, err := generateID()
	if err != nil {
		return domain.Notification{}, fmt.Errorf("generating notification id: %w", err)
	}

	note := domain.NewNotification(id, userID, title, message, link)
	if err := s.notifications.Insert(ctx, note); err != nil {
		return domain.Notification{}, fmt.Errorf("inserting notification: %w", err)
	}
	return note, nil
}

// List returns the actor's notifications created after the since cursor,
// newest first. A zero since returns everything.
func (s *NotificationService) List(ctx context.Context, actor domain.Actor, since time.Time, limit int) ([]domain.Notification, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.notifications.ListByUser(ctx, actor.ID, since, limit)
}

// MarkRead flags one of the actor's notifications as read. Rows owned by
// someone else read as not found.
func (s *NotificationService) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	if actor.ID == "" {
		return domain.ErrUnauthorized
	}
	return s.notifications.MarkRead(ctx, actor.ID, id)
}

// MarkAllRead flags all of the actor's unread notifications as read and
// returns how many rows changed.
func (s *NotificationService) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	if actor.ID == "" {
		return 0, domain.ErrUnauthorized
	}
	return s.notifications.MarkAllRead(ctx, actor.ID)
}
