package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kosthub/kosthub/internal/domain"
)

// NotificationRepository implements domain.NotificationRepository using SQLite.
type NotificationRepository struct {
	db *sql.DB
}

// Compile-time check: NotificationRepository implements domain.NotificationRepository.
var _ domain.NotificationRepository = (*NotificationRepository)(nil)

// NewNotificationRepository wraps an open database connection.
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Insert(ctx context.Context, n domain.Notification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, title, message, link, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.Link, boolToInt(n.IsRead),
		n.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// insertNotificationTx inserts a notification inside an open transaction.
// Used by the transition writes in the booking, payment and contract
// repositories.
func insertNotificationTx(ctx context.Context, tx *sql.Tx, n domain.Notification) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, title, message, link, is_read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.Link, boolToInt(n.IsRead),
		n.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}
	return nil
}

// ListByUser returns the user's notifications created after the since
// cursor, newest first. ISO-8601 strings compare lexicographically, so the
// zero time naturally means "everything".
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, since time.Time, limit int) ([]domain.Notification, error) {
	query := `SELECT id, user_id, title, message, link, is_read, created_at
		 FROM notifications WHERE user_id = ? AND created_at > ?
		 ORDER BY created_at DESC`
	args := []any{userID, since.UTC().Format(timeFormat)}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var isRead int
		var createdAt string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Link, &isRead, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		n.IsRead = isRead != 0
		n.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead flags one of the user's notifications as read. A row owned by
// another user reads as not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead flags all of the user's unread notifications as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return rows, nil
}
