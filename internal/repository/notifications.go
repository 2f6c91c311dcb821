package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/untibullet/syncflow/internal/models"
)

const notificationLimit = 50

// GetNotifications returns the newest notifications for one user, capped at 50
func (r *Repository) GetNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	query := `
        SELECT id, user_id, type, title, message, link, read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.pool.Query(ctx, query, userID, notificationLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// GetUnreadNotificationCount returns how many unread notifications a user has
func (r *Repository) GetUnreadNotificationCount(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = false`

	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// CreateNotification persists a new notification
func (r *Repository) CreateNotification(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	notification.ID = uuid.NewString()

	query := `
        INSERT INTO notifications (id, user_id, type, title, message, link, read)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, query, notification.ID, notification.UserID,
		notification.Type, notification.Title, notification.Message,
		notification.Link, notification.Read).Scan(&notification.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return &notification, nil
}

// MarkNotificationRead flags one notification as read
func (r *Repository) MarkNotificationRead(ctx context.Context, id string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkAllNotificationsRead flags every notification of one user as read in a
// single statement; other users' notifications are untouched
func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = true WHERE user_id = $1 AND read = false`
	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
