package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/untibullet/syncflow/internal/models"
)

const defaultActivityLimit = 20

// GetRecentActivities returns the newest activities, capped at limit
// (defaulting when the caller passes zero or less)
func (r *Repository) GetRecentActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	query := `
        SELECT id, user_id, action, target, created_at
        FROM activities
        ORDER BY created_at DESC
        LIMIT $1
    `
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Target, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, rows.Err()
}

// CreateActivity appends one audit record
func (r *Repository) CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error) {
	activity.ID = uuid.NewString()

	query := `
        INSERT INTO activities (id, user_id, action, target)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, query, activity.ID, activity.UserID, activity.Action, activity.Target).
		Scan(&activity.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return &activity, nil
}

// insertActivity appends an audit record inside a caller-owned transaction
func insertActivity(ctx context.Context, tx pgx.Tx, userID, action, target string) error {
	query := `INSERT INTO activities (id, user_id, action, target) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, uuid.NewString(), userID, action, target); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}
