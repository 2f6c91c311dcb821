package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/untibullet/syncflow/internal/models"
)

// GetAllColumns returns all board columns ordered by position. Positions are an
// opaque sort key with no uniqueness constraint; ties break by creation order.
func (r *Repository) GetAllColumns(ctx context.Context) ([]models.Column, error) {
	query := `
        SELECT id, title, position, created_at
        FROM columns
        ORDER BY position, created_at
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var c models.Column
		if err := rows.Scan(&c.ID, &c.Title, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}

	return columns, rows.Err()
}

// CreateColumn persists a new column
func (r *Repository) CreateColumn(ctx context.Context, column models.Column) (*models.Column, error) {
	column.ID = uuid.NewString()

	query := `
        INSERT INTO columns (id, title, position)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, query, column.ID, column.Title, column.Position).Scan(&column.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create column: %w", err)
	}

	return &column, nil
}

// DeleteColumn removes a column; its tasks go with it via the cascade.
// Deleting a missing id is a no-op.
func (r *Repository) DeleteColumn(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM columns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
	}
	return nil
}
