package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/untibullet/syncflow/internal/models"
)

// GetAllUsers returns every user
func (r *Repository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := `
        SELECT id, name, email, avatar, role, timezone, utc_offset, status, created_at
        FROM users
        ORDER BY created_at
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.Role,
			&u.Timezone, &u.UTCOffset, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// GetUser returns a user by ID
func (r *Repository) GetUser(ctx context.Context, id string) (*models.User, error) {
	query := `
        SELECT id, name, email, avatar, role, timezone, utc_offset, status, created_at
        FROM users
        WHERE id = $1
    `
	var u models.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar,
		&u.Role, &u.Timezone, &u.UTCOffset, &u.Status, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

// CreateUser persists a new user. Returns ErrAlreadyExists when the email is taken.
func (r *Repository) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.NewString()

	query := `
        INSERT INTO users (id, name, email, avatar, role, timezone, utc_offset, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, query, user.ID, user.Name, user.Email, user.Avatar,
		user.Role, user.Timezone, user.UTCOffset, user.Status).Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// UpdateUserStatus sets the presence status of a user
func (r *Repository) UpdateUserStatus(ctx context.Context, id, status string) error {
	if !models.ValidUserStatus(status) {
		return ErrInvalidInput
	}

	query := `UPDATE users SET status = $1 WHERE id = $2`
	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
