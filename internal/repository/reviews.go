package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/untibullet/syncflow/internal/models"
)

const reviewColumns = `id, title, author_id, risk_level, summary, checklist, created_at`

func scanReview(row pgx.Row, pr *models.PrReview) error {
	return row.Scan(&pr.ID, &pr.Title, &pr.AuthorID, &pr.RiskLevel, &pr.Summary,
		&pr.Checklist, &pr.CreatedAt)
}

// GetAllPrReviews returns every PR review, newest first
func (r *Repository) GetAllPrReviews(ctx context.Context) ([]models.PrReview, error) {
	query := fmt.Sprintf(`SELECT %s FROM pr_reviews ORDER BY created_at DESC`, reviewColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.PrReview
	for rows.Next() {
		var pr models.PrReview
		if err := scanReview(rows, &pr); err != nil {
			return nil, fmt.Errorf("failed to scan PR review: %w", err)
		}
		reviews = append(reviews, pr)
	}

	return reviews, rows.Err()
}

// GetPrReview returns a PR review by ID
func (r *Repository) GetPrReview(ctx context.Context, id string) (*models.PrReview, error) {
	query := fmt.Sprintf(`SELECT %s FROM pr_reviews WHERE id = $1`, reviewColumns)

	var pr models.PrReview
	err := scanReview(r.pool.QueryRow(ctx, query, id), &pr)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get PR review: %w", err)
	}

	return &pr, nil
}

// insertReview persists a review inside a caller-owned transaction
func insertReview(ctx context.Context, tx pgx.Tx, pr *models.PrReview) error {
	pr.ID = uuid.NewString()
	if pr.Checklist == nil {
		pr.Checklist = models.Checklist{}
	}

	query := `
        INSERT INTO pr_reviews (id, title, author_id, risk_level, summary, checklist)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `
	err := tx.QueryRow(ctx, query, pr.ID, pr.Title, pr.AuthorID, pr.RiskLevel,
		pr.Summary, pr.Checklist).Scan(&pr.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrInvalidInput
		}
		return fmt.Errorf("failed to create PR review: %w", err)
	}

	return nil
}

// CreatePrReview persists a manually submitted review and records a
// "submitted PR" activity for the author in the same transaction
func (r *Repository) CreatePrReview(ctx context.Context, pr models.PrReview) (*models.PrReview, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertReview(ctx, tx, &pr); err != nil {
		return nil, err
	}
	if err := insertActivity(ctx, tx, pr.AuthorID, "submitted PR", pr.Title); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &pr, nil
}

// CreateAnalyzedReview persists the result of an AI analysis: the review row,
// an "analyzed PR" activity and the author's notification commit or roll back
// as one unit, so a saved review is never missing its notification.
func (r *Repository) CreateAnalyzedReview(ctx context.Context, pr models.PrReview, notification models.Notification) (*models.PrReview, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertReview(ctx, tx, &pr); err != nil {
		return nil, err
	}
	if err := insertActivity(ctx, tx, pr.AuthorID, "analyzed PR", pr.Title); err != nil {
		return nil, err
	}

	notifQuery := `
        INSERT INTO notifications (id, user_id, type, title, message, link, read)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = tx.Exec(ctx, notifQuery, uuid.NewString(), notification.UserID,
		notification.Type, notification.Title, notification.Message, notification.Link, notification.Read)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &pr, nil
}
