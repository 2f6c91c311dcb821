package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/untibullet/syncflow/internal/models"
)

const adrColumns = `id, title, status, summary, author_id, tags, created_at, updated_at`

func scanAdr(row pgx.Row, a *models.Adr) error {
	return row.Scan(&a.ID, &a.Title, &a.Status, &a.Summary, &a.AuthorID,
		&a.Tags, &a.CreatedAt, &a.UpdatedAt)
}

// GetAllAdrs returns every ADR, newest first
func (r *Repository) GetAllAdrs(ctx context.Context) ([]models.Adr, error) {
	query := fmt.Sprintf(`SELECT %s FROM adrs ORDER BY created_at DESC`, adrColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get ADRs: %w", err)
	}
	defer rows.Close()

	var adrs []models.Adr
	for rows.Next() {
		var a models.Adr
		if err := scanAdr(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan ADR: %w", err)
		}
		adrs = append(adrs, a)
	}

	return adrs, rows.Err()
}

// GetAdr returns an ADR by ID
func (r *Repository) GetAdr(ctx context.Context, id string) (*models.Adr, error) {
	query := fmt.Sprintf(`SELECT %s FROM adrs WHERE id = $1`, adrColumns)

	var a models.Adr
	err := scanAdr(r.pool.QueryRow(ctx, query, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ADR: %w", err)
	}

	return &a, nil
}

// CreateAdr persists a new ADR and records a "proposed" activity for the author
// in the same transaction
func (r *Repository) CreateAdr(ctx context.Context, adr models.Adr) (*models.Adr, error) {
	adr.ID = uuid.NewString()
	if adr.Tags == nil {
		adr.Tags = []string{}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO adrs (id, title, status, summary, author_id, tags)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at, updated_at
    `
	err = tx.QueryRow(ctx, query, adr.ID, adr.Title, adr.Status, adr.Summary,
		adr.AuthorID, adr.Tags).Scan(&adr.CreatedAt, &adr.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrInvalidInput
		}
		return nil, fmt.Errorf("failed to create ADR: %w", err)
	}

	if err := insertActivity(ctx, tx, adr.AuthorID, "proposed", adr.Title); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &adr, nil
}

// UpdateAdr merges the supplied fields into an existing ADR and refreshes
// updated_at
func (r *Repository) UpdateAdr(ctx context.Context, id string, upd models.AdrUpdate) (*models.Adr, error) {
	set := []string{"updated_at = NOW()"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if upd.Title != nil {
		set = append(set, "title = "+arg(*upd.Title))
	}
	if upd.Status != nil {
		set = append(set, "status = "+arg(*upd.Status))
	}
	if upd.Summary != nil {
		set = append(set, "summary = "+arg(*upd.Summary))
	}
	if upd.Tags != nil {
		set = append(set, "tags = "+arg(*upd.Tags))
	}

	query := fmt.Sprintf(`UPDATE adrs SET %s WHERE id = %s RETURNING %s`,
		strings.Join(set, ", "), arg(id), adrColumns)

	var a models.Adr
	err := scanAdr(r.pool.QueryRow(ctx, query, args...), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update ADR: %w", err)
	}

	return &a, nil
}
