package repository

import (
	"context"

	"github.com/untibullet/syncflow/internal/models"
	"golang.org/x/sync/errgroup"
)

// GetBoard composes the nested board view. Columns and tasks are fetched
// concurrently; the two reads are independent, so the result is not one atomic
// snapshot. A few milliseconds of skew between them is acceptable for this
// view. Grouping preserves column order and the newest-first task order.
func (r *Repository) GetBoard(ctx context.Context) ([]models.BoardColumn, error) {
	var (
		columns []models.Column
		tasks   []models.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		columns, err = r.GetAllColumns(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = r.GetAllTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return models.BuildBoard(columns, tasks), nil
}
