package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/untibullet/syncflow/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

// Store is the persistence contract the HTTP layer depends on. All entities are
// created, mutated and deleted exclusively through these operations.
type Store interface {
	// Users
	GetAllUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUserStatus(ctx context.Context, id, status string) error

	// Columns
	GetAllColumns(ctx context.Context) ([]models.Column, error)
	CreateColumn(ctx context.Context, column models.Column) (*models.Column, error)
	DeleteColumn(ctx context.Context, id string) error

	// Tasks
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	GetTasksByColumn(ctx context.Context, columnID string) ([]models.Task, error)
	CreateTask(ctx context.Context, task models.Task, actorID string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate, movedBy string) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	UpdateTaskViewers(ctx context.Context, id string, viewerIDs []string) error

	// ADRs
	GetAllAdrs(ctx context.Context) ([]models.Adr, error)
	GetAdr(ctx context.Context, id string) (*models.Adr, error)
	CreateAdr(ctx context.Context, adr models.Adr) (*models.Adr, error)
	UpdateAdr(ctx context.Context, id string, upd models.AdrUpdate) (*models.Adr, error)

	// PR reviews
	GetAllPrReviews(ctx context.Context) ([]models.PrReview, error)
	GetPrReview(ctx context.Context, id string) (*models.PrReview, error)
	CreatePrReview(ctx context.Context, pr models.PrReview) (*models.PrReview, error)
	CreateAnalyzedReview(ctx context.Context, pr models.PrReview, notification models.Notification) (*models.PrReview, error)

	// Activities
	GetRecentActivities(ctx context.Context, limit int) ([]models.Activity, error)
	CreateActivity(ctx context.Context, activity models.Activity) (*models.Activity, error)

	// Notifications
	GetNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadNotificationCount(ctx context.Context, userID string) (int, error)
	CreateNotification(ctx context.Context, notification models.Notification) (*models.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error

	// Board
	GetBoard(ctx context.Context) ([]models.BoardColumn, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Store = (*Repository)(nil)

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint error
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key error,
// e.g. a task referencing a column that does not exist
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
