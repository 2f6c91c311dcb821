package database

import (
	"context"
	"fmt"

	"github.com/untibullet/syncflow/internal/models"
	"github.com/untibullet/syncflow/internal/repository"
)

func strPtr(s string) *string { return &s }

// Seed fills an empty database with a demo data set. Already-populated
// databases are left untouched.
func Seed(ctx context.Context, repo *repository.Repository) error {
	existing, err := repo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	alex, err := repo.CreateUser(ctx, models.User{
		Name: "Alex Chen", Email: "alex@syncflow.com",
		Avatar: strPtr("https://i.pravatar.cc/150?u=u1"),
		Role:   models.RoleArchitect, Timezone: "America/Los_Angeles",
		UTCOffset: -8, Status: models.StatusOnline,
	})
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	sarah, err := repo.CreateUser(ctx, models.User{
		Name: "Sarah Jones", Email: "sarah@syncflow.com",
		Avatar: strPtr("https://i.pravatar.cc/150?u=u2"),
		Role:   models.RoleEngineer, Timezone: "Europe/London",
		UTCOffset: 0, Status: models.StatusOnline,
	})
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	mike, err := repo.CreateUser(ctx, models.User{
		Name: "Mike Ross", Email: "mike@syncflow.com",
		Avatar: strPtr("https://i.pravatar.cc/150?u=u3"),
		Role:   models.RoleReviewer, Timezone: "Asia/Tokyo",
		UTCOffset: 9, Status: models.StatusIdle,
	})
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if _, err := repo.CreateUser(ctx, models.User{
		Name: "Jessica Pearson", Email: "jessica@syncflow.com",
		Avatar: strPtr("https://i.pravatar.cc/150?u=u4"),
		Role:   models.RoleEngineer, Timezone: "America/New_York",
		UTCOffset: -5, Status: models.StatusOnline,
	}); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	titles := []string{"Backlog", "In Progress", "Review", "Done"}
	columns := make([]*models.Column, 0, len(titles))
	for i, title := range titles {
		col, err := repo.CreateColumn(ctx, models.Column{Title: title, Position: i})
		if err != nil {
			return fmt.Errorf("failed to seed columns: %w", err)
		}
		columns = append(columns, col)
	}

	tasks := []models.Task{
		{
			Title:       "Research Competitor Analysis",
			Description: "Deep dive into Q4 strategies of main competitors.",
			Tag:         models.TagProduct, Priority: models.PriorityLow,
			ColumnID: columns[0].ID, AssignedTo: []string{mike.ID}, Comments: 2,
		},
		{
			Title:       "Update API Documentation",
			Description: "Reflect recent changes in the auth endpoints.",
			Tag:         models.TagEngineering, Priority: models.PriorityMedium,
			ColumnID: columns[0].ID, AssignedTo: []string{sarah.ID}, Comments: 0,
		},
		{
			Title:       "Implement OAuth2 Flow",
			Description: "Add support for Google and GitHub providers.",
			Tag:         models.TagEngineering, Priority: models.PriorityHigh,
			ColumnID: columns[1].ID, AssignedTo: []string{sarah.ID, alex.ID}, Comments: 5,
		},
		{
			Title:       "Design New Dashboard Layout",
			Description: "Revamp widgets and improve mobile responsiveness.",
			Tag:         models.TagDesign, Priority: models.PriorityMedium,
			ColumnID: columns[2].ID, AssignedTo: []string{alex.ID}, Comments: 3,
		},
	}
	for _, t := range tasks {
		if _, err := repo.CreateTask(ctx, t, ""); err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
	}

	if _, err := repo.CreateAdr(ctx, models.Adr{
		Title:   "Use PostgreSQL for primary storage",
		Status:  models.AdrAccepted,
		Summary: "Relational integrity and jsonb flexibility cover every entity in the platform.",
		AuthorID: alex.ID,
		Tags:     []string{"database", "infrastructure"},
	}); err != nil {
		return fmt.Errorf("failed to seed ADRs: %w", err)
	}

	if _, err := repo.CreatePrReview(ctx, models.PrReview{
		Title:     "Add rate limiting to public API",
		AuthorID:  sarah.ID,
		RiskLevel: models.RiskMedium,
		Summary:   "Introduces a token bucket limiter in front of the public endpoints.",
		Checklist: models.Checklist{
			{ID: "c1", Text: "Verify limiter configuration defaults", Checked: false},
			{ID: "c2", Text: "Check burst handling under load", Checked: false},
		},
	}); err != nil {
		return fmt.Errorf("failed to seed PR reviews: %w", err)
	}

	if _, err := repo.CreateNotification(ctx, models.Notification{
		UserID: sarah.ID,
		Type:   "task_assigned",
		Title:  "New task assigned",
		Message: "You were assigned to \"Implement OAuth2 Flow\".",
		Link:    strPtr("/board"),
	}); err != nil {
		return fmt.Errorf("failed to seed notifications: %w", err)
	}

	return nil
}
