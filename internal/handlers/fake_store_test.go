package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/untibullet/syncflow/internal/models"
	"github.com/untibullet/syncflow/internal/repository"
)

// fakeStore is an in-memory Store with the same semantics as the SQL
// implementation: orderings, cascade delete, idempotent deletes and
// activity/notification side effects.
type fakeStore struct {
	seq           int
	users         []models.User
	columns       []models.Column
	tasks         []models.Task
	adrs          []models.Adr
	reviews       []models.PrReview
	activities    []models.Activity
	notifications []models.Notification
}

var _ repository.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (f *fakeStore) nextID() string {
	f.seq++
	return fmt.Sprintf("id-%d", f.seq)
}

func (f *fakeStore) nextTime() time.Time {
	// strictly increasing timestamps so newest-first ordering is deterministic
	return time.Unix(0, int64(f.seq)*int64(time.Millisecond))
}

// Users

func (f *fakeStore) GetAllUsers(context.Context) ([]models.User, error) {
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, repository.ErrAlreadyExists
		}
	}
	user.ID = f.nextID()
	user.CreatedAt = f.nextTime()
	f.users = append(f.users, user)
	return &user, nil
}

func (f *fakeStore) UpdateUserStatus(_ context.Context, id, status string) error {
	if !models.ValidUserStatus(status) {
		return repository.ErrInvalidInput
	}
	for i := range f.users {
		if f.users[i].ID == id {
			f.users[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

// Columns

func (f *fakeStore) GetAllColumns(context.Context) ([]models.Column, error) {
	out := append([]models.Column(nil), f.columns...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStore) CreateColumn(_ context.Context, column models.Column) (*models.Column, error) {
	column.ID = f.nextID()
	column.CreatedAt = f.nextTime()
	f.columns = append(f.columns, column)
	return &column, nil
}

func (f *fakeStore) DeleteColumn(_ context.Context, id string) error {
	kept := f.columns[:0]
	for _, c := range f.columns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.columns = kept

	keptTasks := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ColumnID != id {
			keptTasks = append(keptTasks, t)
		}
	}
	f.tasks = keptTasks
	return nil
}

// Tasks

func (f *fakeStore) GetAllTasks(context.Context) ([]models.Task, error) {
	out := append([]models.Task(nil), f.tasks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetTasksByColumn(_ context.Context, columnID string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) columnExists(id string) bool {
	for _, c := range f.columns {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (f *fakeStore) CreateTask(ctx context.Context, task models.Task, actorID string) (*models.Task, error) {
	if !f.columnExists(task.ColumnID) {
		return nil, repository.ErrInvalidInput
	}
	task.ID = f.nextID()
	task.CreatedAt = f.nextTime()
	task.UpdatedAt = task.CreatedAt
	if task.AssignedTo == nil {
		task.AssignedTo = []string{}
	}
	if task.ActiveViewers == nil {
		task.ActiveViewers = []string{}
	}
	f.tasks = append(f.tasks, task)
	if actorID != "" {
		f.appendActivity(actorID, "created", task.Title)
	}
	return &task, nil
}

func (f *fakeStore) UpdateTask(_ context.Context, id string, upd models.TaskUpdate, movedBy string) (*models.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		t := &f.tasks[i]
		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Tag != nil {
			t.Tag = *upd.Tag
		}
		if upd.Priority != nil {
			t.Priority = *upd.Priority
		}
		if upd.ColumnID != nil {
			if !f.columnExists(*upd.ColumnID) {
				return nil, repository.ErrInvalidInput
			}
			t.ColumnID = *upd.ColumnID
		}
		if upd.AssignedTo != nil {
			t.AssignedTo = *upd.AssignedTo
		}
		if upd.ActiveViewers != nil {
			t.ActiveViewers = *upd.ActiveViewers
		}
		if upd.Comments != nil {
			t.Comments = *upd.Comments
		}
		t.UpdatedAt = t.UpdatedAt.Add(time.Millisecond)
		if movedBy != "" {
			f.appendActivity(movedBy, "moved", t.Title)
		}
		out := *t
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) DeleteTask(_ context.Context, id string) error {
	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}

func (f *fakeStore) UpdateTaskViewers(_ context.Context, id string, viewerIDs []string) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].ActiveViewers = viewerIDs
			return nil
		}
	}
	return repository.ErrNotFound
}

// ADRs

func (f *fakeStore) GetAllAdrs(context.Context) ([]models.Adr, error) {
	out := append([]models.Adr(nil), f.adrs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetAdr(_ context.Context, id string) (*models.Adr, error) {
	for _, a := range f.adrs {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) CreateAdr(_ context.Context, adr models.Adr) (*models.Adr, error) {
	adr.ID = f.nextID()
	adr.CreatedAt = f.nextTime()
	adr.UpdatedAt = adr.CreatedAt
	if adr.Tags == nil {
		adr.Tags = []string{}
	}
	f.adrs = append(f.adrs, adr)
	f.appendActivity(adr.AuthorID, "proposed", adr.Title)
	return &adr, nil
}

func (f *fakeStore) UpdateAdr(_ context.Context, id string, upd models.AdrUpdate) (*models.Adr, error) {
	for i := range f.adrs {
		if f.adrs[i].ID != id {
			continue
		}
		a := &f.adrs[i]
		if upd.Title != nil {
			a.Title = *upd.Title
		}
		if upd.Status != nil {
			a.Status = *upd.Status
		}
		if upd.Summary != nil {
			a.Summary = *upd.Summary
		}
		if upd.Tags != nil {
			a.Tags = *upd.Tags
		}
		a.UpdatedAt = a.UpdatedAt.Add(time.Millisecond)
		out := *a
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

// PR reviews

func (f *fakeStore) GetAllPrReviews(context.Context) ([]models.PrReview, error) {
	out := append([]models.PrReview(nil), f.reviews...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) GetPrReview(_ context.Context, id string) (*models.PrReview, error) {
	for _, pr := range f.reviews {
		if pr.ID == id {
			out := pr
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStore) insertReview(pr models.PrReview) models.PrReview {
	pr.ID = f.nextID()
	pr.CreatedAt = f.nextTime()
	if pr.Checklist == nil {
		pr.Checklist = models.Checklist{}
	}
	f.reviews = append(f.reviews, pr)
	return pr
}

func (f *fakeStore) CreatePrReview(_ context.Context, pr models.PrReview) (*models.PrReview, error) {
	stored := f.insertReview(pr)
	f.appendActivity(stored.AuthorID, "submitted PR", stored.Title)
	return &stored, nil
}

func (f *fakeStore) CreateAnalyzedReview(_ context.Context, pr models.PrReview, notification models.Notification) (*models.PrReview, error) {
	stored := f.insertReview(pr)
	f.appendActivity(stored.AuthorID, "analyzed PR", stored.Title)
	notification.ID = f.nextID()
	notification.CreatedAt = f.nextTime()
	f.notifications = append(f.notifications, notification)
	return &stored, nil
}

// Activities

func (f *fakeStore) appendActivity(userID, action, target string) {
	f.activities = append(f.activities, models.Activity{
		ID: f.nextID(), UserID: userID, Action: action, Target: target, CreatedAt: f.nextTime(),
	})
}

func (f *fakeStore) GetRecentActivities(_ context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	out := append([]models.Activity(nil), f.activities...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CreateActivity(_ context.Context, activity models.Activity) (*models.Activity, error) {
	activity.ID = f.nextID()
	activity.CreatedAt = f.nextTime()
	f.activities = append(f.activities, activity)
	return &activity, nil
}

// Notifications

func (f *fakeStore) GetNotifications(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (f *fakeStore) GetUnreadNotificationCount(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateNotification(_ context.Context, notification models.Notification) (*models.Notification, error) {
	notification.ID = f.nextID()
	notification.CreatedAt = f.nextTime()
	f.notifications = append(f.notifications, notification)
	return &notification, nil
}

func (f *fakeStore) MarkNotificationRead(_ context.Context, id string) error {
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].Read = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) MarkAllNotificationsRead(_ context.Context, userID string) error {
	for i := range f.notifications {
		if f.notifications[i].UserID == userID {
			f.notifications[i].Read = true
		}
	}
	return nil
}

// Board

func (f *fakeStore) GetBoard(ctx context.Context) ([]models.BoardColumn, error) {
	columns, _ := f.GetAllColumns(ctx)
	tasks, _ := f.GetAllTasks(ctx)
	return models.BuildBoard(columns, tasks), nil
}
