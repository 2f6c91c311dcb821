package handlers

import (
	"github.com/untibullet/syncflow/internal/ai"
	"github.com/untibullet/syncflow/internal/models"
)

type CreateUserRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Avatar    *string `json:"avatar"`
	Role      string  `json:"role" validate:"omitempty,oneof=Engineer Reviewer Architect"`
	Timezone  string  `json:"timezone"`
	UTCOffset int     `json:"utcOffset" validate:"gte=-12,lte=14"`
	Status    string  `json:"status" validate:"omitempty,oneof=online idle offline"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online idle offline"`
}

type CreateColumnRequest struct {
	Title    string `json:"title" validate:"required"`
	Position int    `json:"position" validate:"gte=0"`
}

type CreateTaskRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	Tag           string   `json:"tag" validate:"omitempty,oneof=Design Engineering Product Bug"`
	Priority      string   `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	ColumnID      string   `json:"columnId" validate:"required"`
	AssignedTo    []string `json:"assignedTo"`
	ActiveViewers []string `json:"activeViewers"`
	Comments      int      `json:"comments" validate:"gte=0"`

	// CreatedBy is the acting user; when present a "created" activity is
	// recorded alongside the task
	CreatedBy string `json:"createdBy"`
}

type UpdateTaskRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=1"`
	Description   *string   `json:"description"`
	Tag           *string   `json:"tag" validate:"omitempty,oneof=Design Engineering Product Bug"`
	Priority      *string   `json:"priority" validate:"omitempty,oneof=High Medium Low"`
	ColumnID      *string   `json:"columnId" validate:"omitempty,min=1"`
	AssignedTo    *[]string `json:"assignedTo"`
	ActiveViewers *[]string `json:"activeViewers"`
	Comments      *int      `json:"comments" validate:"omitempty,gte=0"`

	// MovedBy is the acting user; when present a "moved" activity is recorded
	// alongside the update
	MovedBy string `json:"movedBy"`
}

func (r UpdateTaskRequest) toUpdate() models.TaskUpdate {
	return models.TaskUpdate{
		Title:         r.Title,
		Description:   r.Description,
		Tag:           r.Tag,
		Priority:      r.Priority,
		ColumnID:      r.ColumnID,
		AssignedTo:    r.AssignedTo,
		ActiveViewers: r.ActiveViewers,
		Comments:      r.Comments,
	}
}

// UpdateTaskViewersRequest replaces the whole viewer list; an empty array is a
// valid value (nobody is looking), so presence is checked in the handler
// rather than with a required tag, which would reject empty slices.
type UpdateTaskViewersRequest struct {
	ViewerIDs []string `json:"viewerIds"`
}

type CreateAdrRequest struct {
	Title    string   `json:"title" validate:"required"`
	Status   string   `json:"status" validate:"omitempty,oneof=Proposed Accepted Rejected Deprecated"`
	Summary  string   `json:"summary" validate:"required"`
	AuthorID string   `json:"authorId" validate:"required"`
	Tags     []string `json:"tags"`
}

type UpdateAdrRequest struct {
	Title   *string   `json:"title" validate:"omitempty,min=1"`
	Status  *string   `json:"status" validate:"omitempty,oneof=Proposed Accepted Rejected Deprecated"`
	Summary *string   `json:"summary" validate:"omitempty,min=1"`
	Tags    *[]string `json:"tags"`
}

func (r UpdateAdrRequest) toUpdate() models.AdrUpdate {
	return models.AdrUpdate{
		Title:   r.Title,
		Status:  r.Status,
		Summary: r.Summary,
		Tags:    r.Tags,
	}
}

type CreatePrReviewRequest struct {
	Title     string           `json:"title" validate:"required"`
	AuthorID  string           `json:"authorId" validate:"required"`
	RiskLevel string           `json:"riskLevel" validate:"omitempty,oneof=Low Medium High"`
	Summary   string           `json:"summary" validate:"required"`
	Checklist models.Checklist `json:"checklist"`
}

type AnalyzePrRequest struct {
	PrURL       string `json:"prUrl"`
	DiffContent string `json:"diffContent"`
	Title       string `json:"title"`
	AuthorID    string `json:"authorId" validate:"required"`
}

type CreateActivityRequest struct {
	UserID string `json:"userId" validate:"required"`
	Action string `json:"action" validate:"required"`
	Target string `json:"target" validate:"required"`
}

type CreateNotificationRequest struct {
	UserID  string  `json:"userId" validate:"required"`
	Type    string  `json:"type" validate:"required"`
	Title   string  `json:"title" validate:"required"`
	Message string  `json:"message" validate:"required"`
	Link    *string `json:"link"`
	Read    bool    `json:"read"`
}

type ChatRequest struct {
	Message string       `json:"message" validate:"required"`
	History []ai.Message `json:"history"`
}
