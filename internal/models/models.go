package models

import "time"

// User represents a team member
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Avatar    *string   `json:"avatar" db:"avatar"`
	Role      string    `json:"role" db:"role"`
	Timezone  string    `json:"timezone" db:"timezone"`
	UTCOffset int       `json:"utcOffset" db:"utc_offset"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Column represents a board section; position defines left-to-right order
type Column struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Task represents a card on the board
type Task struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Tag           string    `json:"tag" db:"tag"`
	Priority      string    `json:"priority" db:"priority"`
	ColumnID      string    `json:"columnId" db:"column_id"`
	AssignedTo    []string  `json:"assignedTo" db:"assigned_to"`
	ActiveViewers []string  `json:"activeViewers" db:"active_viewers"`
	Comments      int       `json:"comments" db:"comments"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Adr represents an architecture decision record
type Adr struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Status    string    `json:"status" db:"status"`
	Summary   string    `json:"summary" db:"summary"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	Tags      []string  `json:"tags" db:"tags"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ChecklistItem is a single reviewable item of a PR review checklist
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Checklist is stored as one jsonb document, never normalized into rows
type Checklist []ChecklistItem

// PrReview represents a reviewed pull request with its analysis result
type PrReview struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	RiskLevel string    `json:"riskLevel" db:"risk_level"`
	Summary   string    `json:"summary" db:"summary"`
	Checklist Checklist `json:"checklist" db:"checklist"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Activity is an append-only audit record; never updated or deleted
type Activity struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Target    string    `json:"target" db:"target"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Notification represents a per-user message with a read flag
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Link      *string   `json:"link" db:"link"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// User roles
const (
	RoleEngineer  = "Engineer"
	RoleReviewer  = "Reviewer"
	RoleArchitect = "Architect"
)

// User presence statuses
const (
	StatusOnline  = "online"
	StatusIdle    = "idle"
	StatusOffline = "offline"
)

// Task tags
const (
	TagDesign      = "Design"
	TagEngineering = "Engineering"
	TagProduct     = "Product"
	TagBug         = "Bug"
)

// Task priorities
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ADR lifecycle statuses
const (
	AdrProposed   = "Proposed"
	AdrAccepted   = "Accepted"
	AdrRejected   = "Rejected"
	AdrDeprecated = "Deprecated"
)

// PR review risk levels
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// ValidUserStatus reports whether s is one of the presence statuses
func ValidUserStatus(s string) bool {
	return s == StatusOnline || s == StatusIdle || s == StatusOffline
}

// ValidRiskLevel reports whether s is one of the risk levels
func ValidRiskLevel(s string) bool {
	return s == RiskLow || s == RiskMedium || s == RiskHigh
}
