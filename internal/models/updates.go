package models

// TaskUpdate carries a partial task mutation; nil fields are left untouched
type TaskUpdate struct {
	Title         *string
	Description   *string
	Tag           *string
	Priority      *string
	ColumnID      *string
	AssignedTo    *[]string
	ActiveViewers *[]string
	Comments      *int
}

// IsEmpty reports whether the update carries no fields at all
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Tag == nil &&
		u.Priority == nil && u.ColumnID == nil && u.AssignedTo == nil &&
		u.ActiveViewers == nil && u.Comments == nil
}

// AdrUpdate carries a partial ADR mutation; nil fields are left untouched
type AdrUpdate struct {
	Title   *string
	Status  *string
	Summary *string
	Tags    *[]string
}

// IsEmpty reports whether the update carries no fields at all
func (u AdrUpdate) IsEmpty() bool {
	return u.Title == nil && u.Status == nil && u.Summary == nil && u.Tags == nil
}
