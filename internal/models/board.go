package models

// BoardColumn is one column of the aggregated board view with its tasks inlined
type BoardColumn struct {
	Column
	Tasks []Task `json:"tasks"`
}

// BuildBoard groups tasks under their owning columns. Column order is preserved
// from the input, as is task order within each group. Every column appears in
// the result, with an empty (non-nil) task list when it holds nothing. Tasks
// referencing an unknown column are dropped.
func BuildBoard(columns []Column, tasks []Task) []BoardColumn {
	byColumn := make(map[string][]Task, len(columns))
	for _, t := range tasks {
		byColumn[t.ColumnID] = append(byColumn[t.ColumnID], t)
	}

	board := make([]BoardColumn, 0, len(columns))
	for _, col := range columns {
		group := byColumn[col.ID]
		if group == nil {
			group = []Task{}
		}
		board = append(board, BoardColumn{Column: col, Tasks: group})
	}

	return board
}
