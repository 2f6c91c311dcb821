package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetTasks lists every task, newest first
func (h *Handler) GetTasks(c echo.Context) error {
	tasks, err := h.store.GetAllTasks(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetTasks", "tasks", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTasksByColumn lists the tasks of one column
func (h *Handler) GetTasksByColumn(c echo.Context) error {
	columnID := c.Param("columnId")

	tasks, err := h.store.GetTasksByColumn(c.Request().Context(), columnID)
	if err != nil {
		return h.respondStoreError(c, "GetTasksByColumn", "tasks", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a card in a column, optionally recording the acting user
func (h *Handler) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if !h.bindAndValidate(c, "CreateTask", &req) {
		return nil
	}

	if req.Tag == "" {
		req.Tag = models.TagEngineering
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	task, err := h.store.CreateTask(c.Request().Context(), models.Task{
		Title:         req.Title,
		Description:   req.Description,
		Tag:           req.Tag,
		Priority:      req.Priority,
		ColumnID:      req.ColumnID,
		AssignedTo:    req.AssignedTo,
		ActiveViewers: req.ActiveViewers,
		Comments:      req.Comments,
	}, req.CreatedBy)
	if err != nil {
		return h.respondStoreError(c, "CreateTask", "task", err)
	}

	h.logger.Info("CreateTask: task created",
		zap.String("task_id", task.ID), zap.String("column_id", task.ColumnID))
	return c.JSON(http.StatusCreated, task)
}

// UpdateTask merges the supplied fields into a task; updatedAt is refreshed on
// every call
func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")

	var req UpdateTaskRequest
	if !h.bindAndValidate(c, "UpdateTask", &req) {
		return nil
	}

	task, err := h.store.UpdateTask(c.Request().Context(), id, req.toUpdate(), req.MovedBy)
	if err != nil {
		return h.respondStoreError(c, "UpdateTask", "task", err)
	}

	h.logger.Info("UpdateTask: task updated", zap.String("task_id", id))
	return c.JSON(http.StatusOK, task)
}

// UpdateTaskViewers replaces the advisory viewer list, last writer wins
func (h *Handler) UpdateTaskViewers(c echo.Context) error {
	id := c.Param("id")

	var req UpdateTaskViewersRequest
	if !h.bindAndValidate(c, "UpdateTaskViewers", &req) {
		return nil
	}
	if req.ViewerIDs == nil {
		return c.JSON(http.StatusBadRequest,
			newErrorResponse(ErrCodeValidation, "viewerIds must be an array"))
	}

	if err := h.store.UpdateTaskViewers(c.Request().Context(), id, req.ViewerIDs); err != nil {
		return h.respondStoreError(c, "UpdateTaskViewers", "task", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// DeleteTask removes a card; deleting an unknown id succeeds
func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.DeleteTask(c.Request().Context(), id); err != nil {
		return h.respondStoreError(c, "DeleteTask", "task", err)
	}

	h.logger.Info("DeleteTask: task deleted", zap.String("task_id", id))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
