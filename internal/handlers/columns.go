package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetColumns lists board columns in position order
func (h *Handler) GetColumns(c echo.Context) error {
	columns, err := h.store.GetAllColumns(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetColumns", "columns", err)
	}
	if columns == nil {
		columns = []models.Column{}
	}

	return c.JSON(http.StatusOK, columns)
}

// CreateColumn appends a board column. The caller picks the position
// (typically max existing + 1); duplicates and gaps are legal.
func (h *Handler) CreateColumn(c echo.Context) error {
	var req CreateColumnRequest
	if !h.bindAndValidate(c, "CreateColumn", &req) {
		return nil
	}

	column, err := h.store.CreateColumn(c.Request().Context(), models.Column{
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		return h.respondStoreError(c, "CreateColumn", "column", err)
	}

	h.logger.Info("CreateColumn: column created",
		zap.String("column_id", column.ID), zap.Int("position", column.Position))
	return c.JSON(http.StatusCreated, column)
}

// DeleteColumn removes a column and, via the cascade, all of its tasks.
// Deleting an unknown id succeeds.
func (h *Handler) DeleteColumn(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.DeleteColumn(c.Request().Context(), id); err != nil {
		return h.respondStoreError(c, "DeleteColumn", "column", err)
	}

	h.logger.Info("DeleteColumn: column deleted", zap.String("column_id", id))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GetBoard returns the aggregated board: every column with its tasks inlined
func (h *Handler) GetBoard(c echo.Context) error {
	board, err := h.store.GetBoard(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetBoard", "board", err)
	}

	return c.JSON(http.StatusOK, board)
}
