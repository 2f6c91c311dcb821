package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetActivities lists recent activity, newest first, capped by ?limit=
func (h *Handler) GetActivities(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest,
				newErrorResponse(ErrCodeValidation, "limit must be an integer"))
		}
		limit = n
	}

	activities, err := h.store.GetRecentActivities(c.Request().Context(), limit)
	if err != nil {
		return h.respondStoreError(c, "GetActivities", "activities", err)
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	return c.JSON(http.StatusOK, activities)
}

// CreateActivity appends one audit record
func (h *Handler) CreateActivity(c echo.Context) error {
	var req CreateActivityRequest
	if !h.bindAndValidate(c, "CreateActivity", &req) {
		return nil
	}

	activity, err := h.store.CreateActivity(c.Request().Context(), models.Activity{
		UserID: req.UserID,
		Action: req.Action,
		Target: req.Target,
	})
	if err != nil {
		return h.respondStoreError(c, "CreateActivity", "activity", err)
	}

	h.logger.Info("CreateActivity: activity recorded",
		zap.String("user_id", activity.UserID), zap.String("action", activity.Action))
	return c.JSON(http.StatusCreated, activity)
}
