package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetUsers lists every user
func (h *Handler) GetUsers(c echo.Context) error {
	users, err := h.store.GetAllUsers(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetUsers", "users", err)
	}
	if users == nil {
		users = []models.User{}
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser returns one user by id
func (h *Handler) GetUser(c echo.Context) error {
	id := c.Param("id")

	user, err := h.store.GetUser(c.Request().Context(), id)
	if err != nil {
		return h.respondStoreError(c, "GetUser", "user", err)
	}

	return c.JSON(http.StatusOK, user)
}

// CreateUser registers a new team member
func (h *Handler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if !h.bindAndValidate(c, "CreateUser", &req) {
		return nil
	}

	if req.Role == "" {
		req.Role = models.RoleEngineer
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}
	if req.Status == "" {
		req.Status = models.StatusOffline
	}

	user, err := h.store.CreateUser(c.Request().Context(), models.User{
		Name:      req.Name,
		Email:     req.Email,
		Avatar:    req.Avatar,
		Role:      req.Role,
		Timezone:  req.Timezone,
		UTCOffset: req.UTCOffset,
		Status:    req.Status,
	})
	if err != nil {
		return h.respondStoreError(c, "CreateUser", "user email", err)
	}

	h.logger.Info("CreateUser: user created", zap.String("user_id", user.ID))
	return c.JSON(http.StatusCreated, user)
}

// UpdateUserStatus patches the presence status of a user
func (h *Handler) UpdateUserStatus(c echo.Context) error {
	id := c.Param("id")

	var req UpdateUserStatusRequest
	if !h.bindAndValidate(c, "UpdateUserStatus", &req) {
		return nil
	}

	if err := h.store.UpdateUserStatus(c.Request().Context(), id, req.Status); err != nil {
		return h.respondStoreError(c, "UpdateUserStatus", "user", err)
	}

	h.logger.Info("UpdateUserStatus: status updated",
		zap.String("user_id", id), zap.String("status", req.Status))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
