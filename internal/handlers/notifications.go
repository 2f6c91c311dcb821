package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetNotifications lists the newest notifications for a user
func (h *Handler) GetNotifications(c echo.Context) error {
	userID := c.Param("userId")

	notifications, err := h.store.GetNotifications(c.Request().Context(), userID)
	if err != nil {
		return h.respondStoreError(c, "GetNotifications", "notifications", err)
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the number of unread notifications for a user
func (h *Handler) GetUnreadCount(c echo.Context) error {
	userID := c.Param("userId")

	count, err := h.store.GetUnreadNotificationCount(c.Request().Context(), userID)
	if err != nil {
		return h.respondStoreError(c, "GetUnreadCount", "notifications", err)
	}

	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

// CreateNotification persists one notification addressed to a user
func (h *Handler) CreateNotification(c echo.Context) error {
	var req CreateNotificationRequest
	if !h.bindAndValidate(c, "CreateNotification", &req) {
		return nil
	}

	notification, err := h.store.CreateNotification(c.Request().Context(), models.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Link:    req.Link,
		Read:    req.Read,
	})
	if err != nil {
		return h.respondStoreError(c, "CreateNotification", "notification", err)
	}

	h.logger.Info("CreateNotification: notification created",
		zap.String("user_id", notification.UserID), zap.String("type", notification.Type))
	return c.JSON(http.StatusCreated, notification)
}

// MarkNotificationRead flags one notification as read
func (h *Handler) MarkNotificationRead(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.MarkNotificationRead(c.Request().Context(), id); err != nil {
		return h.respondStoreError(c, "MarkNotificationRead", "notification", err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// MarkAllNotificationsRead flags every notification of a user as read
func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	userID := c.Param("userId")

	if err := h.store.MarkAllNotificationsRead(c.Request().Context(), userID); err != nil {
		return h.respondStoreError(c, "MarkAllNotificationsRead", "notifications", err)
	}

	h.logger.Info("MarkAllNotificationsRead: marked", zap.String("user_id", userID))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
