package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/ai"
	"github.com/untibullet/syncflow/internal/repository"
	"go.uber.org/zap"
)

// API error codes
const (
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeEmailExists = "EMAIL_EXISTS"
	ErrCodeAIFailure   = "AI_SERVICE_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

type Handler struct {
	store    repository.Store
	ai       ai.Generator
	logger   *zap.Logger
	validate *validator.Validate
}

// New creates the handler set backed by the given store and generation backend
func New(store repository.Store, generator ai.Generator, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		ai:       generator,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ErrorResponse is the JSON error body of the API
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// newErrorResponse builds the standard error body
func newErrorResponse(code, message string) ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	return resp
}

// bindAndValidate decodes the request body and validates it, answering 400
// with every failing field enumerated. Returns false when the request was
// already answered.
func (h *Handler) bindAndValidate(c echo.Context, op string, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		h.logger.Error(op+": failed to parse request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeValidation, "invalid request body"))
		return false
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			h.logger.Warn(op+": validation failed", zap.Int("failing_fields", len(fieldErrs)))
			c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeValidation, validationMessage(fieldErrs)))
			return false
		}
		h.logger.Error(op+": validation error", zap.Error(err))
		c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeValidation, "invalid request body"))
		return false
	}

	return true
}

// validationMessage enumerates every failing field, not just the first
func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email")
		case "oneof":
			parts = append(parts, fe.Field()+" must be one of: "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}

// respondStoreError maps store failures onto HTTP statuses. Internal details
// stay in the logs; clients get a generic message.
func (h *Handler) respondStoreError(c echo.Context, op, resource string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.logger.Warn(op+": "+resource+" not found")
		return c.JSON(http.StatusNotFound, newErrorResponse(ErrCodeNotFound, resource+" not found"))
	case errors.Is(err, repository.ErrAlreadyExists):
		h.logger.Warn(op + ": " + resource + " already exists")
		return c.JSON(http.StatusConflict, newErrorResponse(ErrCodeEmailExists, resource+" already exists"))
	case errors.Is(err, repository.ErrInvalidInput):
		h.logger.Warn(op+": invalid reference", zap.Error(err))
		return c.JSON(http.StatusBadRequest, newErrorResponse(ErrCodeValidation, "referenced entity does not exist"))
	default:
		h.logger.Error(op+": storage error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, newErrorResponse(ErrCodeInternal, "internal server error"))
	}
}

// RegisterRoutes wires every API route
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	// Users
	api.GET("/users", h.GetUsers)
	api.GET("/users/:id", h.GetUser)
	api.POST("/users", h.CreateUser)
	api.PATCH("/users/:id/status", h.UpdateUserStatus)

	// Columns
	api.GET("/columns", h.GetColumns)
	api.POST("/columns", h.CreateColumn)
	api.DELETE("/columns/:id", h.DeleteColumn)

	// Tasks
	api.GET("/tasks", h.GetTasks)
	api.GET("/columns/:columnId/tasks", h.GetTasksByColumn)
	api.POST("/tasks", h.CreateTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.PATCH("/tasks/:id/viewers", h.UpdateTaskViewers)
	api.DELETE("/tasks/:id", h.DeleteTask)

	// ADRs
	api.GET("/adrs", h.GetAdrs)
	api.GET("/adrs/:id", h.GetAdr)
	api.POST("/adrs", h.CreateAdr)
	api.PATCH("/adrs/:id", h.UpdateAdr)

	// PR reviews
	api.GET("/pr-reviews", h.GetPrReviews)
	api.GET("/pr-reviews/:id", h.GetPrReview)
	api.POST("/pr-reviews", h.CreatePrReview)
	api.POST("/pr-reviews/analyze", h.AnalyzePr)

	// Activities
	api.GET("/activities", h.GetActivities)
	api.POST("/activities", h.CreateActivity)

	// Board
	api.GET("/board", h.GetBoard)

	// Notifications
	api.GET("/notifications/:userId", h.GetNotifications)
	api.GET("/notifications/:userId/unread-count", h.GetUnreadCount)
	api.POST("/notifications", h.CreateNotification)
	api.PATCH("/notifications/:id/read", h.MarkNotificationRead)
	api.PATCH("/notifications/:userId/read-all", h.MarkAllNotificationsRead)

	// Chat assistant
	api.POST("/chat", h.Chat)
}
