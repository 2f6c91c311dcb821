package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/ai"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetPrReviews lists every PR review, newest first
func (h *Handler) GetPrReviews(c echo.Context) error {
	reviews, err := h.store.GetAllPrReviews(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetPrReviews", "PR reviews", err)
	}
	if reviews == nil {
		reviews = []models.PrReview{}
	}

	return c.JSON(http.StatusOK, reviews)
}

// GetPrReview returns one PR review by id
func (h *Handler) GetPrReview(c echo.Context) error {
	id := c.Param("id")

	review, err := h.store.GetPrReview(c.Request().Context(), id)
	if err != nil {
		return h.respondStoreError(c, "GetPrReview", "PR review", err)
	}

	return c.JSON(http.StatusOK, review)
}

// CreatePrReview records a manually submitted review; the author gets a
// "submitted PR" activity entry
func (h *Handler) CreatePrReview(c echo.Context) error {
	var req CreatePrReviewRequest
	if !h.bindAndValidate(c, "CreatePrReview", &req) {
		return nil
	}

	if req.RiskLevel == "" {
		req.RiskLevel = models.RiskMedium
	}

	review, err := h.store.CreatePrReview(c.Request().Context(), models.PrReview{
		Title:     req.Title,
		AuthorID:  req.AuthorID,
		RiskLevel: req.RiskLevel,
		Summary:   req.Summary,
		Checklist: req.Checklist,
	})
	if err != nil {
		return h.respondStoreError(c, "CreatePrReview", "PR review", err)
	}

	h.logger.Info("CreatePrReview: review created",
		zap.String("review_id", review.ID), zap.String("author_id", review.AuthorID))
	return c.JSON(http.StatusCreated, review)
}

// AnalyzePr runs the AI-assisted review flow: validate input, ask the model
// for a structured analysis, then persist the review together with its
// activity and author notification in one transaction. A failed model call
// aborts before anything is written.
func (h *Handler) AnalyzePr(c echo.Context) error {
	var req AnalyzePrRequest
	if !h.bindAndValidate(c, "AnalyzePr", &req) {
		return nil
	}
	if req.DiffContent == "" && req.PrURL == "" {
		h.logger.Warn("AnalyzePr: neither diffContent nor prUrl supplied")
		return c.JSON(http.StatusBadRequest,
			newErrorResponse(ErrCodeValidation, "either diffContent or prUrl is required"))
	}

	content := req.DiffContent
	if content == "" {
		content = "PR URL: " + req.PrURL
	}

	reply, err := h.ai.Complete(c.Request().Context(), ai.CompletionRequest{
		System:   ai.ReviewSystemPrompt,
		User:     ai.ReviewUserPrompt(content),
		JSONMode: true,
	})
	if err != nil {
		return h.respondAIError(c, "AnalyzePr", err)
	}

	analysis, err := ai.ParseAnalysis(reply)
	if err != nil {
		return h.respondAIError(c, "AnalyzePr", err)
	}

	title := req.Title
	if title == "" {
		title = "PR Analysis - " + time.Now().Format("1/2/2006")
	}

	notification := models.Notification{
		UserID:  req.AuthorID,
		Type:    "pr_review",
		Title:   "PR Analysis Complete",
		Message: fmt.Sprintf("Your PR %q has been analyzed. Risk level: %s", title, analysis.RiskLevel),
		Link:    strPtr("/prs"),
	}

	review, err := h.store.CreateAnalyzedReview(c.Request().Context(), models.PrReview{
		Title:     title,
		AuthorID:  req.AuthorID,
		RiskLevel: analysis.RiskLevel,
		Summary:   analysis.Summary,
		Checklist: analysis.Checklist,
	}, notification)
	if err != nil {
		return h.respondStoreError(c, "AnalyzePr", "PR review", err)
	}

	h.logger.Info("AnalyzePr: analysis persisted",
		zap.String("review_id", review.ID),
		zap.String("author_id", review.AuthorID),
		zap.String("risk_level", review.RiskLevel))
	return c.JSON(http.StatusCreated, review)
}

// Chat relays one stateless conversation turn to the assistant backend
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if !h.bindAndValidate(c, "Chat", &req) {
		return nil
	}

	reply, err := h.ai.Complete(c.Request().Context(), ai.CompletionRequest{
		System:  ai.ChatSystemPrompt,
		History: req.History,
		User:    req.Message,
	})
	if err != nil {
		return h.respondAIError(c, "Chat", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}

// respondAIError maps a model failure to 502; the analysis flow never retries
func (h *Handler) respondAIError(c echo.Context, op string, err error) error {
	if errors.Is(err, ai.ErrService) {
		h.logger.Error(op+": ai backend failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway,
			newErrorResponse(ErrCodeAIFailure, "analysis service unavailable"))
	}
	h.logger.Error(op+": unexpected ai error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError,
		newErrorResponse(ErrCodeInternal, "internal server error"))
}

func strPtr(s string) *string { return &s }
