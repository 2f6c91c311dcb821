package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/untibullet/syncflow/internal/models"
	"go.uber.org/zap"
)

// GetAdrs lists every ADR, newest first
func (h *Handler) GetAdrs(c echo.Context) error {
	adrs, err := h.store.GetAllAdrs(c.Request().Context())
	if err != nil {
		return h.respondStoreError(c, "GetAdrs", "ADRs", err)
	}
	if adrs == nil {
		adrs = []models.Adr{}
	}

	return c.JSON(http.StatusOK, adrs)
}

// GetAdr returns one ADR by id
func (h *Handler) GetAdr(c echo.Context) error {
	id := c.Param("id")

	adr, err := h.store.GetAdr(c.Request().Context(), id)
	if err != nil {
		return h.respondStoreError(c, "GetAdr", "ADR", err)
	}

	return c.JSON(http.StatusOK, adr)
}

// CreateAdr proposes a new decision record; the author gets a "proposed"
// activity entry
func (h *Handler) CreateAdr(c echo.Context) error {
	var req CreateAdrRequest
	if !h.bindAndValidate(c, "CreateAdr", &req) {
		return nil
	}

	if req.Status == "" {
		req.Status = models.AdrProposed
	}

	adr, err := h.store.CreateAdr(c.Request().Context(), models.Adr{
		Title:    req.Title,
		Status:   req.Status,
		Summary:  req.Summary,
		AuthorID: req.AuthorID,
		Tags:     req.Tags,
	})
	if err != nil {
		return h.respondStoreError(c, "CreateAdr", "ADR", err)
	}

	h.logger.Info("CreateAdr: ADR created",
		zap.String("adr_id", adr.ID), zap.String("author_id", adr.AuthorID))
	return c.JSON(http.StatusCreated, adr)
}

// UpdateAdr merges the supplied fields into an ADR (typically a status change)
func (h *Handler) UpdateAdr(c echo.Context) error {
	id := c.Param("id")

	var req UpdateAdrRequest
	if !h.bindAndValidate(c, "UpdateAdr", &req) {
		return nil
	}

	adr, err := h.store.UpdateAdr(c.Request().Context(), id, req.toUpdate())
	if err != nil {
		return h.respondStoreError(c, "UpdateAdr", "ADR", err)
	}

	h.logger.Info("UpdateAdr: ADR updated",
		zap.String("adr_id", id), zap.String("status", adr.Status))
	return c.JSON(http.StatusOK, adr)
}
