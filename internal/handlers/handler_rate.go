package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
)

// rateHandler handles HTTP requests for the rate pipeline.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers all rate-related routes. Reads are open to any
// authenticated staff; writes and the verify gate need manager or admin.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	managerOrAdmin := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	rates := rg.Group("/rates")
	{
		rates.POST("", managerOrAdmin, h.proposeRate)
		rates.GET("/latest", h.getLatestRate)
		rates.GET("/published-latest", h.getPublishedLatestRate)
		rates.GET("/history", adminOnly, h.listRateHistory)
		rates.GET("/live", managerOrAdmin, h.fetchLiveRate)
		rates.GET("/:id", h.getRate)
		rates.PUT("/:id", managerOrAdmin, h.updateRate)
		rates.POST("/:id/verify", adminOnly, h.verifyRate)
	}
}

// proposeRate godoc
// @Summary Propose a rate
// @Description Records a manually entered rate in pending status. A human must verify it before it publishes.
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.ProposeRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to propose rate"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) proposeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProposeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.ProposeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to propose rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to propose rate"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// getRate godoc
// @Summary Get a rate by ID
// @Tags rates
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/{id} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetRateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
			return
		}
		logger.Error("Failed to get rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getLatestRate godoc
// @Summary Get the latest rate regardless of status
// @Description Returns the most recent rate record, pending or published. Intended for the verification screen.
// @Tags rates
// @Produce json
// @Param product query string false "Product" default(latex60)
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "No rate recorded"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/latest [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetLatestRate(c.Request.Context(), c.Query("product"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate recorded yet"})
			return
		}
		logger.Error("Failed to get latest rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getPublishedLatestRate godoc
// @Summary Get the latest published rate
// @Description Returns the most recent verified rate only. This is the rate the rest of the app prices against.
// @Tags rates
// @Produce json
// @Param product query string false "Product" default(latex60)
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "No published rate"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/published-latest [get]
func (h *rateHandler) getPublishedLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.rateService.GetPublishedLatestRate(c.Request.Context(), c.Query("product"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No published rate yet"})
			return
		}
		logger.Error("Failed to get published rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// listRateHistory godoc
// @Summary List rate history
// @Description Returns the append-only history trail, newest first, cursor-paginated.
// @Tags rates
// @Produce json
// @Param product query string false "Product" default(latex60)
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.RateHistoryResponse
// @Failure 400 {object} map[string]string "Invalid token"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /rates/history [get]
func (h *rateHandler) listRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, nextToken, err := h.rateService.ListRateHistory(c.Request.Context(), c.Query("product"), limit, c.Query("nextToken"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list rate history", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	resp := dto.RateHistoryResponse{
		Entries:   make([]dto.RateHistoryEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToRateHistoryEntryResponse(entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// fetchLiveRate godoc
// @Summary Scrape the live rate on demand
// @Description Fetches the current rate from the upstream sources without storing anything.
// @Tags rates
// @Produce json
// @Success 200 {object} dto.LiveRateResponse
// @Failure 502 {object} map[string]string "All sources failed"
// @Security BearerAuth
// @Router /rates/live [get]
func (h *rateHandler) fetchLiveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fetched, err := h.rateService.FetchLiveRate(c.Request.Context())
	if err != nil {
		logger.Warn("Live rate fetch failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch live rate"})
		return
	}

	c.JSON(http.StatusOK, dto.LiveRateResponse{
		Product:     fetched.Product,
		Rate:        fetched.Rate,
		FetchedFrom: fetched.FetchedFrom,
		FetchedAt:   fetched.FetchedAt,
	})
}

// updateRate godoc
// @Summary Edit a rate
// @Description Edits a rate record. Any edit resets the record to pending and clears verification.
// @Tags rates
// @Accept json
// @Produce json
// @Param id path string true "Rate ID"
// @Param rate body dto.UpdateRateRequest true "Fields to update"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to update rate"
// @Security BearerAuth
// @Router /rates/{id} [put]
func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	rate, err := h.rateService.UpdateRate(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// verifyRate godoc
// @Summary Verify and publish a rate
// @Description Marks a pending rate as published. Publication is always a human action; the scheduler never publishes. Verifying an already published rate succeeds and refreshes the stamp.
// @Tags rates
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to verify rate"
// @Security BearerAuth
// @Router /rates/{id}/verify [post]
func (h *rateHandler) verifyRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	verifierUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.VerifyRate(c.Request.Context(), c.Param("id"), verifierUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to verify rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}
