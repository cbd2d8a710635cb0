package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
)

// barrelHandler handles HTTP requests for barrel tracking.
type barrelHandler struct {
	barrelService portssvc.BarrelSvcFacade
}

func newBarrelHandler(bs portssvc.BarrelSvcFacade) *barrelHandler {
	return &barrelHandler{barrelService: bs}
}

// registerBarrelRoutes registers all barrel-related routes.
func registerBarrelRoutes(rg *gin.RouterGroup, barrelService portssvc.BarrelSvcFacade) {
	h := newBarrelHandler(barrelService)

	barrels := rg.Group("/barrels")
	{
		barrels.POST("", h.createBarrel)
		barrels.GET("", h.listBarrels)
		barrels.GET("/fefo", h.listFEFO)
		barrels.GET("/:id", h.getBarrel)
		barrels.PUT("/:id", h.updateBarrel)
		barrels.POST("/:id/transition", h.transitionBarrel)
		barrels.GET("/:id/valuation", h.valueBarrel)
	}
}

// createBarrel godoc
// @Summary Register a barrel
// @Description Registers a barrel fresh from collection. New barrels start in storage.
// @Tags barrels
// @Accept json
// @Produce json
// @Param barrel body dto.CreateBarrelRequest true "Barrel details"
// @Success 201 {object} dto.BarrelResponse
// @Failure 400 {object} map[string]string "Invalid measurements"
// @Failure 409 {object} map[string]string "Barrel code already registered"
// @Failure 500 {object} map[string]string "Failed to create barrel"
// @Security BearerAuth
// @Router /barrels [post]
func (h *barrelHandler) createBarrel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBarrelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	barrel, err := h.barrelService.CreateBarrel(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create barrel", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create barrel"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToBarrelResponse(barrel))
}

// listBarrels godoc
// @Summary List barrels
// @Description Lists barrels, optionally filtered by lifecycle status.
// @Tags barrels
// @Produce json
// @Param status query string false "Status filter" Enums(in_storage, in_use, dispatched, scrapped)
// @Success 200 {array} dto.BarrelResponse
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 500 {object} map[string]string "Failed to list barrels"
// @Security BearerAuth
// @Router /barrels [get]
func (h *barrelHandler) listBarrels(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status *domain.BarrelStatus
	if s := c.Query("status"); s != "" {
		bs := domain.BarrelStatus(s)
		status = &bs
	}

	barrels, err := h.barrelService.ListBarrels(c.Request.Context(), status)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list barrels", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list barrels"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBarrelResponse(barrels))
}

// listFEFO godoc
// @Summary List barrels in first-expired-first-out order
// @Description Lists in-storage barrels with content, ordered so the first to expire is used first.
// @Tags barrels
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Success 200 {array} dto.BarrelResponse
// @Failure 500 {object} map[string]string "Failed to list barrels"
// @Security BearerAuth
// @Router /barrels/fefo [get]
func (h *barrelHandler) listFEFO(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	barrels, err := h.barrelService.ListFEFO(c.Request.Context(), time.Time{}, limit)
	if err != nil {
		logger.Error("Failed to list FEFO barrels", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list barrels"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBarrelResponse(barrels))
}

// getBarrel godoc
// @Summary Get a barrel by ID
// @Tags barrels
// @Produce json
// @Param id path string true "Barrel ID"
// @Success 200 {object} dto.BarrelResponse
// @Failure 404 {object} map[string]string "Barrel not found"
// @Failure 500 {object} map[string]string "Failed to retrieve barrel"
// @Security BearerAuth
// @Router /barrels/{id} [get]
func (h *barrelHandler) getBarrel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	barrel, err := h.barrelService.GetBarrelByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Barrel not found"})
			return
		}
		logger.Error("Failed to get barrel", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve barrel"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBarrelResponse(barrel))
}

// updateBarrel godoc
// @Summary Edit a barrel
// @Description Edits barrel measurements, expiry or location. Merged measurements are re-validated.
// @Tags barrels
// @Accept json
// @Produce json
// @Param id path string true "Barrel ID"
// @Param barrel body dto.UpdateBarrelRequest true "Fields to update"
// @Success 200 {object} dto.BarrelResponse
// @Failure 400 {object} map[string]string "Invalid measurements"
// @Failure 404 {object} map[string]string "Barrel not found"
// @Failure 500 {object} map[string]string "Failed to update barrel"
// @Security BearerAuth
// @Router /barrels/{id} [put]
func (h *barrelHandler) updateBarrel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateBarrelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	barrel, err := h.barrelService.UpdateBarrel(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Barrel not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update barrel", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update barrel"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBarrelResponse(barrel))
}

// transitionBarrel godoc
// @Summary Move a barrel through its lifecycle
// @Description Transitions a barrel between in_storage, in_use, dispatched and scrapped. Illegal jumps are rejected.
// @Tags barrels
// @Accept json
// @Produce json
// @Param id path string true "Barrel ID"
// @Param transition body dto.TransitionBarrelRequest true "Target status"
// @Success 200 {object} dto.BarrelResponse
// @Failure 400 {object} map[string]string "Illegal transition"
// @Failure 404 {object} map[string]string "Barrel not found"
// @Failure 500 {object} map[string]string "Failed to transition barrel"
// @Security BearerAuth
// @Router /barrels/{id}/transition [post]
func (h *barrelHandler) transitionBarrel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionBarrelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	barrel, err := h.barrelService.TransitionBarrel(c.Request.Context(), c.Param("id"), domain.BarrelStatus(req.Status), requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Barrel not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to transition barrel", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transition barrel"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBarrelResponse(barrel))
}

// valueBarrel godoc
// @Summary Value a barrel
// @Description Prices the barrel's dry rubber content against the latest published rate.
// @Tags barrels
// @Produce json
// @Param id path string true "Barrel ID"
// @Success 200 {object} dto.BarrelValuationResponse
// @Failure 404 {object} map[string]string "Barrel or published rate not found"
// @Failure 500 {object} map[string]string "Failed to value barrel"
// @Security BearerAuth
// @Router /barrels/{id}/valuation [get]
func (h *barrelHandler) valueBarrel(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	barrel, rate, err := h.barrelService.ValueBarrel(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to value barrel", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to value barrel"})
		return
	}

	c.JSON(http.StatusOK, dto.BarrelValuationResponse{
		BarrelID:     barrel.BarrelID,
		DryRubberKg:  barrel.DryRubberKg(),
		RatePer100Kg: rate.MarketRate,
		RateID:       rate.RateID,
		Value:        barrel.ValueAt(rate.MarketRate),
		ValuedAt:     time.Now().UTC(),
	})
}
