package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
)

// stockHandler handles HTTP requests for the inventory.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes registers all inventory routes.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.POST("", h.createStockItem)
		stock.GET("", h.listStockItems)
		stock.GET("/low", h.listLowStockItems)
		stock.GET("/:id", h.getStockItem)
		stock.PUT("/:id", h.updateStockItem)
		stock.POST("/:id/adjust", h.adjustStock)
		stock.GET("/:id/movements", h.listMovements)
	}
}

// createStockItem godoc
// @Summary Add an inventory item
// @Tags stock
// @Accept json
// @Produce json
// @Param item body dto.CreateStockItemRequest true "Item details"
// @Success 201 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Security BearerAuth
// @Router /stock [post]
func (h *stockHandler) createStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.stockService.CreateStockItem(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create stock item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToStockItemResponse(item))
}

// listStockItems godoc
// @Summary List inventory items
// @Tags stock
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} dto.StockItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /stock [get]
func (h *stockHandler) listStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var category *string
	if cat := c.Query("category"); cat != "" {
		category = &cat
	}

	items, err := h.stockService.ListStockItems(c.Request.Context(), category)
	if err != nil {
		logger.Error("Failed to list stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStockItemResponse(items))
}

// listLowStockItems godoc
// @Summary List items at or below their reorder level
// @Tags stock
// @Produce json
// @Success 200 {array} dto.StockItemResponse
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /stock/low [get]
func (h *stockHandler) listLowStockItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.stockService.ListLowStockItems(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list low stock items", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListStockItemResponse(items))
}

// getStockItem godoc
// @Summary Get an inventory item by ID
// @Tags stock
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.StockItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Security BearerAuth
// @Router /stock/{id} [get]
func (h *stockHandler) getStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	item, err := h.stockService.GetStockItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		logger.Error("Failed to get stock item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve item"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// updateStockItem godoc
// @Summary Edit inventory item metadata
// @Description Edits name, category, reorder level or location. Quantity only changes through adjustments.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body dto.UpdateStockItemRequest true "Fields to update"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to update item"
// @Security BearerAuth
// @Router /stock/{id} [put]
func (h *stockHandler) updateStockItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	item, err := h.stockService.UpdateStockItem(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update stock item", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// adjustStock godoc
// @Summary Adjust item quantity
// @Description Applies a signed delta and records the movement atomically. Adjustments that would drive quantity negative are rejected.
// @Tags stock
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param adjustment body dto.AdjustStockRequest true "Signed delta and reason"
// @Success 200 {object} dto.StockItemResponse
// @Failure 400 {object} map[string]string "Invalid delta or negative result"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to adjust stock"
// @Security BearerAuth
// @Router /stock/{id}/adjust [post]
func (h *stockHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, _, err := h.stockService.AdjustStock(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to adjust stock", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust stock"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStockItemResponse(item))
}

// listMovements godoc
// @Summary List an item's movement trail
// @Description Lists the append-only movement rows for an item, newest first, cursor-paginated.
// @Tags stock
// @Produce json
// @Param id path string true "Item ID"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.StockMovementsResponse
// @Failure 400 {object} map[string]string "Invalid token"
// @Failure 500 {object} map[string]string "Failed to list movements"
// @Security BearerAuth
// @Router /stock/{id}/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	movements, nextToken, err := h.stockService.ListMovements(c.Request.Context(), c.Param("id"), limit, c.Query("nextToken"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list stock movements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list movements"})
		return
	}

	resp := dto.StockMovementsResponse{
		Movements: make([]dto.StockMovementResponse, len(movements)),
		NextToken: nextToken,
	}
	for i := range movements {
		resp.Movements[i] = dto.ToStockMovementResponse(movements[i])
	}
	c.JSON(http.StatusOK, resp)
}
