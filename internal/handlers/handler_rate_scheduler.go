package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
	"github.com/palamattam/rubber_plant_app/internal/scheduler"
)

// schedulerHandler exposes the rate scheduler's introspection and manual trigger.
type schedulerHandler struct {
	rateScheduler *scheduler.RateScheduler
}

func newSchedulerHandler(rs *scheduler.RateScheduler) *schedulerHandler {
	return &schedulerHandler{rateScheduler: rs}
}

// registerSchedulerRoutes registers scheduler control routes. Admin only.
func registerSchedulerRoutes(rg *gin.RouterGroup, rateScheduler *scheduler.RateScheduler) {
	h := newSchedulerHandler(rateScheduler)

	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	sched := rg.Group("/scheduler", adminOnly)
	{
		sched.GET("/status", h.getStatus)
		sched.POST("/start", h.start)
		sched.POST("/stop", h.stop)
		sched.POST("/trigger", h.triggerFetch)
	}
}

// getStatus godoc
// @Summary Scheduler status
// @Description Reports whether the rate scheduler loop is running and when it last fetched.
// @Tags scheduler
// @Produce json
// @Success 200 {object} dto.SchedulerStatusResponse
// @Failure 503 {object} map[string]string "Scheduler disabled"
// @Security BearerAuth
// @Router /scheduler/status [get]
func (h *schedulerHandler) getStatus(c *gin.Context) {
	if h.rateScheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler is disabled"})
		return
	}

	status := h.rateScheduler.Status()
	c.JSON(http.StatusOK, dto.SchedulerStatusResponse{
		IsRunning:     status.IsRunning,
		LastFetchTime: status.LastFetchTime,
		FetchCount:    status.FetchCount,
	})
}

// start godoc
// @Summary Start the scheduler loop
// @Description Starts the rate scheduler's check loop. Starting a running scheduler is a no-op.
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Scheduler disabled"
// @Security BearerAuth
// @Router /scheduler/start [post]
func (h *schedulerHandler) start(c *gin.Context) {
	if h.rateScheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler is disabled"})
		return
	}

	// The loop must outlive this request, so it runs on its own context.
	h.rateScheduler.Start(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "Scheduler started"})
}

// stop godoc
// @Summary Stop the scheduler loop
// @Description Halts the rate scheduler's check loop. In-flight cycles finish on their own.
// @Tags scheduler
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string "Scheduler disabled"
// @Security BearerAuth
// @Router /scheduler/stop [post]
func (h *schedulerHandler) stop(c *gin.Context) {
	if h.rateScheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler is disabled"})
		return
	}

	h.rateScheduler.Stop()
	c.JSON(http.StatusOK, gin.H{"message": "Scheduler stopped"})
}

// triggerFetch godoc
// @Summary Trigger a fetch cycle
// @Description Kicks off one scrape-and-store cycle immediately, outside the schedule. The cycle runs in the background; the stored rate is still pending.
// @Tags scheduler
// @Produce json
// @Success 202 {object} map[string]string
// @Failure 503 {object} map[string]string "Scheduler disabled"
// @Security BearerAuth
// @Router /scheduler/trigger [post]
func (h *schedulerHandler) triggerFetch(c *gin.Context) {
	if h.rateScheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler is disabled"})
		return
	}

	// The cycle runs detached from the request context so the response can
	// go out immediately and a client disconnect cannot cancel the scrape.
	go h.rateScheduler.TriggerFetch(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"message": "Fetch cycle triggered"})
}
