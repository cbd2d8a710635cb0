package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/apperrors"
	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	portssvc "github.com/palamattam/rubber_plant_app/internal/core/ports/services"
	"github.com/palamattam/rubber_plant_app/internal/dto"
	"github.com/palamattam/rubber_plant_app/internal/middleware"
)

// workerHandler handles HTTP requests for workers, attendance and salaries.
type workerHandler struct {
	workerService portssvc.WorkerSvcFacade
	salaryService portssvc.SalarySvcFacade
}

func newWorkerHandler(ws portssvc.WorkerSvcFacade, ss portssvc.SalarySvcFacade) *workerHandler {
	return &workerHandler{
		workerService: ws,
		salaryService: ss,
	}
}

// registerWorkerRoutes registers worker, attendance and salary routes.
// Salary approval and payment are manager or admin actions.
func registerWorkerRoutes(rg *gin.RouterGroup, workerService portssvc.WorkerSvcFacade, salaryService portssvc.SalarySvcFacade) {
	h := newWorkerHandler(workerService, salaryService)

	managerOrAdmin := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)

	workers := rg.Group("/workers")
	{
		workers.POST("", managerOrAdmin, h.createWorker)
		workers.GET("", h.listWorkers)
		workers.GET("/:id", h.getWorker)
		workers.PUT("/:id", managerOrAdmin, h.updateWorker)
		workers.GET("/:id/attendance", h.listWorkerAttendance)
	}

	attendance := rg.Group("/attendance")
	{
		attendance.POST("", h.markAttendance)
		attendance.GET("", h.listAttendanceByDate)
	}

	salaries := rg.Group("/salaries")
	{
		salaries.POST("/generate", managerOrAdmin, h.generateSalaries)
		salaries.GET("", h.listSalariesByPeriod)
		salaries.GET("/:id", h.getSalary)
		salaries.PUT("/:id/deductions", managerOrAdmin, h.setDeductions)
		salaries.POST("/:id/approve", managerOrAdmin, h.approveSalary)
		salaries.POST("/:id/pay", managerOrAdmin, h.markSalaryPaid)
	}
}

// createWorker godoc
// @Summary Register a worker
// @Tags workers
// @Accept json
// @Produce json
// @Param worker body dto.CreateWorkerRequest true "Worker details"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create worker"
// @Security BearerAuth
// @Router /workers [post]
func (h *workerHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	worker, err := h.workerService.CreateWorker(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create worker", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create worker"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToWorkerResponse(worker))
}

// listWorkers godoc
// @Summary List workers
// @Description Lists active workers; pass includeInactive=true for the full roster.
// @Tags workers
// @Produce json
// @Param includeInactive query bool false "Include inactive workers" default(false)
// @Success 200 {array} dto.WorkerResponse
// @Failure 500 {object} map[string]string "Failed to list workers"
// @Security BearerAuth
// @Router /workers [get]
func (h *workerHandler) listWorkers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	includeInactive := c.Query("includeInactive") == "true"
	workers, err := h.workerService.ListWorkers(c.Request.Context(), includeInactive)
	if err != nil {
		logger.Error("Failed to list workers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListWorkerResponse(workers))
}

// getWorker godoc
// @Summary Get a worker by ID
// @Tags workers
// @Produce json
// @Param id path string true "Worker ID"
// @Success 200 {object} dto.WorkerResponse
// @Failure 404 {object} map[string]string "Worker not found"
// @Failure 500 {object} map[string]string "Failed to retrieve worker"
// @Security BearerAuth
// @Router /workers/{id} [get]
func (h *workerHandler) getWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	worker, err := h.workerService.GetWorkerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		logger.Error("Failed to get worker", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve worker"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// updateWorker godoc
// @Summary Update a worker
// @Tags workers
// @Accept json
// @Produce json
// @Param id path string true "Worker ID"
// @Param worker body dto.UpdateWorkerRequest true "Fields to update"
// @Success 200 {object} dto.WorkerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Worker not found"
// @Failure 500 {object} map[string]string "Failed to update worker"
// @Security BearerAuth
// @Router /workers/{id} [put]
func (h *workerHandler) updateWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	worker, err := h.workerService.UpdateWorker(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to update worker", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update worker"})
		return
	}

	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// markAttendance godoc
// @Summary Mark attendance
// @Description Upserts one worker's attendance for a day. Marking the same day twice overwrites the earlier mark.
// @Tags attendance
// @Accept json
// @Produce json
// @Param attendance body dto.MarkAttendanceRequest true "Attendance details"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Worker not found"
// @Failure 500 {object} map[string]string "Failed to mark attendance"
// @Security BearerAuth
// @Router /attendance [post]
func (h *workerHandler) markAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	attendance, err := h.workerService.MarkAttendance(c.Request.Context(), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Worker not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to mark attendance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark attendance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceResponse(attendance))
}

// listAttendanceByDate godoc
// @Summary List attendance for a day
// @Description Lists all attendance rows for one day. Defaults to today when no date is given.
// @Tags attendance
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 500 {object} map[string]string "Failed to list attendance"
// @Security BearerAuth
// @Router /attendance [get]
func (h *workerHandler) listAttendanceByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	day := time.Now().UTC()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	attendance, err := h.workerService.ListAttendanceByDate(c.Request.Context(), day)
	if err != nil {
		logger.Error("Failed to list attendance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAttendanceResponse(attendance))
}

// listWorkerAttendance godoc
// @Summary List one worker's attendance over a range
// @Tags attendance
// @Produce json
// @Param id path string true "Worker ID"
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, exclusive)"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 500 {object} map[string]string "Failed to list attendance"
// @Security BearerAuth
// @Router /workers/{id}/attendance [get]
func (h *workerHandler) listWorkerAttendance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
		return
	}

	attendance, err := h.workerService.ListWorkerAttendance(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		logger.Error("Failed to list worker attendance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list attendance"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListAttendanceResponse(attendance))
}

// generateSalaries godoc
// @Summary Generate draft salaries for a period
// @Description Computes a draft salary for every active worker from the period's attendance. Existing drafts are replaced; approved and paid records are untouched.
// @Tags salaries
// @Produce json
// @Param period query string true "Period (YYYY-MM)"
// @Success 201 {array} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to generate salaries"
// @Security BearerAuth
// @Router /salaries/generate [post]
func (h *workerHandler) generateSalaries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	salaries, err := h.salaryService.GenerateSalaries(c.Request.Context(), c.Query("period"), requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to generate salaries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate salaries"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToListSalaryResponse(salaries))
}

// listSalariesByPeriod godoc
// @Summary List salaries for a period
// @Tags salaries
// @Produce json
// @Param period query string true "Period (YYYY-MM)"
// @Success 200 {array} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 500 {object} map[string]string "Failed to list salaries"
// @Security BearerAuth
// @Router /salaries [get]
func (h *workerHandler) listSalariesByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	salaries, err := h.salaryService.ListSalariesByPeriod(c.Request.Context(), c.Query("period"))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list salaries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list salaries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSalaryResponse(salaries))
}

// getSalary godoc
// @Summary Get a salary record by ID
// @Tags salaries
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 404 {object} map[string]string "Salary not found"
// @Failure 500 {object} map[string]string "Failed to retrieve salary"
// @Security BearerAuth
// @Router /salaries/{id} [get]
func (h *workerHandler) getSalary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	salary, err := h.salaryService.GetSalaryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salary not found"})
			return
		}
		logger.Error("Failed to get salary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve salary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// setDeductions godoc
// @Summary Set deductions on a draft salary
// @Description Adjusts a draft's deductions and recomputes net pay. Approved and paid records are immutable.
// @Tags salaries
// @Accept json
// @Produce json
// @Param id path string true "Salary ID"
// @Param deductions body dto.SetDeductionsRequest true "Deductions"
// @Success 200 {object} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Invalid deductions or non-draft record"
// @Failure 404 {object} map[string]string "Salary not found"
// @Failure 500 {object} map[string]string "Failed to set deductions"
// @Security BearerAuth
// @Router /salaries/{id}/deductions [put]
func (h *workerHandler) setDeductions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetDeductionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	salary, err := h.salaryService.SetDeductions(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salary not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to set deductions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set deductions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}

// approveSalary godoc
// @Summary Approve a draft salary
// @Tags salaries
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Illegal transition"
// @Failure 404 {object} map[string]string "Salary not found"
// @Failure 500 {object} map[string]string "Failed to approve salary"
// @Security BearerAuth
// @Router /salaries/{id}/approve [post]
func (h *workerHandler) approveSalary(c *gin.Context) {
	h.transitionSalary(c, h.salaryService.ApproveSalary)
}

// markSalaryPaid godoc
// @Summary Mark an approved salary as paid
// @Tags salaries
// @Produce json
// @Param id path string true "Salary ID"
// @Success 200 {object} dto.SalaryResponse
// @Failure 400 {object} map[string]string "Illegal transition"
// @Failure 404 {object} map[string]string "Salary not found"
// @Failure 500 {object} map[string]string "Failed to mark salary paid"
// @Security BearerAuth
// @Router /salaries/{id}/pay [post]
func (h *workerHandler) markSalaryPaid(c *gin.Context) {
	h.transitionSalary(c, h.salaryService.MarkSalaryPaid)
}

func (h *workerHandler) transitionSalary(c *gin.Context, transition func(ctx context.Context, salaryID, actorUserID string) (*domain.Salary, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	salary, err := transition(c.Request.Context(), c.Param("id"), actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Salary not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to transition salary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update salary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalaryResponse(salary))
}
