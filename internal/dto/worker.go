package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
)

// CreateWorkerRequest defines the payload for registering a plant worker.
type CreateWorkerRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Phone     string          `json:"phone" binding:"omitempty,max=20"`
	Category  string          `json:"category" binding:"required,oneof=tapper factory office"`
	DailyWage decimal.Decimal `json:"dailyWage" binding:"required"`
	JoinedAt  *time.Time      `json:"joinedAt,omitempty"`
}

// UpdateWorkerRequest defines the payload for editing a worker.
type UpdateWorkerRequest struct {
	Name      *string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Phone     *string          `json:"phone,omitempty" binding:"omitempty,max=20"`
	Category  *string          `json:"category,omitempty" binding:"omitempty,oneof=tapper factory office"`
	DailyWage *decimal.Decimal `json:"dailyWage,omitempty"`
	IsActive  *bool            `json:"isActive,omitempty"`
}

// WorkerResponse defines the API shape of a worker.
type WorkerResponse struct {
	WorkerID  string          `json:"workerID"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Category  string          `json:"category"`
	DailyWage decimal.Decimal `json:"dailyWage"`
	JoinedAt  time.Time       `json:"joinedAt"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToWorkerResponse converts a domain.Worker to WorkerResponse
func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:  w.WorkerID,
		Name:      w.Name,
		Phone:     w.Phone,
		Category:  string(w.Category),
		DailyWage: w.DailyWage,
		JoinedAt:  w.JoinedAt,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}

// ToListWorkerResponse converts domain workers to response DTOs
func ToListWorkerResponse(ws []domain.Worker) []WorkerResponse {
	responses := make([]WorkerResponse, len(ws))
	for i := range ws {
		responses[i] = ToWorkerResponse(&ws[i])
	}
	return responses
}

// MarkAttendanceRequest records one worker's attendance for a day.
type MarkAttendanceRequest struct {
	WorkerID      string           `json:"workerID" binding:"required"`
	Date          *time.Time       `json:"date,omitempty"` // defaults to today
	Present       bool             `json:"present"`
	Shift         string           `json:"shift" binding:"omitempty,oneof=morning evening full"`
	OvertimeHours *decimal.Decimal `json:"overtimeHours,omitempty"`
}

// AttendanceResponse defines the API shape of an attendance row.
type AttendanceResponse struct {
	AttendanceID  string          `json:"attendanceID"`
	WorkerID      string          `json:"workerID"`
	Date          time.Time       `json:"date"`
	Present       bool            `json:"present"`
	Shift         string          `json:"shift"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
}

// ToAttendanceResponse converts a domain.Attendance to AttendanceResponse
func ToAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		AttendanceID:  a.AttendanceID,
		WorkerID:      a.WorkerID,
		Date:          a.Date,
		Present:       a.Present,
		Shift:         string(a.Shift),
		OvertimeHours: a.OvertimeHours,
	}
}

// ToListAttendanceResponse converts domain attendance rows to response DTOs
func ToListAttendanceResponse(as []domain.Attendance) []AttendanceResponse {
	responses := make([]AttendanceResponse, len(as))
	for i := range as {
		responses[i] = ToAttendanceResponse(&as[i])
	}
	return responses
}

// SalaryResponse defines the API shape of a salary record.
type SalaryResponse struct {
	SalaryID      string          `json:"salaryID"`
	WorkerID      string          `json:"workerID"`
	Period        string          `json:"period"`
	DaysPresent   int             `json:"daysPresent"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	GrossPay      decimal.Decimal `json:"grossPay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"netPay"`
	Status        string          `json:"status"`
	ApprovedBy    string          `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time      `json:"approvedAt,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
}

// ToSalaryResponse converts a domain.Salary to SalaryResponse
func ToSalaryResponse(s *domain.Salary) SalaryResponse {
	return SalaryResponse{
		SalaryID:      s.SalaryID,
		WorkerID:      s.WorkerID,
		Period:        s.Period,
		DaysPresent:   s.DaysPresent,
		OvertimeHours: s.OvertimeHours,
		GrossPay:      s.GrossPay,
		Deductions:    s.Deductions,
		NetPay:        s.NetPay,
		Status:        string(s.Status),
		ApprovedBy:    s.ApprovedBy,
		ApprovedAt:    s.ApprovedAt,
		PaidAt:        s.PaidAt,
	}
}

// ToListSalaryResponse converts domain salaries to response DTOs
func ToListSalaryResponse(ss []domain.Salary) []SalaryResponse {
	responses := make([]SalaryResponse, len(ss))
	for i := range ss {
		responses[i] = ToSalaryResponse(&ss[i])
	}
	return responses
}

// SetDeductionsRequest adjusts a draft salary's deductions (advances etc).
type SetDeductionsRequest struct {
	Deductions decimal.Decimal `json:"deductions" binding:"required"`
}
