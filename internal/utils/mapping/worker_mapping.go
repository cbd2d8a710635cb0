package mapping

import (
	"database/sql"

	"github.com/palamattam/rubber_plant_app/internal/core/domain"
	"github.com/palamattam/rubber_plant_app/internal/models"
)

// ToModelWorker converts a domain Worker to a model Worker
func ToModelWorker(d domain.Worker) models.Worker {
	return models.Worker{
		WorkerID:    d.WorkerID,
		Name:        d.Name,
		Phone:       d.Phone,
		Category:    string(d.Category),
		DailyWage:   d.DailyWage,
		JoinedAt:    d.JoinedAt,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorker converts a model Worker to a domain Worker
func ToDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID:    m.WorkerID,
		Name:        m.Name,
		Phone:       m.Phone,
		Category:    domain.WorkerCategory(m.Category),
		DailyWage:   m.DailyWage,
		JoinedAt:    m.JoinedAt,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWorkerSlice converts a slice of model Workers to domain Workers
func ToDomainWorkerSlice(ms []models.Worker) []domain.Worker {
	ds := make([]domain.Worker, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorker(m)
	}
	return ds
}

// ToModelAttendance converts a domain Attendance to a model Attendance
func ToModelAttendance(d domain.Attendance) models.Attendance {
	return models.Attendance{
		AttendanceID:  d.AttendanceID,
		WorkerID:      d.WorkerID,
		Date:          d.Date,
		Present:       d.Present,
		Shift:         string(d.Shift),
		OvertimeHours: d.OvertimeHours,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAttendance converts a model Attendance to a domain Attendance
func ToDomainAttendance(m models.Attendance) domain.Attendance {
	return domain.Attendance{
		AttendanceID:  m.AttendanceID,
		WorkerID:      m.WorkerID,
		Date:          m.Date,
		Present:       m.Present,
		Shift:         domain.AttendanceShift(m.Shift),
		OvertimeHours: m.OvertimeHours,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAttendanceSlice converts model Attendance rows to domain form
func ToDomainAttendanceSlice(ms []models.Attendance) []domain.Attendance {
	ds := make([]domain.Attendance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendance(m)
	}
	return ds
}

// ToModelSalary converts a domain Salary to a model Salary
func ToModelSalary(d domain.Salary) models.Salary {
	m := models.Salary{
		SalaryID:      d.SalaryID,
		WorkerID:      d.WorkerID,
		Period:        d.Period,
		DaysPresent:   d.DaysPresent,
		OvertimeHours: d.OvertimeHours,
		GrossPay:      d.GrossPay,
		Deductions:    d.Deductions,
		NetPay:        d.NetPay,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.ApprovedBy != "" {
		m.ApprovedBy = sql.NullString{String: d.ApprovedBy, Valid: true}
	}
	if d.ApprovedAt != nil {
		m.ApprovedAt = sql.NullTime{Time: *d.ApprovedAt, Valid: true}
	}
	if d.PaidAt != nil {
		m.PaidAt = sql.NullTime{Time: *d.PaidAt, Valid: true}
	}
	return m
}

// ToDomainSalary converts a model Salary to a domain Salary
func ToDomainSalary(m models.Salary) domain.Salary {
	d := domain.Salary{
		SalaryID:      m.SalaryID,
		WorkerID:      m.WorkerID,
		Period:        m.Period,
		DaysPresent:   m.DaysPresent,
		OvertimeHours: m.OvertimeHours,
		GrossPay:      m.GrossPay,
		Deductions:    m.Deductions,
		NetPay:        m.NetPay,
		Status:        domain.SalaryStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ApprovedBy.Valid {
		d.ApprovedBy = m.ApprovedBy.String
	}
	if m.ApprovedAt.Valid {
		t := m.ApprovedAt.Time
		d.ApprovedAt = &t
	}
	if m.PaidAt.Valid {
		t := m.PaidAt.Time
		d.PaidAt = &t
	}
	return d
}

// ToDomainSalarySlice converts model Salary rows to domain form
func ToDomainSalarySlice(ms []models.Salary) []domain.Salary {
	ds := make([]domain.Salary, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSalary(m)
	}
	return ds
}
