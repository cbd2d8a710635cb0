package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Worker is a row of the workers table.
type Worker struct {
	WorkerID  string          `db:"worker_id"`
	Name      string          `db:"name"`
	Phone     string          `db:"phone"`
	Category  string          `db:"category"`
	DailyWage decimal.Decimal `db:"daily_wage"`
	JoinedAt  time.Time       `db:"joined_at"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}

// Attendance is a row of the attendance table, unique per (worker_id, date).
type Attendance struct {
	AttendanceID  string          `db:"attendance_id"`
	WorkerID      string          `db:"worker_id"`
	Date          time.Time       `db:"date"`
	Present       bool            `db:"present"`
	Shift         string          `db:"shift"`
	OvertimeHours decimal.Decimal `db:"overtime_hours"`
	AuditFields
}

// Salary is a row of the salaries table, unique per (worker_id, period).
type Salary struct {
	SalaryID      string          `db:"salary_id"`
	WorkerID      string          `db:"worker_id"`
	Period        string          `db:"period"`
	DaysPresent   int             `db:"days_present"`
	OvertimeHours decimal.Decimal `db:"overtime_hours"`
	GrossPay      decimal.Decimal `db:"gross_pay"`
	Deductions    decimal.Decimal `db:"deductions"`
	NetPay        decimal.Decimal `db:"net_pay"`
	Status        string          `db:"status"`
	ApprovedBy    sql.NullString  `db:"approved_by"`
	ApprovedAt    sql.NullTime    `db:"approved_at"`
	PaidAt        sql.NullTime    `db:"paid_at"`
	AuditFields
}
