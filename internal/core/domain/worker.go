package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerCategory groups plant workers by the kind of work they do.
type WorkerCategory string

const (
	WorkerCategoryTapper  WorkerCategory = "tapper"
	WorkerCategoryFactory WorkerCategory = "factory"
	WorkerCategoryOffice  WorkerCategory = "office"
)

// IsValid reports whether the category is a known worker category.
func (c WorkerCategory) IsValid() bool {
	switch c {
	case WorkerCategoryTapper, WorkerCategoryFactory, WorkerCategoryOffice:
		return true
	}
	return false
}

// Worker is a daily-wage plant worker (distinct from User, which is a login account).
type Worker struct {
	WorkerID  string          `json:"workerID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Category  WorkerCategory  `json:"category"`
	DailyWage decimal.Decimal `json:"dailyWage"`
	JoinedAt  time.Time       `json:"joinedAt"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// AttendanceShift names the shift an attendance entry applies to.
type AttendanceShift string

const (
	ShiftMorning AttendanceShift = "morning"
	ShiftEvening AttendanceShift = "evening"
	ShiftFull    AttendanceShift = "full"
)

// Attendance is one worker's record for one local calendar day.
// There is at most one row per (worker, day); repeated marks overwrite.
type Attendance struct {
	AttendanceID  string          `json:"attendanceID"` // Primary Key (UUID)
	WorkerID      string          `json:"workerID"`
	Date          time.Time       `json:"date"` // local midnight of the day
	Present       bool            `json:"present"`
	Shift         AttendanceShift `json:"shift"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	AuditFields
}

// SalaryStatus is the approval state of a monthly salary record.
type SalaryStatus string

const (
	SalaryStatusDraft    SalaryStatus = "draft"
	SalaryStatusApproved SalaryStatus = "approved"
	SalaryStatusPaid     SalaryStatus = "paid"
)

// CanTransitionTo enforces draft -> approved -> paid.
func (s SalaryStatus) CanTransitionTo(next SalaryStatus) bool {
	switch s {
	case SalaryStatusDraft:
		return next == SalaryStatusApproved
	case SalaryStatusApproved:
		return next == SalaryStatusPaid
	}
	return false
}

// Salary is a computed monthly wage record for one worker.
type Salary struct {
	SalaryID      string          `json:"salaryID"` // Primary Key (UUID)
	WorkerID      string          `json:"workerID"`
	Period        string          `json:"period"` // "YYYY-MM"
	DaysPresent   int             `json:"daysPresent"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	GrossPay      decimal.Decimal `json:"grossPay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"netPay"`
	Status        SalaryStatus    `json:"status"`
	ApprovedBy    string          `json:"approvedBy,omitempty"`
	ApprovedAt    *time.Time      `json:"approvedAt,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// standardShiftHours is the length of a full working day used for overtime pay.
var standardShiftHours = decimal.NewFromInt(8)

// overtimeMultiplier is the premium applied to overtime hours.
var overtimeMultiplier = decimal.NewFromFloat(1.5)

// ComputeGrossPay applies the plant wage formula:
// daysPresent*dailyWage + overtimeHours*(dailyWage/8)*1.5.
func ComputeGrossPay(dailyWage decimal.Decimal, daysPresent int, overtimeHours decimal.Decimal) decimal.Decimal {
	base := dailyWage.Mul(decimal.NewFromInt(int64(daysPresent)))
	hourly := dailyWage.Div(standardShiftHours)
	overtime := overtimeHours.Mul(hourly).Mul(overtimeMultiplier)
	return base.Add(overtime).Round(2)
}
