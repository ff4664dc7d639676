package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance is a single cash disbursement to an employee.
type Advance struct {
	ID          int64
	EmployeeID  int64
	Amount      decimal.Decimal
	AdvanceDate time.Time
	Note        *string
	CreatedAt   time.Time

	// Joined fields
	EmployeeCode string
}

// Deduction is the amount recovered from an employee in one month.
// At most one row exists per (EmployeeID, Month).
type Deduction struct {
	ID         int64
	EmployeeID int64
	Month      string // YYYY-MM
	Amount     decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeCode string
}

// Balance is the outstanding advance position as of the end of a month.
type Balance struct {
	EmployeeCode  string          `json:"employee_code"`
	AsOfMonth     string          `json:"as_of_month"`
	TotalAdvanced decimal.Decimal `json:"total_advanced"`
	TotalDeducted decimal.Decimal `json:"total_deducted"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// NewBalance derives the outstanding amount from the two running totals.
func NewBalance(employeeCode, asOfMonth string, advanced, deducted decimal.Decimal) Balance {
	return Balance{
		EmployeeCode:  employeeCode,
		AsOfMonth:     asOfMonth,
		TotalAdvanced: advanced,
		TotalDeducted: deducted,
		Outstanding:   advanced.Sub(deducted),
	}
}

// MonthEnd returns the last calendar day of a YYYY-MM month start.
func MonthEnd(monthStart time.Time) time.Time {
	return monthStart.AddDate(0, 1, -1)
}
