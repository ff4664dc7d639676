package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the master profile payroll and inventory link to.
// EmployeeCode is the external identifier and never changes once assigned.
type Employee struct {
	ID                int64
	EmployeeCode      string
	FullName          string
	Designation       *string
	Status            Status
	BaseSalary        decimal.Decimal
	OTRate            decimal.Decimal
	MobileNo          *string
	BankName          *string
	BankAccountNumber *string
	BankCash          BankCash
	HireDate          *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

var Statuses = []string{string(StatusActive), string(StatusInactive), string(StatusTerminated)}

// BankCash is how salary is paid out.
type BankCash string

const (
	PayByBank BankCash = "bank"
	PayByCash BankCash = "cash"
)
