package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnmarked Status = "unmarked"
	StatusPresent  Status = "present"
	StatusAbsent   Status = "absent"
	StatusLeave    Status = "leave"
	StatusLate     Status = "late"
	StatusOff      Status = "off"
	StatusHoliday  Status = "holiday"
)

var Statuses = []string{
	string(StatusUnmarked), string(StatusPresent), string(StatusAbsent), string(StatusLeave),
	string(StatusLate), string(StatusOff), string(StatusHoliday),
}

// LeaveTypeUnpaid is the only leave type that reduces payable days.
const LeaveTypeUnpaid = "unpaid"

// AttendanceRecord is one employee-day. Unique on (EmployeeID, Date).
type AttendanceRecord struct {
	ID              int64
	EmployeeID      int64
	Date            time.Time
	Status          Status
	OvertimeMinutes *int
	OvertimeRate    *decimal.Decimal
	LateMinutes     *int
	LateDeduction   *decimal.Decimal
	LeaveType       *string
	FineAmount      *decimal.Decimal
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
}

// LeavePeriod is an inclusive calendar range of leave. Periods may overlap.
type LeavePeriod struct {
	ID         int64
	EmployeeID int64
	FromDate   time.Time
	ToDate     time.Time
	LeaveType  string
	Reason     *string
	CreatedAt  time.Time

	// Joined fields
	EmployeeCode string
	EmployeeName string
}

func (p LeavePeriod) IsUnpaid() bool {
	return p.LeaveType == LeaveTypeUnpaid
}

// Summary is the per-window attendance aggregate consumed by payroll.
type Summary struct {
	FromDate time.Time `json:"-"`
	ToDate   time.Time `json:"-"`

	DaysPresent     int `json:"days_present"`
	DaysAbsent      int `json:"days_absent"`
	DaysLeavePaid   int `json:"days_leave_paid"`
	DaysLeaveUnpaid int `json:"days_leave_unpaid"`
	DaysLate        int `json:"days_late"`
	DaysOff         int `json:"days_off"`
	DaysHoliday     int `json:"days_holiday"`
	DaysUnmarked    int `json:"days_unmarked"`

	OvertimeMinutesTotal int             `json:"overtime_minutes_total"`
	OvertimePay          decimal.Decimal `json:"overtime_pay"`
	LateDeductionTotal   decimal.Decimal `json:"late_deduction_total"`
	FineTotal            decimal.Decimal `json:"fine_total"`

	// LeavePeriodDays counts window days covered by at least one leave period.
	LeavePeriodDays int `json:"leave_period_days"`
}
