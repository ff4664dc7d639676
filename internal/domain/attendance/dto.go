package attendance

import (
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// AttendanceFields are the mutable per-day values shared by create and update.
type AttendanceFields struct {
	Status          string           `json:"status" validate:"required,oneof=unmarked present absent leave late off holiday"`
	OvertimeMinutes *int             `json:"overtime_minutes,omitempty" validate:"omitempty,gte=0"`
	OvertimeRate    *decimal.Decimal `json:"overtime_rate,omitempty"`
	LateMinutes     *int             `json:"late_minutes,omitempty" validate:"omitempty,gte=0"`
	LateDeduction   *decimal.Decimal `json:"late_deduction,omitempty"`
	LeaveType       *string          `json:"leave_type,omitempty" validate:"omitempty,max=50"`
	FineAmount      *decimal.Decimal `json:"fine_amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
}

func (f AttendanceFields) validate() error {
	var errs validator.ValidationErrors
	nonNegative := map[string]*decimal.Decimal{
		"overtime_rate":  f.OvertimeRate,
		"late_deduction": f.LateDeduction,
		"fine_amount":    f.FineAmount,
	}
	for field, v := range nonNegative {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if Status(f.Status) == StatusLeave && (f.LeaveType == nil || validator.IsEmpty(*f.LeaveType)) {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "is required when status is leave"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(f), errs)
	}
	return validator.Struct(f)
}

// Apply copies the mutable fields onto r.
func (f AttendanceFields) Apply(r *AttendanceRecord) {
	r.Status = Status(f.Status)
	r.OvertimeMinutes = f.OvertimeMinutes
	r.OvertimeRate = f.OvertimeRate
	r.LateMinutes = f.LateMinutes
	r.LateDeduction = f.LateDeduction
	r.LeaveType = f.LeaveType
	r.FineAmount = f.FineAmount
	r.Notes = f.Notes
}

type MarkAttendanceRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	Date         string `json:"date" validate:"required,date"`
	AttendanceFields `validate:"-"`
}

func (r *MarkAttendanceRequest) Validate() error {
	return validator.Collect(validator.Struct(r), r.AttendanceFields.validate())
}

type UpdateAttendanceRequest struct {
	ID int64 `json:"-"`
	AttendanceFields `validate:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	return r.AttendanceFields.validate()
}

type AttendanceResponse struct {
	ID              int64            `json:"id"`
	EmployeeCode    string           `json:"employee_code"`
	EmployeeName    string           `json:"employee_name"`
	Date            string           `json:"date"`
	Status          string           `json:"status"`
	OvertimeMinutes *int             `json:"overtime_minutes,omitempty"`
	OvertimeRate    *decimal.Decimal `json:"overtime_rate,omitempty"`
	LateMinutes     *int             `json:"late_minutes,omitempty"`
	LateDeduction   *decimal.Decimal `json:"late_deduction,omitempty"`
	LeaveType       *string          `json:"leave_type,omitempty"`
	FineAmount      *decimal.Decimal `json:"fine_amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
}

func NewAttendanceResponse(r AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:              r.ID,
		EmployeeCode:    r.EmployeeCode,
		EmployeeName:    r.EmployeeName,
		Date:            r.Date.Format(validator.DateLayout),
		Status:          string(r.Status),
		OvertimeMinutes: r.OvertimeMinutes,
		OvertimeRate:    r.OvertimeRate,
		LateMinutes:     r.LateMinutes,
		LateDeduction:   r.LateDeduction,
		LeaveType:       r.LeaveType,
		FineAmount:      r.FineAmount,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}

type AttendanceFilter struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	FromDate     *string `json:"from_date,omitempty"` // YYYY-MM-DD
	ToDate       *string `json:"to_date,omitempty"`   // YYYY-MM-DD
	Status       *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 31
	}
	if f.Limit > 366 {
		f.Limit = 366
	}

	var from, to time.Time
	if f.FromDate != nil {
		d, ok := validator.IsValidDate(*f.FromDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be a date in YYYY-MM-DD format"})
		}
		from = d
	}
	if f.ToDate != nil {
		d, ok := validator.IsValidDate(*f.ToDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be a date in YYYY-MM-DD format"})
		}
		to = d
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must not be before from_date"})
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid attendance status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type SummaryRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	FromDate     string `json:"from_date" validate:"required,date"`
	ToDate       string `json:"to_date" validate:"required,date"`
}

func (r *SummaryRequest) Validate() error {
	return validator.Struct(r)
}

type SummaryResponse struct {
	EmployeeCode string `json:"employee_code"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
	WindowDays   int    `json:"window_days"`
	Summary
}

// ========================================
// LEAVE PERIOD DTOs
// ========================================

type CreateLeavePeriodRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,code"`
	FromDate     string  `json:"from_date" validate:"required,date"`
	ToDate       string  `json:"to_date" validate:"required,date"`
	LeaveType    string  `json:"leave_type" validate:"required,max=50"`
	Reason       *string `json:"reason,omitempty"`
}

func (r *CreateLeavePeriodRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	from, _ := validator.IsValidDate(r.FromDate)
	to, _ := validator.IsValidDate(r.ToDate)
	if to.Before(from) {
		return validator.ValidationErrors{{Field: "to_date", Message: "must not be before from_date"}}
	}
	return nil
}

type LeavePeriodFilter struct {
	EmployeeCode *string `json:"employee_code,omitempty"`
	FromDate     *string `json:"from_date,omitempty"`
	ToDate       *string `json:"to_date,omitempty"`
}

func (f *LeavePeriodFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.FromDate != nil {
		if _, ok := validator.IsValidDate(*f.FromDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if f.ToDate != nil {
		if _, ok := validator.IsValidDate(*f.ToDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeavePeriodResponse struct {
	ID           int64   `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	LeaveType    string  `json:"leave_type"`
	Reason       *string `json:"reason,omitempty"`
	Days         int     `json:"days"`
	CreatedAt    string  `json:"created_at"`
}

func NewLeavePeriodResponse(p LeavePeriod) LeavePeriodResponse {
	return LeavePeriodResponse{
		ID:           p.ID,
		EmployeeCode: p.EmployeeCode,
		EmployeeName: p.EmployeeName,
		FromDate:     p.FromDate.Format(validator.DateLayout),
		ToDate:       p.ToDate.Format(validator.DateLayout),
		LeaveType:    p.LeaveType,
		Reason:       p.Reason,
		Days:         DaysInclusive(p.FromDate, p.ToDate),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}

// LeavePeriodAlert is raised when a leave period ends within the lookahead window.
type LeavePeriodAlert struct {
	LeavePeriodID int64   `json:"leave_period_id"`
	EmployeeCode  string  `json:"employee_code"`
	FromDate      string  `json:"from_date"`
	ToDate        string  `json:"to_date"`
	LeaveType     string  `json:"leave_type"`
	Reason        *string `json:"reason,omitempty"`
	LastDay       string  `json:"last_day"`
	Message       string  `json:"message"`
}
