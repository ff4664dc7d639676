package employee

import (
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode      string          `json:"employee_code" validate:"required,code"`
	FullName          string          `json:"full_name" validate:"required,max=150"`
	Designation       *string         `json:"designation,omitempty" validate:"omitempty,max=100"`
	Status            string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive terminated"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	OTRate            decimal.Decimal `json:"ot_rate"`
	MobileNo          *string         `json:"mobile_no,omitempty" validate:"omitempty,max=30"`
	BankName          *string         `json:"bank_name,omitempty" validate:"omitempty,max=100"`
	BankAccountNumber *string         `json:"bank_account_number,omitempty" validate:"omitempty,max=50"`
	BankCash          string          `json:"bank_cash,omitempty" validate:"omitempty,oneof=bank cash"`
	HireDate          *string         `json:"hire_date,omitempty" validate:"omitempty,date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.OTRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ot_rate", Message: "must be non-negative"})
	}
	if r.BankCash == string(PayByBank) && (r.BankAccountNumber == nil || validator.IsEmpty(*r.BankAccountNumber)) {
		errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "is required when paid by bank"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(r), errs)
	}
	return validator.Struct(r)
}

// ToEntity applies defaults: status active, paid in cash.
func (r *CreateEmployeeRequest) ToEntity() Employee {
	e := Employee{
		EmployeeCode:      r.EmployeeCode,
		FullName:          r.FullName,
		Designation:       r.Designation,
		Status:            StatusActive,
		BaseSalary:        r.BaseSalary,
		OTRate:            r.OTRate,
		MobileNo:          r.MobileNo,
		BankName:          r.BankName,
		BankAccountNumber: r.BankAccountNumber,
		BankCash:          PayByCash,
	}
	if r.Status != "" {
		e.Status = Status(r.Status)
	}
	if r.BankCash != "" {
		e.BankCash = BankCash(r.BankCash)
	}
	if r.HireDate != nil {
		if d, ok := validator.IsValidDate(*r.HireDate); ok {
			e.HireDate = &d
		}
	}
	return e
}

// UpdateEmployeeRequest patches the profile. The code is not updatable.
type UpdateEmployeeRequest struct {
	ID                int64            `json:"-"`
	FullName          *string          `json:"full_name,omitempty" validate:"omitempty,min=1,max=150"`
	Designation       *string          `json:"designation,omitempty" validate:"omitempty,max=100"`
	Status            *string          `json:"status,omitempty" validate:"omitempty,oneof=active inactive terminated"`
	BaseSalary        *decimal.Decimal `json:"base_salary,omitempty"`
	OTRate            *decimal.Decimal `json:"ot_rate,omitempty"`
	MobileNo          *string          `json:"mobile_no,omitempty" validate:"omitempty,max=30"`
	BankName          *string          `json:"bank_name,omitempty" validate:"omitempty,max=100"`
	BankAccountNumber *string          `json:"bank_account_number,omitempty" validate:"omitempty,max=50"`
	BankCash          *string          `json:"bank_cash,omitempty" validate:"omitempty,oneof=bank cash"`
	HireDate          *string          `json:"hire_date,omitempty" validate:"omitempty,date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.OTRate != nil && r.OTRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ot_rate", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(r), errs)
	}
	return validator.Struct(r)
}

// Apply merges the non-nil fields into e.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.FullName != nil {
		e.FullName = *r.FullName
	}
	if r.Designation != nil {
		e.Designation = r.Designation
	}
	if r.Status != nil {
		e.Status = Status(*r.Status)
	}
	if r.BaseSalary != nil {
		e.BaseSalary = *r.BaseSalary
	}
	if r.OTRate != nil {
		e.OTRate = *r.OTRate
	}
	if r.MobileNo != nil {
		e.MobileNo = r.MobileNo
	}
	if r.BankName != nil {
		e.BankName = r.BankName
	}
	if r.BankAccountNumber != nil {
		e.BankAccountNumber = r.BankAccountNumber
	}
	if r.BankCash != nil {
		e.BankCash = BankCash(*r.BankCash)
	}
	if r.HireDate != nil {
		if d, ok := validator.IsValidDate(*r.HireDate); ok {
			e.HireDate = &d
		}
	}
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"` // code or name
	Status *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
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
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of active, inactive, terminated"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                int64           `json:"id"`
	EmployeeCode      string          `json:"employee_code"`
	FullName          string          `json:"full_name"`
	Designation       *string         `json:"designation,omitempty"`
	Status            string          `json:"status"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	OTRate            decimal.Decimal `json:"ot_rate"`
	MobileNo          *string         `json:"mobile_no,omitempty"`
	BankName          *string         `json:"bank_name,omitempty"`
	BankAccountNumber *string         `json:"bank_account_number,omitempty"`
	BankCash          string          `json:"bank_cash"`
	HireDate          *string         `json:"hire_date,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                e.ID,
		EmployeeCode:      e.EmployeeCode,
		FullName:          e.FullName,
		Designation:       e.Designation,
		Status:            string(e.Status),
		BaseSalary:        e.BaseSalary,
		OTRate:            e.OTRate,
		MobileNo:          e.MobileNo,
		BankName:          e.BankName,
		BankAccountNumber: e.BankAccountNumber,
		BankCash:          string(e.BankCash),
		CreatedAt:         e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         e.UpdatedAt.Format(time.RFC3339),
	}
	if e.HireDate != nil {
		d := e.HireDate.Format(validator.DateLayout)
		resp.HireDate = &d
	}
	return resp
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
