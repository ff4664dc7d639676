package advance

import (
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordAdvanceRequest struct {
	EmployeeCode string          `json:"employee_code" validate:"required,code"`
	Amount       decimal.Decimal `json:"amount"`
	AdvanceDate  string          `json:"advance_date" validate:"required,date"`
	Note         *string         `json:"note,omitempty" validate:"omitempty,max=500"`
}

func (r *RecordAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(r), errs)
	}
	return validator.Struct(r)
}

type SetDeductionRequest struct {
	EmployeeCode string          `json:"employee_code" validate:"required,code"`
	Month        string          `json:"month" validate:"required,yyyymm"`
	Amount       decimal.Decimal `json:"amount"`
}

func (r *SetDeductionRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return validator.Collect(validator.Struct(r), errs)
	}
	return validator.Struct(r)
}

type AdvanceFilter struct {
	EmployeeCode string  `json:"employee_code" validate:"required,code"`
	FromDate     *string `json:"from_date,omitempty" validate:"omitempty,date"`
	ToDate       *string `json:"to_date,omitempty" validate:"omitempty,date"`
}

func (f *AdvanceFilter) Validate() error {
	return validator.Struct(f)
}

type AdvanceResponse struct {
	ID           int64           `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	Amount       decimal.Decimal `json:"amount"`
	AdvanceDate  string          `json:"advance_date"`
	Note         *string         `json:"note,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func NewAdvanceResponse(a Advance) AdvanceResponse {
	return AdvanceResponse{
		ID:           a.ID,
		EmployeeCode: a.EmployeeCode,
		Amount:       a.Amount,
		AdvanceDate:  a.AdvanceDate.Format(validator.DateLayout),
		Note:         a.Note,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}

type DeductionResponse struct {
	ID           int64           `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	Month        string          `json:"month"`
	Amount       decimal.Decimal `json:"amount"`
	UpdatedAt    string          `json:"updated_at"`
}

func NewDeductionResponse(d Deduction) DeductionResponse {
	return DeductionResponse{
		ID:           d.ID,
		EmployeeCode: d.EmployeeCode,
		Month:        d.Month,
		Amount:       d.Amount,
		UpdatedAt:    d.UpdatedAt.Format(time.RFC3339),
	}
}
