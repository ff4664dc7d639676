package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ParseWindow validates the two date strings and builds the window.
func ParseWindow(fromDate, toDate string) (Window, error) {
	var errs validator.ValidationErrors
	from, ok := validator.IsValidDate(fromDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "from_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	to, ok := validator.IsValidDate(toDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "to_date", Message: "must be a date in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return Window{}, errs
	}
	w := NewWindow(from, to)
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// ========== SHEET ENTRY DTOs ==========

// SheetEntryFields is the full mutable field set of a sheet entry. An upsert
// replaces all of it; omitted money fields become zero.
type SheetEntryFields struct {
	PreDaysOverride     *decimal.Decimal `json:"pre_days_override"`
	CurDaysOverride     *decimal.Decimal `json:"cur_days_override"`
	LeaveEncashmentDays decimal.Decimal  `json:"leave_encashment_days"`
	AllowOther          decimal.Decimal  `json:"allow_other"`
	EOBI                decimal.Decimal  `json:"eobi"`
	Tax                 decimal.Decimal  `json:"tax"`
	FineAdvExtra        decimal.Decimal  `json:"fine_adv_extra"`
	OTRateOverride      decimal.Decimal  `json:"ot_rate_override"`
	OTBonusAmount       decimal.Decimal  `json:"ot_bonus_amount"`

	MobileNo          *string `json:"mobile_no,omitempty" validate:"omitempty,max=30"`
	BankName          *string `json:"bank_name,omitempty" validate:"omitempty,max=100"`
	BankAccountNumber *string `json:"bank_account_number,omitempty" validate:"omitempty,max=50"`
	BankCash          *string `json:"bank_cash,omitempty" validate:"omitempty,oneof=bank cash"`
	Remarks           *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

func (f SheetEntryFields) validate(prefix string) error {
	var errs validator.ValidationErrors
	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"leave_encashment_days", f.LeaveEncashmentDays},
		{"allow_other", f.AllowOther},
		{"eobi", f.EOBI},
		{"tax", f.Tax},
		{"fine_adv_extra", f.FineAdvExtra},
		{"ot_rate_override", f.OTRateOverride},
		{"ot_bonus_amount", f.OTBonusAmount},
	}
	if f.PreDaysOverride != nil {
		nonNegative = append(nonNegative, struct {
			field string
			value decimal.Decimal
		}{"pre_days_override", *f.PreDaysOverride})
	}
	if f.CurDaysOverride != nil {
		nonNegative = append(nonNegative, struct {
			field string
			value decimal.Decimal
		}{"cur_days_override", *f.CurDaysOverride})
	}
	for _, n := range nonNegative {
		if n.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: prefix + n.field, Message: "must be non-negative"})
		}
	}

	tagErrs := validator.Struct(f)
	if verrs, ok := tagErrs.(validator.ValidationErrors); ok {
		for i := range verrs {
			verrs[i].Field = prefix + verrs[i].Field
		}
	}
	return validator.Collect(tagErrs, errs)
}

// ApplyTo copies the field set onto e, replacing whatever it held.
func (f SheetEntryFields) ApplyTo(e *SheetEntry) {
	e.PreDaysOverride = f.PreDaysOverride
	e.CurDaysOverride = f.CurDaysOverride
	e.LeaveEncashmentDays = f.LeaveEncashmentDays
	e.AllowOther = f.AllowOther
	e.EOBI = f.EOBI
	e.Tax = f.Tax
	e.FineAdvExtra = f.FineAdvExtra
	e.OTRateOverride = f.OTRateOverride
	e.OTBonusAmount = f.OTBonusAmount
	e.MobileNo = f.MobileNo
	e.BankName = f.BankName
	e.BankAccountNumber = f.BankAccountNumber
	e.BankCash = f.BankCash
	e.Remarks = f.Remarks
}

// SheetEntryUpsert is one row of a (bulk) upsert.
type SheetEntryUpsert struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	SheetEntryFields `validate:"-"`
}

func (e SheetEntryUpsert) validate(prefix string) error {
	tagErrs := validator.Struct(e)
	if verrs, ok := tagErrs.(validator.ValidationErrors); ok {
		for i := range verrs {
			verrs[i].Field = prefix + verrs[i].Field
		}
	}
	return validator.Collect(tagErrs, e.SheetEntryFields.validate(prefix))
}

type UpsertEntryRequest struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
	SheetEntryUpsert
}

func (r *UpsertEntryRequest) Validate() (Window, error) {
	w, err := ParseWindow(r.FromDate, r.ToDate)
	if err := validator.Collect(err, r.SheetEntryUpsert.validate("")); err != nil {
		return Window{}, err
	}
	return w, nil
}

// BulkUpsertRequest is applied all-or-nothing.
type BulkUpsertRequest struct {
	FromDate string             `json:"from_date"`
	ToDate   string             `json:"to_date"`
	Entries  []SheetEntryUpsert `json:"entries"`
}

func (r *BulkUpsertRequest) Validate() (Window, error) {
	w, windowErr := ParseWindow(r.FromDate, r.ToDate)

	var errs validator.ValidationErrors
	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{Field: "entries", Message: "must have at least 1 item(s)"})
	}
	checks := []error{windowErr, errs}
	seen := make(map[string]int, len(r.Entries))
	for i, e := range r.Entries {
		prefix := fmt.Sprintf("entries[%d].", i)
		checks = append(checks, e.validate(prefix))
		if first, dup := seen[e.EmployeeCode]; dup && e.EmployeeCode != "" {
			checks = append(checks, validator.ValidationErrors{{
				Field:   prefix + "employee_code",
				Message: fmt.Sprintf("duplicates entries[%d]", first),
			}})
			continue
		}
		seen[e.EmployeeCode] = i
	}
	if err := validator.Collect(checks...); err != nil {
		return Window{}, err
	}
	return w, nil
}

// LineRequest addresses one employee's line in a window.
type LineRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	FromDate     string `json:"from_date"`
	ToDate       string `json:"to_date"`
}

func (r *LineRequest) Validate() (Window, error) {
	w, err := ParseWindow(r.FromDate, r.ToDate)
	if err := validator.Collect(validator.Struct(r), err); err != nil {
		return Window{}, err
	}
	return w, nil
}

// ComputeSheetRequest computes every listed employee's line; an empty list
// means all active employees.
type ComputeSheetRequest struct {
	FromDate      string   `json:"from_date"`
	ToDate        string   `json:"to_date"`
	EmployeeCodes []string `json:"employee_codes" validate:"omitempty,dive,code"`
}

func (r *ComputeSheetRequest) Validate() (Window, error) {
	w, err := ParseWindow(r.FromDate, r.ToDate)
	if err := validator.Collect(validator.Struct(r), err); err != nil {
		return Window{}, err
	}
	return w, nil
}

type EntryResponse struct {
	ID                  int64            `json:"id"`
	EmployeeCode        string           `json:"employee_code"`
	FromDate            string           `json:"from_date"`
	ToDate              string           `json:"to_date"`
	PreDaysOverride     *decimal.Decimal `json:"pre_days_override"`
	CurDaysOverride     *decimal.Decimal `json:"cur_days_override"`
	LeaveEncashmentDays decimal.Decimal  `json:"leave_encashment_days"`
	AllowOther          decimal.Decimal  `json:"allow_other"`
	EOBI                decimal.Decimal  `json:"eobi"`
	Tax                 decimal.Decimal  `json:"tax"`
	FineAdvExtra        decimal.Decimal  `json:"fine_adv_extra"`
	OTRateOverride      decimal.Decimal  `json:"ot_rate_override"`
	OTBonusAmount       decimal.Decimal  `json:"ot_bonus_amount"`
	MobileNo            *string          `json:"mobile_no"`
	BankName            *string          `json:"bank_name"`
	BankAccountNumber   *string          `json:"bank_account_number"`
	BankCash            *string          `json:"bank_cash"`
	Remarks             *string          `json:"remarks"`
	UpdatedAt           *string          `json:"updated_at"`
}

func NewEntryResponse(e SheetEntry) EntryResponse {
	resp := EntryResponse{
		ID:                  e.ID,
		EmployeeCode:        e.EmployeeCode,
		FromDate:            e.FromDate.Format(validator.DateLayout),
		ToDate:              e.ToDate.Format(validator.DateLayout),
		PreDaysOverride:     e.PreDaysOverride,
		CurDaysOverride:     e.CurDaysOverride,
		LeaveEncashmentDays: e.LeaveEncashmentDays,
		AllowOther:          e.AllowOther,
		EOBI:                e.EOBI,
		Tax:                 e.Tax,
		FineAdvExtra:        e.FineAdvExtra,
		OTRateOverride:      e.OTRateOverride,
		OTBonusAmount:       e.OTBonusAmount,
		MobileNo:            e.MobileNo,
		BankName:            e.BankName,
		BankAccountNumber:   e.BankAccountNumber,
		BankCash:            e.BankCash,
		Remarks:             e.Remarks,
	}
	if !e.UpdatedAt.IsZero() {
		ts := e.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &ts
	}
	return resp
}

// ========== LINE / SHEET DTOs ==========

type LineResponse struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	Designation  *string `json:"designation,omitempty"`
	FromDate     string  `json:"from_date"`
	ToDate       string  `json:"to_date"`
	WindowDays   int     `json:"window_days"`

	BaseSalary         decimal.Decimal `json:"base_salary"`
	PreDays            decimal.Decimal `json:"pre_days"`
	CurDays            decimal.Decimal `json:"cur_days"`
	DailyRate          decimal.Decimal `json:"daily_rate"`
	EarningsBasic      decimal.Decimal `json:"earnings_basic"`
	LeaveEncashmentPay decimal.Decimal `json:"leave_encashment_pay"`
	OTRateEffective    decimal.Decimal `json:"ot_rate_effective"`
	OTPay              decimal.Decimal `json:"ot_pay"`
	Gross              decimal.Decimal `json:"gross"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`

	Attendance attendance.Summary `json:"attendance"`
	Entry      EntryResponse      `json:"entry"`

	MobileNo          *string `json:"mobile_no"`
	BankName          *string `json:"bank_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	BankCash          string  `json:"bank_cash"`
	Remarks           *string `json:"remarks"`

	// Surfaced for the operator; never deducted automatically
	AdvanceOutstanding decimal.Decimal  `json:"advance_outstanding"`
	ScheduledDeduction *decimal.Decimal `json:"scheduled_deduction"`

	PaymentStatus  *string          `json:"payment_status,omitempty"`
	NetPaySnapshot *decimal.Decimal `json:"net_pay_snapshot,omitempty"`
}

func NewLineResponse(l Line) LineResponse {
	entry := l.Entry
	entry.EmployeeCode = l.EmployeeCode
	return LineResponse{
		EmployeeCode:       l.EmployeeCode,
		FullName:           l.FullName,
		Designation:        l.Designation,
		FromDate:           l.Window.From.Format(validator.DateLayout),
		ToDate:             l.Window.To.Format(validator.DateLayout),
		WindowDays:         l.WindowDays,
		BaseSalary:         l.BaseSalary,
		PreDays:            l.PreDays,
		CurDays:            l.CurDays,
		DailyRate:          l.DailyRate,
		EarningsBasic:      l.EarningsBasic,
		LeaveEncashmentPay: l.LeaveEncashmentPay,
		OTRateEffective:    l.OTRateEffective,
		OTPay:              l.OTPay,
		Gross:              l.Gross,
		Deductions:         l.Deductions,
		NetPay:             l.NetPay,
		Attendance:         l.Attendance,
		Entry:              NewEntryResponse(entry),
		MobileNo:           l.MobileNo,
		BankName:           l.BankName,
		BankAccountNumber:  l.BankAccountNumber,
		BankCash:           l.BankCash,
		Remarks:            l.Remarks,
		AdvanceOutstanding: decimal.Zero,
	}
}

type SheetTotals struct {
	Gross      decimal.Decimal `json:"gross"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
}

type SheetResponse struct {
	FromDate   string         `json:"from_date"`
	ToDate     string         `json:"to_date"`
	WindowDays int            `json:"window_days"`
	Month      *string        `json:"month,omitempty"`
	Lines      []LineResponse `json:"lines"`
	Totals     SheetTotals    `json:"totals"`
}

// ========== PAYMENT STATUS DTOs ==========

// PaymentStatusUpsert marks a month's line paid or unpaid. Paid snapshots the
// line's current net pay.
type PaymentStatusUpsert struct {
	Month        string `json:"month" validate:"required,yyyymm"`
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	Status       string `json:"status" validate:"required,oneof=paid unpaid"`
}

func (r *PaymentStatusUpsert) Validate() error {
	return validator.Struct(r)
}

type MarkPaidRequest struct {
	EmployeeCode string          `json:"employee_code" validate:"required,code"`
	Month        string          `json:"month" validate:"required,yyyymm"`
	NetPay       decimal.Decimal `json:"net_pay"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.NetPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "net_pay", Message: "a negative net pay cannot be marked paid"})
	}
	return validator.Collect(validator.Struct(r), errs)
}

type MarkUnpaidRequest struct {
	EmployeeCode string `json:"employee_code" validate:"required,code"`
	Month        string `json:"month" validate:"required,yyyymm"`
}

func (r *MarkUnpaidRequest) Validate() error {
	return validator.Struct(r)
}

type PaymentStatusResponse struct {
	Month          string           `json:"month"`
	EmployeeCode   string           `json:"employee_code"`
	EmployeeName   string           `json:"employee_name,omitempty"`
	Status         string           `json:"status"`
	NetPaySnapshot *decimal.Decimal `json:"net_pay_snapshot"`
	UpdatedAt      string           `json:"updated_at"`
}

func NewPaymentStatusResponse(ps PaymentStatus) PaymentStatusResponse {
	return PaymentStatusResponse{
		Month:          ps.Month,
		EmployeeCode:   ps.EmployeeCode,
		EmployeeName:   ps.EmployeeName,
		Status:         string(ps.Status),
		NetPaySnapshot: ps.NetPaySnapshot,
		UpdatedAt:      ps.UpdatedAt.Format(time.RFC3339),
	}
}

type TotalPaidResponse struct {
	Month     string          `json:"month"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}
