package payroll

import (
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Line is one computed payroll row. Money is rounded to 2 decimals; day
// counts may carry halves from overrides.
type Line struct {
	EmployeeID   int64
	EmployeeCode string
	FullName     string
	Designation  *string
	Window       Window
	WindowDays   int

	BaseSalary decimal.Decimal
	PreDays    decimal.Decimal
	CurDays    decimal.Decimal

	DailyRate          decimal.Decimal
	EarningsBasic      decimal.Decimal
	LeaveEncashmentPay decimal.Decimal
	OTRateEffective    decimal.Decimal
	OTPay              decimal.Decimal
	Gross              decimal.Decimal
	Deductions         decimal.Decimal
	NetPay             decimal.Decimal

	Attendance attendance.Summary
	Entry      SheetEntry

	// Snapshot fields resolved against the master profile
	MobileNo          *string
	BankName          *string
	BankAccountNumber *string
	BankCash          string
	Remarks           *string
}

// ComputeLine derives a payroll line from the master profile, the window's
// attendance aggregate and the stored entry. The window must be valid.
func ComputeLine(w Window, emp employee.Employee, sum attendance.Summary, entry SheetEntry) Line {
	days := decimal.NewFromInt(int64(w.Days()))

	preDays := days.
		Sub(decimal.NewFromInt(int64(sum.DaysAbsent))).
		Sub(decimal.NewFromInt(int64(sum.DaysLeaveUnpaid)))
	if entry.PreDaysOverride != nil {
		preDays = *entry.PreDaysOverride
	}
	curDays := preDays
	if entry.CurDaysOverride != nil {
		curDays = *entry.CurDaysOverride
	}

	// multiply before dividing so whole-month lines stay exact
	earningsBasic := emp.BaseSalary.Mul(curDays).Div(days)
	encashment := emp.BaseSalary.Mul(entry.LeaveEncashmentDays).Div(days)

	otRate := emp.OTRate
	if entry.OTRateOverride.IsPositive() {
		otRate = entry.OTRateOverride
	}
	otPay := decimal.NewFromInt(int64(sum.OvertimeMinutesTotal)).Mul(otRate).Div(sixty).Add(entry.OTBonusAmount)

	gross := earningsBasic.Add(encashment).Add(otPay).Add(entry.AllowOther)
	deductions := entry.EOBI.
		Add(entry.Tax).
		Add(entry.FineAdvExtra).
		Add(sum.LateDeductionTotal).
		Add(sum.FineTotal)

	line := Line{
		EmployeeID:         emp.ID,
		EmployeeCode:       emp.EmployeeCode,
		FullName:           emp.FullName,
		Designation:        emp.Designation,
		Window:             w,
		WindowDays:         w.Days(),
		BaseSalary:         emp.BaseSalary,
		PreDays:            preDays,
		CurDays:            curDays,
		DailyRate:          emp.BaseSalary.Div(days).Round(2),
		EarningsBasic:      earningsBasic.Round(2),
		LeaveEncashmentPay: encashment.Round(2),
		OTRateEffective:    otRate,
		OTPay:              otPay.Round(2),
		Gross:              gross.Round(2),
		Deductions:         deductions.Round(2),
		NetPay:             gross.Sub(deductions).Round(2),
		Attendance:         sum,
		Entry:              entry,
		MobileNo:           firstNonNil(entry.MobileNo, emp.MobileNo),
		BankName:           firstNonNil(entry.BankName, emp.BankName),
		BankAccountNumber:  firstNonNil(entry.BankAccountNumber, emp.BankAccountNumber),
		BankCash:           string(emp.BankCash),
		Remarks:            entry.Remarks,
	}
	if bc := firstNonNil(entry.BankCash); bc != nil {
		line.BankCash = *bc
	}
	return line
}

func firstNonNil(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}
