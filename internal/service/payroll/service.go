package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// AttendanceSummarizer is the slice of the attendance service payroll reads.
type AttendanceSummarizer interface {
	SummarizeEmployee(ctx context.Context, employeeID int64, from, to time.Time) (attendance.Summary, error)
}

type PayrollServiceImpl struct {
	tx           database.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	advanceRepo  advance.AdvanceRepository
	attendance   AttendanceSummarizer
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	advanceRepo advance.AdvanceRepository,
	attendance AttendanceSummarizer,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		advanceRepo:  advanceRepo,
		attendance:   attendance,
	}
}

// ========== LINES ==========

// ComputeSheet implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeSheet(ctx context.Context, req payroll.ComputeSheetRequest) (payroll.SheetResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return payroll.SheetResponse{}, err
	}

	var resp payroll.SheetResponse
	err = s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		var err error
		resp, err = s.computeSheet(ctx, w, req.EmployeeCodes)
		return err
	})
	if err != nil {
		return payroll.SheetResponse{}, err
	}
	return resp, nil
}

func (s *PayrollServiceImpl) computeSheet(ctx context.Context, w payroll.Window, employeeCodes []string) (payroll.SheetResponse, error) {
	var (
		employees []employee.Employee
		err       error
	)
	if len(employeeCodes) == 0 {
		employees, err = s.employeeRepo.ListActive(ctx)
		if err != nil {
			return payroll.SheetResponse{}, fmt.Errorf("failed to list active employees: %w", err)
		}
	} else {
		employees, err = s.employeesByCode(ctx, employeeCodes)
		if err != nil {
			return payroll.SheetResponse{}, err
		}
	}

	entries, err := s.payrollRepo.ListEntries(ctx, w.From, w.To)
	if err != nil {
		return payroll.SheetResponse{}, fmt.Errorf("failed to list sheet entries: %w", err)
	}
	entryByEmployee := make(map[int64]payroll.SheetEntry, len(entries))
	for _, e := range entries {
		entryByEmployee[e.EmployeeID] = e
	}

	resp := payroll.SheetResponse{
		FromDate:   w.From.Format(validator.DateLayout),
		ToDate:     w.To.Format(validator.DateLayout),
		WindowDays: w.Days(),
		Lines:      make([]payroll.LineResponse, 0, len(employees)),
		Totals: payroll.SheetTotals{
			Gross:      decimal.Zero,
			Deductions: decimal.Zero,
			NetPay:     decimal.Zero,
		},
	}
	if month, ok := w.Month(); ok {
		resp.Month = &month
	}

	for _, emp := range employees {
		entry, ok := entryByEmployee[emp.ID]
		if !ok {
			entry = payroll.EmptyEntry(emp.ID, w)
		}
		line, err := s.computeLine(ctx, w, emp, entry)
		if err != nil {
			return payroll.SheetResponse{}, err
		}
		resp.Lines = append(resp.Lines, line)
		resp.Totals.Gross = resp.Totals.Gross.Add(line.Gross)
		resp.Totals.Deductions = resp.Totals.Deductions.Add(line.Deductions)
		resp.Totals.NetPay = resp.Totals.NetPay.Add(line.NetPay)
	}
	return resp, nil
}

// ComputeLine implements payroll.PayrollService.
func (s *PayrollServiceImpl) ComputeLine(ctx context.Context, req payroll.LineRequest) (payroll.LineResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return payroll.LineResponse{}, err
	}

	var line payroll.LineResponse
	err = s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		emp, err := s.employeeByCode(ctx, req.EmployeeCode)
		if err != nil {
			return err
		}
		entry, err := s.entryOrEmpty(ctx, emp.ID, w)
		if err != nil {
			return err
		}
		line, err = s.computeLine(ctx, w, emp, entry)
		return err
	})
	if err != nil {
		return payroll.LineResponse{}, err
	}
	return line, nil
}

func (s *PayrollServiceImpl) computeLine(ctx context.Context, w payroll.Window, emp employee.Employee, entry payroll.SheetEntry) (payroll.LineResponse, error) {
	sum, err := s.attendance.SummarizeEmployee(ctx, emp.ID, w.From, w.To)
	if err != nil {
		return payroll.LineResponse{}, err
	}

	resp := payroll.NewLineResponse(payroll.ComputeLine(w, emp, sum, entry))

	month := w.To.Format(validator.MonthLayout)
	monthStart, _ := validator.ParseMonth(month)
	advanced, err := s.advanceRepo.SumAdvances(ctx, emp.ID, advance.MonthEnd(monthStart))
	if err != nil {
		return payroll.LineResponse{}, err
	}
	deducted, err := s.advanceRepo.SumDeductions(ctx, emp.ID, month)
	if err != nil {
		return payroll.LineResponse{}, err
	}
	resp.AdvanceOutstanding = advanced.Sub(deducted)

	scheduled, err := s.advanceRepo.GetDeduction(ctx, emp.ID, month)
	switch {
	case err == nil:
		resp.ScheduledDeduction = &scheduled.Amount
	case !errors.Is(err, advance.ErrDeductionNotFound):
		return payroll.LineResponse{}, err
	}

	if windowMonth, ok := w.Month(); ok {
		status, err := s.payrollRepo.GetPaymentStatus(ctx, emp.ID, windowMonth)
		switch {
		case err == nil:
			value := string(status.Status)
			resp.PaymentStatus = &value
			resp.NetPaySnapshot = status.NetPaySnapshot
		case !errors.Is(err, payroll.ErrPaymentStatusNotFound):
			return payroll.LineResponse{}, err
		}
	}
	return resp, nil
}

// ========== ENTRIES ==========

// GetEntry implements payroll.PayrollService. A line nobody edited yet
// returns the implicit empty entry.
func (s *PayrollServiceImpl) GetEntry(ctx context.Context, req payroll.LineRequest) (payroll.EntryResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	emp, err := s.employeeByCode(ctx, req.EmployeeCode)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	entry, err := s.entryOrEmpty(ctx, emp.ID, w)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	entry.EmployeeCode = emp.EmployeeCode
	return payroll.NewEntryResponse(entry), nil
}

// UpsertEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpsertEntry(ctx context.Context, req payroll.UpsertEntryRequest) (payroll.EntryResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	emp, err := s.employeeByCode(ctx, req.EmployeeCode)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	entry := payroll.EmptyEntry(emp.ID, w)
	req.SheetEntryFields.ApplyTo(&entry)

	saved, err := s.payrollRepo.UpsertEntry(ctx, entry)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	saved.EmployeeCode = emp.EmployeeCode
	return payroll.NewEntryResponse(saved), nil
}

// BulkUpsertEntries implements payroll.PayrollService.
func (s *PayrollServiceImpl) BulkUpsertEntries(ctx context.Context, req payroll.BulkUpsertRequest) ([]payroll.EntryResponse, error) {
	w, err := req.Validate()
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		codes = append(codes, e.EmployeeCode)
	}
	employees, err := s.employeesByCode(ctx, codes)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.EntryResponse, 0, len(req.Entries))
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for i, e := range req.Entries {
			emp := employees[i]
			entry := payroll.EmptyEntry(emp.ID, w)
			e.SheetEntryFields.ApplyTo(&entry)

			saved, err := s.payrollRepo.UpsertEntry(ctx, entry)
			if err != nil {
				return fmt.Errorf("entries[%d]: %w", i, err)
			}
			saved.EmployeeCode = emp.EmployeeCode
			responses = append(responses, payroll.NewEntryResponse(saved))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// ========== PAYMENT STATUS ==========

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) (payroll.PaymentStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentStatusResponse{}, err
	}
	emp, err := s.employeeByCode(ctx, req.EmployeeCode)
	if err != nil {
		return payroll.PaymentStatusResponse{}, err
	}

	saved, err := s.payrollRepo.UpsertPaymentStatus(ctx, payroll.Paid(emp.ID, req.Month, req.NetPay))
	if err != nil {
		return payroll.PaymentStatusResponse{}, err
	}
	return payroll.NewPaymentStatusResponse(saved), nil
}

// MarkUnpaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkUnpaid(ctx context.Context, req payroll.MarkUnpaidRequest) (payroll.PaymentStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentStatusResponse{}, err
	}
	emp, err := s.employeeByCode(ctx, req.EmployeeCode)
	if err != nil {
		return payroll.PaymentStatusResponse{}, err
	}

	saved, err := s.payrollRepo.UpsertPaymentStatus(ctx, payroll.Unpaid(emp.ID, req.Month))
	if err != nil {
		return payroll.PaymentStatusResponse{}, err
	}
	return payroll.NewPaymentStatusResponse(saved), nil
}

// SetPaymentStatus implements payroll.PayrollService. Marking paid computes
// the whole month's line and snapshots its net pay.
func (s *PayrollServiceImpl) SetPaymentStatus(ctx context.Context, req payroll.PaymentStatusUpsert) (payroll.PaymentStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentStatusResponse{}, err
	}

	var saved payroll.PaymentStatus
	err := s.tx.WithinSnapshot(ctx, func(ctx context.Context) error {
		emp, err := s.employeeByCode(ctx, req.EmployeeCode)
		if err != nil {
			return err
		}

		status := payroll.Unpaid(emp.ID, req.Month)
		if payroll.PaymentStatusValue(req.Status) == payroll.StatusPaid {
			monthStart, _ := validator.ParseMonth(req.Month)
			w := payroll.NewWindow(monthStart, advance.MonthEnd(monthStart))

			entry, err := s.entryOrEmpty(ctx, emp.ID, w)
			if err != nil {
				return err
			}
			line, err := s.computeLine(ctx, w, emp, entry)
			if err != nil {
				return err
			}
			if line.NetPay.IsNegative() {
				return validator.ValidationErrors{{
					Field:   "net_pay",
					Message: "a negative net pay cannot be marked paid",
				}}
			}
			status = payroll.Paid(emp.ID, req.Month, line.NetPay)
		}

		saved, err = s.payrollRepo.UpsertPaymentStatus(ctx, status)
		return err
	})
	if err != nil {
		return payroll.PaymentStatusResponse{}, err
	}
	return payroll.NewPaymentStatusResponse(saved), nil
}

// TotalPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) TotalPaid(ctx context.Context, month string) (payroll.TotalPaidResponse, error) {
	if !validator.IsValidMonth(month) {
		return payroll.TotalPaidResponse{}, validator.ValidationErrors{{Field: "month", Message: "must be a month in YYYY-MM format"}}
	}

	total, err := s.payrollRepo.TotalPaid(ctx, month)
	if err != nil {
		return payroll.TotalPaidResponse{}, err
	}
	return payroll.TotalPaidResponse{Month: month, TotalPaid: total}, nil
}

// ListPaymentStatuses implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPaymentStatuses(ctx context.Context, month string) ([]payroll.PaymentStatusResponse, error) {
	if !validator.IsValidMonth(month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be a month in YYYY-MM format"}}
	}

	statuses, err := s.payrollRepo.ListPaymentStatuses(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment statuses: %w", err)
	}

	responses := make([]payroll.PaymentStatusResponse, 0, len(statuses))
	for _, ps := range statuses {
		responses = append(responses, payroll.NewPaymentStatusResponse(ps))
	}
	return responses, nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) employeeByCode(ctx context.Context, code string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, fmt.Errorf("%w: %s", payroll.ErrUnknownEmployee, code)
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// employeesByCode returns the employees in the order of codes and fails on
// the first code that does not exist.
func (s *PayrollServiceImpl) employeesByCode(ctx context.Context, codes []string) ([]employee.Employee, error) {
	found, err := s.employeeRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	byCode := make(map[string]employee.Employee, len(found))
	for _, e := range found {
		byCode[e.EmployeeCode] = e
	}

	out := make([]employee.Employee, 0, len(codes))
	var missing []string
	for _, code := range codes {
		e, ok := byCode[code]
		if !ok {
			missing = append(missing, code)
			continue
		}
		out = append(out, e)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", payroll.ErrUnknownEmployee, missing)
	}
	return out, nil
}

func (s *PayrollServiceImpl) entryOrEmpty(ctx context.Context, employeeID int64, w payroll.Window) (payroll.SheetEntry, error) {
	entry, err := s.payrollRepo.GetEntry(ctx, employeeID, w.From, w.To)
	if err != nil {
		if errors.Is(err, payroll.ErrEntryNotFound) {
			return payroll.EmptyEntry(employeeID, w), nil
		}
		return payroll.SheetEntry{}, err
	}
	return entry, nil
}
