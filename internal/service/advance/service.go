package advance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
}

func NewAdvanceService(advanceRepo advance.AdvanceRepository, employeeRepo employee.EmployeeRepository) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
	}
}

// RecordAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) RecordAdvance(ctx context.Context, req advance.RecordAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.AdvanceDate)

	created, err := s.advanceRepo.CreateAdvance(ctx, advance.Advance{
		EmployeeID:  emp.ID,
		Amount:      req.Amount,
		AdvanceDate: date,
		Note:        req.Note,
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.NewAdvanceResponse(created), nil
}

// ListAdvances implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, filter advance.AdvanceFilter) ([]advance.AdvanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, filter.EmployeeCode)
	if err != nil {
		return nil, err
	}

	var from, to *time.Time
	if filter.FromDate != nil {
		d, _ := validator.IsValidDate(*filter.FromDate)
		from = &d
	}
	if filter.ToDate != nil {
		d, _ := validator.IsValidDate(*filter.ToDate)
		to = &d
	}

	advances, err := s.advanceRepo.ListAdvances(ctx, emp.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, advance.NewAdvanceResponse(a))
	}
	return responses, nil
}

// DeleteAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) DeleteAdvance(ctx context.Context, id int64) error {
	return s.advanceRepo.DeleteAdvance(ctx, id)
}

// SetDeduction implements advance.AdvanceService.
func (s *AdvanceServiceImpl) SetDeduction(ctx context.Context, req advance.SetDeductionRequest) (advance.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.DeductionResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return advance.DeductionResponse{}, err
	}

	d, err := s.advanceRepo.UpsertDeduction(ctx, advance.Deduction{
		EmployeeID: emp.ID,
		Month:      req.Month,
		Amount:     req.Amount,
	})
	if err != nil {
		return advance.DeductionResponse{}, err
	}
	return advance.NewDeductionResponse(d), nil
}

// ListDeductions implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListDeductions(ctx context.Context, employeeCode string) ([]advance.DeductionResponse, error) {
	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return nil, err
	}

	deductions, err := s.advanceRepo.ListDeductions(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}

	responses := make([]advance.DeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		responses = append(responses, advance.NewDeductionResponse(d))
	}
	return responses, nil
}

// Outstanding is every advance dated up to the end of asOfMonth minus every
// deduction scheduled for a month up to and including asOfMonth.
func (s *AdvanceServiceImpl) Outstanding(ctx context.Context, employeeCode string, asOfMonth string) (advance.Balance, error) {
	monthStart, ok := validator.ParseMonth(asOfMonth)
	if !ok {
		return advance.Balance{}, validator.ValidationErrors{{Field: "month", Message: "must be a month in YYYY-MM format"}}
	}

	emp, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		return advance.Balance{}, err
	}

	advanced, err := s.advanceRepo.SumAdvances(ctx, emp.ID, advance.MonthEnd(monthStart))
	if err != nil {
		return advance.Balance{}, err
	}
	deducted, err := s.advanceRepo.SumDeductions(ctx, emp.ID, asOfMonth)
	if err != nil {
		return advance.Balance{}, err
	}

	return advance.NewBalance(emp.EmployeeCode, asOfMonth, advanced, deducted), nil
}
