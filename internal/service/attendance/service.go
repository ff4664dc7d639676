package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	tx              database.Transactor
	attendanceRepo  attendance.AttendanceRepository
	leavePeriodRepo attendance.LeavePeriodRepository
	employeeRepo    employee.EmployeeRepository
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	leavePeriodRepo attendance.LeavePeriodRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:              tx,
		attendanceRepo:  attendanceRepo,
		leavePeriodRepo: leavePeriodRepo,
		employeeRepo:    employeeRepo,
	}
}

// MarkAttendance implements attendance.AttendanceService. The unique
// (employee, date) constraint decides concurrent attempts.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	record := attendance.AttendanceRecord{
		EmployeeID: emp.ID,
		Date:       date,
	}
	req.AttendanceFields.Apply(&record)

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.AttendanceRecord
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := s.attendanceRepo.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}
		req.AttendanceFields.Apply(&record)

		updated, err = s.attendanceRepo.Update(ctx, record)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(updated), nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id int64) (attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAttendanceResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id int64) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SummaryResponse{}, err
	}
	from, _ := validator.IsValidDate(req.FromDate)
	to, _ := validator.IsValidDate(req.ToDate)
	if to.Before(from) {
		return attendance.SummaryResponse{}, attendance.ErrInvalidDateRange
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	sum, err := s.SummarizeEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	return attendance.SummaryResponse{
		EmployeeCode: emp.EmployeeCode,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		WindowDays:   attendance.DaysInclusive(from, to),
		Summary:      sum,
	}, nil
}

// SummarizeEmployee loads the employee's records and overlapping leave
// periods and aggregates them. Payroll calls it once per sheet line.
func (s *AttendanceServiceImpl) SummarizeEmployee(ctx context.Context, employeeID int64, from, to time.Time) (attendance.Summary, error) {
	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	periods, err := s.leavePeriodRepo.ListOverlapping(ctx, employeeID, from, to)
	if err != nil {
		return attendance.Summary{}, fmt.Errorf("failed to load leave periods: %w", err)
	}
	return attendance.Summarize(from, to, records, periods), nil
}

// CreateLeavePeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateLeavePeriod(ctx context.Context, req attendance.CreateLeavePeriodRequest) (attendance.LeavePeriodResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.LeavePeriodResponse{}, err
	}

	emp, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.LeavePeriodResponse{}, err
	}
	from, _ := validator.IsValidDate(req.FromDate)
	to, _ := validator.IsValidDate(req.ToDate)

	created, err := s.leavePeriodRepo.Create(ctx, attendance.LeavePeriod{
		EmployeeID: emp.ID,
		FromDate:   from,
		ToDate:     to,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
	})
	if err != nil {
		return attendance.LeavePeriodResponse{}, err
	}
	return attendance.NewLeavePeriodResponse(created), nil
}

// ListLeavePeriods implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListLeavePeriods(ctx context.Context, filter attendance.LeavePeriodFilter) ([]attendance.LeavePeriodResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	periods, err := s.leavePeriodRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave periods: %w", err)
	}

	responses := make([]attendance.LeavePeriodResponse, 0, len(periods))
	for _, p := range periods {
		responses = append(responses, attendance.NewLeavePeriodResponse(p))
	}
	return responses, nil
}

// DeleteLeavePeriod implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteLeavePeriod(ctx context.Context, id int64) error {
	return s.leavePeriodRepo.Delete(ctx, id)
}

// LeaveAlerts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) LeaveAlerts(ctx context.Context, today time.Time, lookaheadDays int) ([]attendance.LeavePeriodAlert, error) {
	if lookaheadDays < 0 {
		lookaheadDays = 0
	}
	today = attendance.DateOnly(today)

	periods, err := s.leavePeriodRepo.ListEndingBetween(ctx, today, today.AddDate(0, 0, lookaheadDays))
	if err != nil {
		return nil, fmt.Errorf("failed to list ending leave periods: %w", err)
	}

	alerts := make([]attendance.LeavePeriodAlert, 0, len(periods))
	for _, p := range periods {
		lastDay := attendance.DateOnly(p.ToDate)
		alerts = append(alerts, attendance.LeavePeriodAlert{
			LeavePeriodID: p.ID,
			EmployeeCode:  p.EmployeeCode,
			FromDate:      p.FromDate.Format(validator.DateLayout),
			ToDate:        lastDay.Format(validator.DateLayout),
			LeaveType:     p.LeaveType,
			Reason:        p.Reason,
			LastDay:       lastDay.Format(validator.DateLayout),
			Message:       alertMessage(p.EmployeeCode, today, lastDay),
		})
	}
	return alerts, nil
}

func alertMessage(employeeCode string, today, lastDay time.Time) string {
	switch attendance.DaysInclusive(today, lastDay) {
	case 1:
		return fmt.Sprintf("Leave of %s ends today", employeeCode)
	case 2:
		return fmt.Sprintf("Leave of %s ends tomorrow", employeeCode)
	}
	return fmt.Sprintf("Leave of %s ends on %s", employeeCode, lastDay.Format(validator.DateLayout))
}
