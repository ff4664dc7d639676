package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	// MarkAttendance records one employee-day; a second record for the same day is a conflict
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance replaces the mutable fields of a record
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id int64) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id int64) error

	// Summarize aggregates attendance and leave for one employee over a window
	Summarize(ctx context.Context, req SummaryRequest) (SummaryResponse, error)

	// SummarizeEmployee is the aggregate payroll reads for one line
	SummarizeEmployee(ctx context.Context, employeeID int64, from, to time.Time) (Summary, error)

	CreateLeavePeriod(ctx context.Context, req CreateLeavePeriodRequest) (LeavePeriodResponse, error)
	ListLeavePeriods(ctx context.Context, filter LeavePeriodFilter) ([]LeavePeriodResponse, error)
	DeleteLeavePeriod(ctx context.Context, id int64) error

	// LeaveAlerts lists periods whose last day falls in [today, today+lookaheadDays]
	LeaveAlerts(ctx context.Context, today time.Time, lookaheadDays int) ([]LeavePeriodAlert, error)
}
