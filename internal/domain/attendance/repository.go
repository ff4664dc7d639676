package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists per-day records. Create must fail with
// ErrAttendanceExists when (employee, date) is already taken.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	GetByID(ctx context.Context, id int64) (AttendanceRecord, error)

	// GetByIDForUpdate locks the row for the rest of the transaction
	GetByIDForUpdate(ctx context.Context, id int64) (AttendanceRecord, error)
	Update(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecord, int64, error)

	// ListByEmployeeRange returns records with from <= date <= to ordered by date
	ListByEmployeeRange(ctx context.Context, employeeID int64, from, to time.Time) ([]AttendanceRecord, error)
}

type LeavePeriodRepository interface {
	Create(ctx context.Context, period LeavePeriod) (LeavePeriod, error)
	GetByID(ctx context.Context, id int64) (LeavePeriod, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter LeavePeriodFilter) ([]LeavePeriod, error)

	// ListOverlapping returns the employee's periods intersecting [from, to]
	ListOverlapping(ctx context.Context, employeeID int64, from, to time.Time) ([]LeavePeriod, error)

	// ListEndingBetween returns periods of any employee whose to_date is in [from, to]
	ListEndingBetween(ctx context.Context, from, to time.Time) ([]LeavePeriod, error)
}
