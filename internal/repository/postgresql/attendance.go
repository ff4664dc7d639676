package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.status, a.overtime_minutes, a.overtime_rate, a.late_minutes,
	a.late_deduction, a.leave_type, a.fine_amount, a.notes, a.created_at, a.updated_at,
	e.employee_code, e.full_name`

const attendanceFrom = ` FROM attendance_records a JOIN employees e ON e.id = a.employee_id`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var r attendance.AttendanceRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.Status, &r.OvertimeMinutes, &r.OvertimeRate, &r.LateMinutes,
		&r.LateDeduction, &r.LeaveType, &r.FineAmount, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
		&r.EmployeeCode, &r.EmployeeName,
	)
	return r, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			employee_id, date, status, overtime_minutes, overtime_rate, late_minutes,
			late_deduction, leave_type, fine_amount, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date, record.Status, record.OvertimeMinutes, record.OvertimeRate,
		record.LateMinutes, record.LateDeduction, record.LeaveType, record.FineAmount, record.Notes,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err, "uq_attendance_employee_date") {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceExists
		}
		if database.IsForeignKeyViolation(err) {
			return attendance.AttendanceRecord{}, attendance.ErrEmployeeNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.AttendanceRecord, error) {
	return r.getByID(ctx, id, "")
}

// GetByIDForUpdate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (attendance.AttendanceRecord, error) {
	return r.getByID(ctx, id, " FOR UPDATE OF a")
}

func (r *attendanceRepositoryImpl) getByID(ctx context.Context, id int64, lock string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + ` WHERE a.id = $1` + lock

	record, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance %d: %w", id, err)
	}
	return record, nil
}

// Update implements attendance.AttendanceRepository. updated_at strictly increases.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records SET
			status = $2, overtime_minutes = $3, overtime_rate = $4, late_minutes = $5,
			late_deduction = $6, leave_type = $7, fine_amount = $8, notes = $9,
			updated_at = GREATEST(NOW(), updated_at + INTERVAL '1 microsecond')
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID, record.Status, record.OvertimeMinutes, record.OvertimeRate, record.LateMinutes,
		record.LateDeduction, record.LeaveType, record.FineAmount, record.Notes,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to update attendance %d: %w", record.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
	}

	return r.GetByID(ctx, record.ID)
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		conditions = append(conditions, fmt.Sprintf("e.employee_code = $%d", argIdx))
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if filter.FromDate != nil && *filter.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argIdx))
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil && *filter.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argIdx))
		args = append(args, *filter.ToDate)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*)"+attendanceFrom+" WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY a.date DESC, e.employee_code LIMIT $%d OFFSET $%d`,
		attendanceColumns, attendanceFrom, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	records, err := r.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeRange(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date`

	return r.query(ctx, q, query, employeeID, from, to)
}

func (r *attendanceRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.AttendanceRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0)
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ========== LEAVE PERIODS ==========

type leavePeriodRepositoryImpl struct {
	db *database.DB
}

func NewLeavePeriodRepository(db *database.DB) attendance.LeavePeriodRepository {
	return &leavePeriodRepositoryImpl{db: db}
}

const leavePeriodColumns = `
	lp.id, lp.employee_id, lp.from_date, lp.to_date, lp.leave_type, lp.reason, lp.created_at,
	e.employee_code, e.full_name`

const leavePeriodFrom = ` FROM leave_periods lp JOIN employees e ON e.id = lp.employee_id`

func scanLeavePeriod(row pgx.Row) (attendance.LeavePeriod, error) {
	var p attendance.LeavePeriod
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.FromDate, &p.ToDate, &p.LeaveType, &p.Reason, &p.CreatedAt,
		&p.EmployeeCode, &p.EmployeeName,
	)
	return p, err
}

// Create implements attendance.LeavePeriodRepository.
func (r *leavePeriodRepositoryImpl) Create(ctx context.Context, period attendance.LeavePeriod) (attendance.LeavePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_periods (employee_id, from_date, to_date, leave_type, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, period.EmployeeID, period.FromDate, period.ToDate, period.LeaveType, period.Reason).Scan(&id)
	if err != nil {
		if database.IsCheckViolation(err, "ck_leave_periods_range") {
			return attendance.LeavePeriod{}, attendance.ErrInvalidDateRange
		}
		if database.IsForeignKeyViolation(err) {
			return attendance.LeavePeriod{}, attendance.ErrEmployeeNotFound
		}
		return attendance.LeavePeriod{}, fmt.Errorf("failed to create leave period: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID implements attendance.LeavePeriodRepository.
func (r *leavePeriodRepositoryImpl) GetByID(ctx context.Context, id int64) (attendance.LeavePeriod, error) {
	q := GetQuerier(ctx, r.db)

	period, err := scanLeavePeriod(q.QueryRow(ctx, `SELECT`+leavePeriodColumns+leavePeriodFrom+` WHERE lp.id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.LeavePeriod{}, attendance.ErrLeavePeriodNotFound
		}
		return attendance.LeavePeriod{}, fmt.Errorf("failed to get leave period %d: %w", id, err)
	}
	return period, nil
}

// Delete implements attendance.LeavePeriodRepository.
func (r *leavePeriodRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave period %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLeavePeriodNotFound
	}
	return nil
}

// List implements attendance.LeavePeriodRepository. A date range keeps the
// periods overlapping it.
func (r *leavePeriodRepositoryImpl) List(ctx context.Context, filter attendance.LeavePeriodFilter) ([]attendance.LeavePeriod, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1 = 1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
		conditions = append(conditions, fmt.Sprintf("e.employee_code = $%d", argIdx))
		args = append(args, *filter.EmployeeCode)
		argIdx++
	}
	if filter.FromDate != nil && *filter.FromDate != "" {
		conditions = append(conditions, fmt.Sprintf("lp.to_date >= $%d", argIdx))
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil && *filter.ToDate != "" {
		conditions = append(conditions, fmt.Sprintf("lp.from_date <= $%d", argIdx))
		args = append(args, *filter.ToDate)
	}

	query := `SELECT` + leavePeriodColumns + leavePeriodFrom + ` WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY lp.from_date, e.employee_code`

	return r.query(ctx, q, query, args...)
}

// ListOverlapping implements attendance.LeavePeriodRepository.
func (r *leavePeriodRepositoryImpl) ListOverlapping(ctx context.Context, employeeID int64, from, to time.Time) ([]attendance.LeavePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leavePeriodColumns + leavePeriodFrom + `
		WHERE lp.employee_id = $1 AND lp.from_date <= $3 AND lp.to_date >= $2
		ORDER BY lp.from_date`

	return r.query(ctx, q, query, employeeID, from, to)
}

// ListEndingBetween implements attendance.LeavePeriodRepository.
func (r *leavePeriodRepositoryImpl) ListEndingBetween(ctx context.Context, from, to time.Time) ([]attendance.LeavePeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + leavePeriodColumns + leavePeriodFrom + `
		WHERE lp.to_date BETWEEN $1 AND $2
		ORDER BY lp.to_date, e.employee_code`

	return r.query(ctx, q, query, from, to)
}

func (r *leavePeriodRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.LeavePeriod, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave periods: %w", err)
	}
	defer rows.Close()

	periods := make([]attendance.LeavePeriod, 0)
	for rows.Next() {
		p, err := scanLeavePeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return periods, nil
}
