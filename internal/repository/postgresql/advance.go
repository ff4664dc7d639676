package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type advanceRepositoryImpl struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepositoryImpl{db: db}
}

// ========== ADVANCES ==========

func (r *advanceRepositoryImpl) CreateAdvance(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO employee_advances (employee_id, amount, advance_date, note)
			VALUES ($1, $2, $3, $4)
			RETURNING id, employee_id, amount, advance_date, note, created_at
		)
		SELECT i.id, i.employee_id, i.amount, i.advance_date, i.note, i.created_at, e.employee_code
		FROM inserted i JOIN employees e ON e.id = i.employee_id
	`

	var created advance.Advance
	err := q.QueryRow(ctx, query, a.EmployeeID, a.Amount, a.AdvanceDate, a.Note).Scan(
		&created.ID, &created.EmployeeID, &created.Amount, &created.AdvanceDate, &created.Note,
		&created.CreatedAt, &created.EmployeeCode,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return advance.Advance{}, advance.ErrEmployeeNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to record advance: %w", err)
	}
	return created, nil
}

func (r *advanceRepositoryImpl) GetAdvanceByID(ctx context.Context, id int64) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.amount, a.advance_date, a.note, a.created_at, e.employee_code
		FROM employee_advances a JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var a advance.Advance
	err := q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EmployeeID, &a.Amount, &a.AdvanceDate, &a.Note, &a.CreatedAt, &a.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance %d: %w", id, err)
	}
	return a, nil
}

func (r *advanceRepositoryImpl) DeleteAdvance(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_advances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete advance %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}
	return nil
}

func (r *advanceRepositoryImpl) ListAdvances(ctx context.Context, employeeID int64, from, to *time.Time) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.amount, a.advance_date, a.note, a.created_at, e.employee_code
		FROM employee_advances a JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
			AND ($2::date IS NULL OR a.advance_date >= $2)
			AND ($3::date IS NULL OR a.advance_date <= $3)
		ORDER BY a.advance_date, a.id
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	advances := make([]advance.Advance, 0)
	for rows.Next() {
		var a advance.Advance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Amount, &a.AdvanceDate, &a.Note, &a.CreatedAt, &a.EmployeeCode); err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return advances, nil
}

// SumAdvances implements advance.AdvanceRepository.
func (r *advanceRepositoryImpl) SumAdvances(ctx context.Context, employeeID int64, until time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM employee_advances WHERE employee_id = $1 AND advance_date <= $2`,
		employeeID, until,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum advances: %w", err)
	}
	return total, nil
}

// ========== DEDUCTIONS ==========

// UpsertDeduction implements advance.AdvanceRepository. The unique
// (employee_id, month) constraint makes a second call replace the amount.
func (r *advanceRepositoryImpl) UpsertDeduction(ctx context.Context, d advance.Deduction) (advance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH upserted AS (
			INSERT INTO employee_advance_deductions (employee_id, month, amount)
			VALUES ($1, $2, $3)
			ON CONFLICT ON CONSTRAINT uq_advance_deductions_employee_month DO UPDATE SET
				amount = EXCLUDED.amount,
				updated_at = NOW()
			RETURNING id, employee_id, month, amount, created_at, updated_at
		)
		SELECT u.id, u.employee_id, u.month, u.amount, u.created_at, u.updated_at, e.employee_code
		FROM upserted u JOIN employees e ON e.id = u.employee_id
	`

	var saved advance.Deduction
	err := q.QueryRow(ctx, query, d.EmployeeID, d.Month, d.Amount).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Month, &saved.Amount, &saved.CreatedAt, &saved.UpdatedAt, &saved.EmployeeCode,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return advance.Deduction{}, advance.ErrEmployeeNotFound
		}
		return advance.Deduction{}, fmt.Errorf("failed to set deduction: %w", err)
	}
	return saved, nil
}

func (r *advanceRepositoryImpl) GetDeduction(ctx context.Context, employeeID int64, month string) (advance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.month, d.amount, d.created_at, d.updated_at, e.employee_code
		FROM employee_advance_deductions d JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.month = $2
	`

	var d advance.Deduction
	err := q.QueryRow(ctx, query, employeeID, month).Scan(
		&d.ID, &d.EmployeeID, &d.Month, &d.Amount, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Deduction{}, advance.ErrDeductionNotFound
		}
		return advance.Deduction{}, fmt.Errorf("failed to get deduction: %w", err)
	}
	return d, nil
}

func (r *advanceRepositoryImpl) ListDeductions(ctx context.Context, employeeID int64) ([]advance.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.month, d.amount, d.created_at, d.updated_at, e.employee_code
		FROM employee_advance_deductions d JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1
		ORDER BY d.month
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	deductions := make([]advance.Deduction, 0)
	for rows.Next() {
		var d advance.Deduction
		if err := rows.Scan(&d.ID, &d.EmployeeID, &d.Month, &d.Amount, &d.CreatedAt, &d.UpdatedAt, &d.EmployeeCode); err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deductions, nil
}

// SumDeductions implements advance.AdvanceRepository. YYYY-MM tags order lexically.
func (r *advanceRepositoryImpl) SumDeductions(ctx context.Context, employeeID int64, month string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM employee_advance_deductions WHERE employee_id = $1 AND month <= $2`,
		employeeID, month,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum deductions: %w", err)
	}
	return total, nil
}
