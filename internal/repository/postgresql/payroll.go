package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SHEET ENTRIES ==========

const entryColumns = `
	p.id, p.employee_id, p.from_date, p.to_date, p.pre_days_override, p.cur_days_override,
	p.leave_encashment_days, p.allow_other, p.eobi, p.tax, p.fine_adv_extra, p.ot_rate_override,
	p.ot_bonus_amount, p.mobile_no, p.bank_name, p.bank_account_number, p.bank_cash, p.remarks,
	p.created_at, p.updated_at, e.employee_code`

func scanEntry(row pgx.Row) (payroll.SheetEntry, error) {
	var s payroll.SheetEntry
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.FromDate, &s.ToDate, &s.PreDaysOverride, &s.CurDaysOverride,
		&s.LeaveEncashmentDays, &s.AllowOther, &s.EOBI, &s.Tax, &s.FineAdvExtra, &s.OTRateOverride,
		&s.OTBonusAmount, &s.MobileNo, &s.BankName, &s.BankAccountNumber, &s.BankCash, &s.Remarks,
		&s.CreatedAt, &s.UpdatedAt, &s.EmployeeCode,
	)
	return s, err
}

func (r *payrollRepository) GetEntry(ctx context.Context, employeeID int64, from, to time.Time) (payroll.SheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + entryColumns + `
		FROM payroll_sheet_entries p JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1 AND p.from_date = $2 AND p.to_date = $3
	`

	entry, err := scanEntry(q.QueryRow(ctx, query, employeeID, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SheetEntry{}, payroll.ErrEntryNotFound
		}
		return payroll.SheetEntry{}, fmt.Errorf("failed to get payroll entry: %w", err)
	}
	return entry, nil
}

func (r *payrollRepository) ListEntries(ctx context.Context, from, to time.Time) ([]payroll.SheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + entryColumns + `
		FROM payroll_sheet_entries p JOIN employees e ON e.id = p.employee_id
		WHERE p.from_date = $1 AND p.to_date = $2
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll entries: %w", err)
	}
	defer rows.Close()

	entries := make([]payroll.SheetEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpsertEntry implements payroll.PayrollRepository. Every mutable field is replaced.
func (r *payrollRepository) UpsertEntry(ctx context.Context, entry payroll.SheetEntry) (payroll.SheetEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_sheet_entries (
			employee_id, from_date, to_date, pre_days_override, cur_days_override,
			leave_encashment_days, allow_other, eobi, tax, fine_adv_extra, ot_rate_override,
			ot_bonus_amount, mobile_no, bank_name, bank_account_number, bank_cash, remarks
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT ON CONSTRAINT uq_payroll_entries_employee_window DO UPDATE SET
			pre_days_override = EXCLUDED.pre_days_override,
			cur_days_override = EXCLUDED.cur_days_override,
			leave_encashment_days = EXCLUDED.leave_encashment_days,
			allow_other = EXCLUDED.allow_other,
			eobi = EXCLUDED.eobi,
			tax = EXCLUDED.tax,
			fine_adv_extra = EXCLUDED.fine_adv_extra,
			ot_rate_override = EXCLUDED.ot_rate_override,
			ot_bonus_amount = EXCLUDED.ot_bonus_amount,
			mobile_no = EXCLUDED.mobile_no,
			bank_name = EXCLUDED.bank_name,
			bank_account_number = EXCLUDED.bank_account_number,
			bank_cash = EXCLUDED.bank_cash,
			remarks = EXCLUDED.remarks,
			updated_at = NOW()
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		entry.EmployeeID, entry.FromDate, entry.ToDate, entry.PreDaysOverride, entry.CurDaysOverride,
		entry.LeaveEncashmentDays, entry.AllowOther, entry.EOBI, entry.Tax, entry.FineAdvExtra, entry.OTRateOverride,
		entry.OTBonusAmount, entry.MobileNo, entry.BankName, entry.BankAccountNumber, entry.BankCash, entry.Remarks,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return payroll.SheetEntry{}, payroll.ErrUnknownEmployee
		}
		if database.IsCheckViolation(err, "ck_payroll_entries_window") {
			return payroll.SheetEntry{}, payroll.ErrInvalidWindow
		}
		return payroll.SheetEntry{}, fmt.Errorf("failed to upsert payroll entry: %w", err)
	}

	return r.GetEntry(ctx, entry.EmployeeID, entry.FromDate, entry.ToDate)
}

// ========== PAYMENT STATUS ==========

const paymentStatusColumns = `
	s.id, s.month, s.employee_id, s.status, s.net_pay_snapshot, s.created_at, s.updated_at,
	e.employee_code, e.full_name`

func scanPaymentStatus(row pgx.Row) (payroll.PaymentStatus, error) {
	var s payroll.PaymentStatus
	err := row.Scan(
		&s.ID, &s.Month, &s.EmployeeID, &s.Status, &s.NetPaySnapshot, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeCode, &s.EmployeeName,
	)
	return s, err
}

// UpsertPaymentStatus implements payroll.PayrollRepository.
func (r *payrollRepository) UpsertPaymentStatus(ctx context.Context, status payroll.PaymentStatus) (payroll.PaymentStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_payment_statuses (month, employee_id, status, net_pay_snapshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_payroll_payment_month_employee DO UPDATE SET
			status = EXCLUDED.status,
			net_pay_snapshot = EXCLUDED.net_pay_snapshot,
			updated_at = NOW()
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query, status.Month, status.EmployeeID, status.Status, status.NetPaySnapshot).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return payroll.PaymentStatus{}, payroll.ErrUnknownEmployee
		}
		return payroll.PaymentStatus{}, fmt.Errorf("failed to upsert payment status: %w", err)
	}

	return r.GetPaymentStatus(ctx, status.EmployeeID, status.Month)
}

func (r *payrollRepository) GetPaymentStatus(ctx context.Context, employeeID int64, month string) (payroll.PaymentStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentStatusColumns + `
		FROM payroll_payment_statuses s JOIN employees e ON e.id = s.employee_id
		WHERE s.employee_id = $1 AND s.month = $2
	`

	status, err := scanPaymentStatus(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PaymentStatus{}, payroll.ErrPaymentStatusNotFound
		}
		return payroll.PaymentStatus{}, fmt.Errorf("failed to get payment status: %w", err)
	}
	return status, nil
}

func (r *payrollRepository) ListPaymentStatuses(ctx context.Context, month string) ([]payroll.PaymentStatus, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentStatusColumns + `
		FROM payroll_payment_statuses s JOIN employees e ON e.id = s.employee_id
		WHERE s.month = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment statuses: %w", err)
	}
	defer rows.Close()

	statuses := make([]payroll.PaymentStatus, 0)
	for rows.Next() {
		s, err := scanPaymentStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment status: %w", err)
		}
		statuses = append(statuses, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// TotalPaid implements payroll.PayrollRepository.
func (r *payrollRepository) TotalPaid(ctx context.Context, month string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(net_pay_snapshot), 0) FROM payroll_payment_statuses WHERE month = $1 AND status = 'paid'`,
		month,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total paid payroll: %w", err)
	}
	return total, nil
}
