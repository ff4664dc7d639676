package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAttendanceRepository_UniquePerDay(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP-003")
	repo := postgresql.NewAttendanceRepository(db)

	_, err := repo.Create(ctx, attendance.AttendanceRecord{EmployeeID: emp.ID, Date: day("2026-01-05"), Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.AttendanceRecord{EmployeeID: emp.ID, Date: day("2026-01-05"), Status: attendance.StatusAbsent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceExists)

	records, err := repo.ListByEmployeeRange(ctx, emp.ID, day("2026-01-01"), day("2026-01-31"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)

	assert.ErrorIs(t, postgresql.NewEmployeeRepository(db).Delete(ctx, emp.ID), employee.ErrEmployeeHasDependents)
}

func TestAdvanceRepository_Sums(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP-004")
	repo := postgresql.NewAdvanceRepository(db)

	for _, a := range []struct {
		date   string
		amount int64
	}{{"2025-12-15", 3000}, {"2026-01-31", 2000}, {"2026-02-01", 9999}} {
		_, err := repo.CreateAdvance(ctx, advance.Advance{EmployeeID: emp.ID, Amount: decimal.NewFromInt(a.amount), AdvanceDate: day(a.date)})
		require.NoError(t, err)
	}
	_, err := repo.UpsertDeduction(ctx, advance.Deduction{EmployeeID: emp.ID, Month: "2026-01", Amount: decimal.NewFromInt(500)})
	require.NoError(t, err)
	replaced, err := repo.UpsertDeduction(ctx, advance.Deduction{EmployeeID: emp.ID, Month: "2026-01", Amount: decimal.NewFromInt(1500)})
	require.NoError(t, err)
	assert.True(t, replaced.Amount.Equal(decimal.NewFromInt(1500)))

	advanced, err := repo.SumAdvances(ctx, emp.ID, day("2026-01-31"))
	require.NoError(t, err)
	assert.True(t, advanced.Equal(decimal.NewFromInt(5000)), advanced.String())

	deducted, err := repo.SumDeductions(ctx, emp.ID, "2026-01")
	require.NoError(t, err)
	assert.True(t, deducted.Equal(decimal.NewFromInt(1500)), deducted.String())

	deductions, err := repo.ListDeductions(ctx, emp.ID)
	require.NoError(t, err)
	assert.Len(t, deductions, 1)
}

func TestPayrollRepository_EntriesAndStatuses(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP-006")
	repo := postgresql.NewPayrollRepository(db)

	w := payroll.NewWindow(day("2026-01-01"), day("2026-01-31"))
	_, err := repo.GetEntry(ctx, emp.ID, w.From, w.To)
	assert.ErrorIs(t, err, payroll.ErrEntryNotFound)

	entry := payroll.EmptyEntry(emp.ID, w)
	entry.Tax = decimal.NewFromInt(500)
	_, err = repo.UpsertEntry(ctx, entry)
	require.NoError(t, err)
	entry.Tax = decimal.NewFromInt(700)
	_, err = repo.UpsertEntry(ctx, entry)
	require.NoError(t, err)

	entries, err := repo.ListEntries(ctx, w.From, w.To)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Tax.Equal(decimal.NewFromInt(700)))
	assert.Equal(t, "EMP-006", entries[0].EmployeeCode)

	_, err = repo.UpsertPaymentStatus(ctx, payroll.Paid(emp.ID, "2026-01", decimal.RequireFromString("30300.005")))
	require.NoError(t, err)
	total, err := repo.TotalPaid(ctx, "2026-01")
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("30300.01")), total.String())

	unpaid, err := repo.UpsertPaymentStatus(ctx, payroll.Unpaid(emp.ID, "2026-01"))
	require.NoError(t, err)
	assert.Nil(t, unpaid.NetPaySnapshot)
	total, err = repo.TotalPaid(ctx, "2026-01")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}
