package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entryKey struct {
	employeeID int64
	from, to   time.Time
}

type statusKey struct {
	employeeID int64
	month      string
}

type memoryPayroll struct {
	mu        sync.Mutex
	nextID    int64
	entries   map[entryKey]payroll.SheetEntry
	statuses  map[statusKey]payroll.PaymentStatus
	employees *servicetest.Employees

	// failUpsertFor makes UpsertEntry fail for that employee id
	failUpsertFor int64
	// failStatusAfterWriteFor stores the status row and then fails, like a
	// statement that errors after the row was written
	failStatusAfterWriteFor int64
}

func newMemoryPayroll(employees *servicetest.Employees) *memoryPayroll {
	return &memoryPayroll{
		entries:   map[entryKey]payroll.SheetEntry{},
		statuses:  map[statusKey]payroll.PaymentStatus{},
		employees: employees,
	}
}

func (m *memoryPayroll) Snapshot() func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make(map[entryKey]payroll.SheetEntry, len(m.entries))
	for k, v := range m.entries {
		entries[k] = v
	}
	statuses := make(map[statusKey]payroll.PaymentStatus, len(m.statuses))
	for k, v := range m.statuses {
		statuses[k] = v
	}
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.entries, m.statuses = entries, statuses
	}
}

func (m *memoryPayroll) GetEntry(ctx context.Context, employeeID int64, from, to time.Time) (payroll.SheetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[entryKey{employeeID, from, to}]
	if !ok {
		return payroll.SheetEntry{}, payroll.ErrEntryNotFound
	}
	return e, nil
}

func (m *memoryPayroll) ListEntries(ctx context.Context, from, to time.Time) ([]payroll.SheetEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.SheetEntry
	for k, e := range m.entries {
		if k.from.Equal(from) && k.to.Equal(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryPayroll) UpsertEntry(ctx context.Context, entry payroll.SheetEntry) (payroll.SheetEntry, error) {
	if entry.EmployeeID == m.failUpsertFor {
		return payroll.SheetEntry{}, errors.New("disk full")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entryKey{entry.EmployeeID, entry.FromDate, entry.ToDate}
	if existing, ok := m.entries[key]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		entry.ID = m.nextID
		entry.CreatedAt = time.Now()
	}
	entry.UpdatedAt = time.Now()
	m.entries[key] = entry
	return entry, nil
}

func (m *memoryPayroll) UpsertPaymentStatus(ctx context.Context, status payroll.PaymentStatus) (payroll.PaymentStatus, error) {
	emp, err := m.employees.GetByID(ctx, status.EmployeeID)
	if err != nil {
		return payroll.PaymentStatus{}, payroll.ErrUnknownEmployee
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	status.EmployeeCode = emp.EmployeeCode
	status.EmployeeName = emp.FullName
	status.UpdatedAt = time.Now()
	m.statuses[statusKey{status.EmployeeID, status.Month}] = status
	if status.EmployeeID == m.failStatusAfterWriteFor {
		return payroll.PaymentStatus{}, errors.New("connection reset")
	}
	return status, nil
}

func (m *memoryPayroll) GetPaymentStatus(ctx context.Context, employeeID int64, month string) (payroll.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statuses[statusKey{employeeID, month}]
	if !ok {
		return payroll.PaymentStatus{}, payroll.ErrPaymentStatusNotFound
	}
	return s, nil
}

func (m *memoryPayroll) ListPaymentStatuses(ctx context.Context, month string) ([]payroll.PaymentStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payroll.PaymentStatus
	for k, s := range m.statuses {
		if k.month == month {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

func (m *memoryPayroll) TotalPaid(ctx context.Context, month string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for k, s := range m.statuses {
		if k.month == month && s.Status == payroll.StatusPaid && s.NetPaySnapshot != nil {
			total = total.Add(*s.NetPaySnapshot)
		}
	}
	return total, nil
}

// fixedSummaries hands out a canned attendance aggregate per employee id.
type fixedSummaries map[int64]attendance.Summary

func (f fixedSummaries) SummarizeEmployee(ctx context.Context, employeeID int64, from, to time.Time) (attendance.Summary, error) {
	sum, ok := f[employeeID]
	if !ok {
		return attendance.Summarize(from, to, nil, nil), nil
	}
	sum.FromDate, sum.ToDate = from, to
	return sum, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	svc       payroll.PayrollService
	repo      *memoryPayroll
	advances  *servicetest.Advances
	employees *servicetest.Employees
	tx        *servicetest.Transactor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mobile := "0300-1234567"
	employees := servicetest.NewEmployees(
		employee.Employee{EmployeeCode: "EMP-003", FullName: "Guard Three", BaseSalary: dec("31000"), OTRate: dec("100"), MobileNo: &mobile},
		employee.Employee{EmployeeCode: "EMP-006", FullName: "Guard Six", BaseSalary: dec("31000"), OTRate: dec("50")},
	)
	emp3, err := employees.GetByCode(context.Background(), "EMP-003")
	require.NoError(t, err)

	summaries := fixedSummaries{
		emp3.ID: {
			DaysPresent:          28,
			DaysAbsent:           2,
			DaysLate:             1,
			OvertimeMinutesTotal: 120,
			OvertimePay:          decimal.Zero,
			LateDeductionTotal:   dec("200"),
			FineTotal:            decimal.Zero,
		},
	}

	repo := newMemoryPayroll(employees)
	advances := servicetest.NewAdvances()
	tx := servicetest.NewTransactor(repo)
	return fixture{
		svc:       NewPayrollService(tx, repo, employees, advances, summaries),
		repo:      repo,
		advances:  advances,
		employees: employees,
		tx:        tx,
	}
}

func januaryS3Entry() payroll.UpsertEntryRequest {
	req := payroll.UpsertEntryRequest{FromDate: "2026-01-01", ToDate: "2026-01-31"}
	req.EmployeeCode = "EMP-003"
	req.AllowOther = dec("500")
	req.EOBI = dec("150")
	req.FineAdvExtra = dec("1000")
	req.OTBonusAmount = dec("300")
	return req
}

func TestPayrollService_ComputeLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.UpsertEntry(ctx, januaryS3Entry())
	require.NoError(t, err)

	line, err := f.svc.ComputeLine(ctx, payroll.LineRequest{EmployeeCode: "EMP-003", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)

	assert.Equal(t, 31, line.WindowDays)
	assert.True(t, line.DailyRate.Equal(dec("1000")))
	assert.True(t, line.EarningsBasic.Equal(dec("29000")))
	assert.True(t, line.OTPay.Equal(dec("500")))
	assert.True(t, line.Gross.Equal(dec("30000")), "gross %s", line.Gross)
	assert.True(t, line.Deductions.Equal(dec("1350")), "deductions %s", line.Deductions)
	assert.True(t, line.NetPay.Equal(dec("28650")), "net %s", line.NetPay)
	require.NotNil(t, line.MobileNo)
	assert.Equal(t, "0300-1234567", *line.MobileNo)
	assert.Equal(t, "cash", line.BankCash)
	assert.Nil(t, line.PaymentStatus)
}

func TestPayrollService_ComputeLine_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ComputeLine(context.Background(), payroll.LineRequest{EmployeeCode: "EMP-404", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	assert.ErrorIs(t, err, payroll.ErrUnknownEmployee)
}

func TestPayrollService_ComputeLine_InvertedWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ComputeLine(context.Background(), payroll.LineRequest{EmployeeCode: "EMP-003", FromDate: "2026-01-31", ToDate: "2026-01-01"})
	assert.ErrorIs(t, err, payroll.ErrInvalidWindow)
}

func TestPayrollService_LineShowsAdvances(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp, _ := f.employees.GetByCode(ctx, "EMP-003")

	_, err := f.advances.CreateAdvance(ctx, advance.Advance{EmployeeID: emp.ID, Amount: dec("5000"), AdvanceDate: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.advances.UpsertDeduction(ctx, advance.Deduction{EmployeeID: emp.ID, Month: "2026-01", Amount: dec("1000")})
	require.NoError(t, err)

	line, err := f.svc.ComputeLine(ctx, payroll.LineRequest{EmployeeCode: "EMP-003", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)

	assert.True(t, line.AdvanceOutstanding.Equal(dec("4000")), "outstanding %s", line.AdvanceOutstanding)
	require.NotNil(t, line.ScheduledDeduction)
	assert.True(t, line.ScheduledDeduction.Equal(dec("1000")))
	// surfaced only, never folded into the deductions
	assert.True(t, line.Deductions.Equal(dec("200")), "deductions %s", line.Deductions)
}

func TestPayrollService_MarkPaidAndUnpaid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	paid, err := f.svc.MarkPaid(ctx, payroll.MarkPaidRequest{EmployeeCode: "EMP-003", Month: "2026-01", NetPay: dec("28650")})
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	require.NotNil(t, paid.NetPaySnapshot)
	assert.True(t, paid.NetPaySnapshot.Equal(dec("28650")))

	total, err := f.svc.TotalPaid(ctx, "2026-01")
	require.NoError(t, err)
	assert.True(t, total.TotalPaid.Equal(dec("28650")))

	line, err := f.svc.ComputeLine(ctx, payroll.LineRequest{EmployeeCode: "EMP-003", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)
	require.NotNil(t, line.PaymentStatus)
	assert.Equal(t, "paid", *line.PaymentStatus)

	unpaid, err := f.svc.MarkUnpaid(ctx, payroll.MarkUnpaidRequest{EmployeeCode: "EMP-003", Month: "2026-01"})
	require.NoError(t, err)
	assert.Equal(t, "unpaid", unpaid.Status)
	assert.Nil(t, unpaid.NetPaySnapshot)

	total, err = f.svc.TotalPaid(ctx, "2026-01")
	require.NoError(t, err)
	assert.True(t, total.TotalPaid.IsZero())
}

func TestPayrollService_SetPaymentStatusSnapshotsMonthLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.UpsertEntry(ctx, januaryS3Entry())
	require.NoError(t, err)

	resp, err := f.svc.SetPaymentStatus(ctx, payroll.PaymentStatusUpsert{Month: "2026-01", EmployeeCode: "EMP-003", Status: "paid"})
	require.NoError(t, err)
	require.NotNil(t, resp.NetPaySnapshot)
	assert.True(t, resp.NetPaySnapshot.Equal(dec("28650")), "snapshot %s", resp.NetPaySnapshot)

	// later edits do not move the snapshot
	edit := januaryS3Entry()
	edit.Tax = dec("999")
	_, err = f.svc.UpsertEntry(ctx, edit)
	require.NoError(t, err)

	statuses, err := f.svc.ListPaymentStatuses(ctx, "2026-01")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].NetPaySnapshot.Equal(dec("28650")))
}

func TestPayrollService_SetPaymentStatusRejectsNegativeNet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := januaryS3Entry()
	req.Tax = dec("50000")
	_, err := f.svc.UpsertEntry(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.SetPaymentStatus(ctx, payroll.PaymentStatusUpsert{Month: "2026-01", EmployeeCode: "EMP-003", Status: "paid"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "net_pay", verrs[0].Field)

	statuses, err := f.svc.ListPaymentStatuses(ctx, "2026-01")
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestPayrollService_SetPaymentStatusRollsBackFailedWrite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp3, _ := f.employees.GetByCode(ctx, "EMP-003")

	_, err := f.svc.UpsertEntry(ctx, januaryS3Entry())
	require.NoError(t, err)
	f.repo.failStatusAfterWriteFor = emp3.ID

	_, err = f.svc.SetPaymentStatus(ctx, payroll.PaymentStatusUpsert{Month: "2026-01", EmployeeCode: "EMP-003", Status: "paid"})
	require.Error(t, err)
	assert.Equal(t, 1, f.tx.Rollbacks)

	_, err = f.repo.GetPaymentStatus(ctx, emp3.ID, "2026-01")
	assert.ErrorIs(t, err, payroll.ErrPaymentStatusNotFound)

	total, err := f.svc.TotalPaid(ctx, "2026-01")
	require.NoError(t, err)
	assert.True(t, total.TotalPaid.IsZero())
}

func TestPayrollService_ComputeRunsInOneTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.ComputeLine(ctx, payroll.LineRequest{EmployeeCode: "EMP-003", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.Commits)

	_, err = f.svc.ComputeSheet(ctx, payroll.ComputeSheetRequest{FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 2, f.tx.Commits)

	_, err = f.svc.ComputeLine(ctx, payroll.LineRequest{EmployeeCode: "EMP-404", FromDate: "2026-01-01", ToDate: "2026-01-31"})
	assert.ErrorIs(t, err, payroll.ErrUnknownEmployee)
	assert.Equal(t, 1, f.tx.Rollbacks)
}

func bulkRequest(codes ...string) payroll.BulkUpsertRequest {
	req := payroll.BulkUpsertRequest{FromDate: "2026-01-01", ToDate: "2026-01-31"}
	for i, code := range codes {
		e := payroll.SheetEntryUpsert{EmployeeCode: code}
		e.AllowOther = dec(fmt.Sprintf("%d", 100*(i+1)))
		req.Entries = append(req.Entries, e)
	}
	return req
}

func TestPayrollService_BulkUpsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.BulkUpsertEntries(ctx, bulkRequest("EMP-003", "EMP-006"))
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "EMP-003", resp[0].EmployeeCode)
	assert.True(t, resp[1].AllowOther.Equal(dec("200")))
	assert.Len(t, f.repo.entries, 2)
}

func TestPayrollService_BulkUpsertUnknownEmployeeWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.BulkUpsertEntries(context.Background(), bulkRequest("EMP-003", "EMP-404"))
	assert.ErrorIs(t, err, payroll.ErrUnknownEmployee)
	assert.Empty(t, f.repo.entries)
}

func TestPayrollService_BulkUpsertRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	emp6, _ := f.employees.GetByCode(ctx, "EMP-006")
	f.repo.failUpsertFor = emp6.ID

	_, err := f.svc.BulkUpsertEntries(ctx, bulkRequest("EMP-003", "EMP-006"))
	require.Error(t, err)
	assert.Empty(t, f.repo.entries)
	assert.Equal(t, 1, f.tx.Rollbacks)
}

func TestPayrollService_ComputeSheet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.UpsertEntry(ctx, januaryS3Entry())
	require.NoError(t, err)

	sheet, err := f.svc.ComputeSheet(ctx, payroll.ComputeSheetRequest{FromDate: "2026-01-01", ToDate: "2026-01-31"})
	require.NoError(t, err)

	require.NotNil(t, sheet.Month)
	assert.Equal(t, "2026-01", *sheet.Month)
	require.Len(t, sheet.Lines, 2)
	assert.Equal(t, "EMP-003", sheet.Lines[0].EmployeeCode)
	assert.Equal(t, "EMP-006", sheet.Lines[1].EmployeeCode)

	// EMP-006 has no attendance: every day is unmarked and still payable
	assert.True(t, sheet.Lines[1].NetPay.Equal(dec("31000")), "net %s", sheet.Lines[1].NetPay)
	assert.True(t, sheet.Totals.NetPay.Equal(dec("59650")), "total %s", sheet.Totals.NetPay)
}

func TestPayrollService_ComputeSheetAcrossMonths(t *testing.T) {
	f := newFixture(t)

	sheet, err := f.svc.ComputeSheet(context.Background(), payroll.ComputeSheetRequest{
		FromDate: "2026-01-16", ToDate: "2026-02-15", EmployeeCodes: []string{"EMP-006"},
	})
	require.NoError(t, err)
	assert.Nil(t, sheet.Month)
	require.Len(t, sheet.Lines, 1)
	assert.Equal(t, 31, sheet.WindowDays)
	assert.Nil(t, sheet.Lines[0].PaymentStatus)
}
