package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 31, DaysInclusive(day(1), day(31)))
	assert.Equal(t, 1, DaysInclusive(day(5), day(5).Add(23*time.Hour)))
	assert.Equal(t, 0, DaysInclusive(day(10), day(9)))
	assert.Equal(t, 3652059, DaysInclusive(
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	))
}

func TestSummarize_MonthOfRecords(t *testing.T) {
	var records []AttendanceRecord
	for d := 1; d <= 28; d++ {
		records = append(records, AttendanceRecord{Date: day(d), Status: StatusPresent})
	}
	records[4].OvertimeMinutes = intPtr(60)
	records[4].OvertimeRate = decPtr("100")
	records[9].OvertimeMinutes = intPtr(60)

	records = append(records,
		AttendanceRecord{Date: day(29), Status: StatusAbsent, FineAmount: decPtr("50")},
		AttendanceRecord{Date: day(30), Status: StatusAbsent},
		AttendanceRecord{Date: day(31), Status: StatusLate, LateMinutes: intPtr(25), LateDeduction: decPtr("200")},
	)

	sum := Summarize(day(1), day(31), records, nil)

	assert.Equal(t, 28, sum.DaysPresent)
	assert.Equal(t, 2, sum.DaysAbsent)
	assert.Equal(t, 1, sum.DaysLate)
	assert.Equal(t, 0, sum.DaysUnmarked)
	assert.Equal(t, 120, sum.OvertimeMinutesTotal)
	// only the day with a rate contributes pay
	assert.True(t, sum.OvertimePay.Equal(decimal.NewFromInt(100)), "overtime_pay %s", sum.OvertimePay)
	assert.True(t, sum.LateDeductionTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, sum.FineTotal.Equal(decimal.NewFromInt(50)))
}

func TestSummarize_IgnoresFieldsOutsideStatus(t *testing.T) {
	records := []AttendanceRecord{
		{Date: day(1), Status: StatusPresent, LateDeduction: decPtr("99"), FineAmount: decPtr("10")},
		{Date: day(2), Status: StatusAbsent, LateDeduction: decPtr("99")},
		{Date: day(3), Status: StatusOff, OvertimeMinutes: intPtr(30), OvertimeRate: decPtr("120")},
	}

	sum := Summarize(day(1), day(3), records, nil)

	assert.True(t, sum.LateDeductionTotal.IsZero())
	assert.True(t, sum.FineTotal.IsZero())
	assert.Equal(t, 1, sum.DaysOff)
	assert.Equal(t, 30, sum.OvertimeMinutesTotal)
	assert.True(t, sum.OvertimePay.Equal(decimal.NewFromInt(60)))
}

func TestSummarize_MissingDaysAreUnmarked(t *testing.T) {
	records := []AttendanceRecord{
		{Date: day(2), Status: StatusPresent},
		{Date: day(15), Status: StatusPresent}, // outside the window
	}

	sum := Summarize(day(1), day(10), records, nil)

	assert.Equal(t, 1, sum.DaysPresent)
	assert.Equal(t, 9, sum.DaysUnmarked)
}

func TestSummarize_LeavePeriods(t *testing.T) {
	periods := []LeavePeriod{
		{FromDate: day(3), ToDate: day(6), LeaveType: "annual"},
		{FromDate: day(5), ToDate: day(8), LeaveType: LeaveTypeUnpaid},
		{FromDate: time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), ToDate: day(1), LeaveType: "sick"},
	}
	records := []AttendanceRecord{
		// attendance wins over the leave period on the same date
		{Date: day(4), Status: StatusPresent},
	}

	sum := Summarize(day(1), day(10), records, periods)

	// days 1, 3..8 are covered by at least one period
	assert.Equal(t, 7, sum.LeavePeriodDays)
	assert.Equal(t, 1, sum.DaysPresent)
	// day 1 and day 3 paid, 5..8 unpaid (unpaid wins on the overlap)
	assert.Equal(t, 2, sum.DaysLeavePaid)
	assert.Equal(t, 4, sum.DaysLeaveUnpaid)
	// day 2, 9, 10
	assert.Equal(t, 3, sum.DaysUnmarked)
}

func TestSummarize_LeaveRecordType(t *testing.T) {
	records := []AttendanceRecord{
		{Date: day(1), Status: StatusLeave, LeaveType: strPtr("annual")},
		{Date: day(2), Status: StatusLeave, LeaveType: strPtr(LeaveTypeUnpaid)},
		{Date: day(3), Status: StatusHoliday},
		{Date: day(4), Status: StatusUnmarked},
	}

	sum := Summarize(day(1), day(4), records, nil)

	assert.Equal(t, 1, sum.DaysLeavePaid)
	assert.Equal(t, 1, sum.DaysLeaveUnpaid)
	assert.Equal(t, 1, sum.DaysHoliday)
	assert.Equal(t, 1, sum.DaysUnmarked)
}

func TestSummarize_InvertedWindow(t *testing.T) {
	sum := Summarize(day(10), day(1), []AttendanceRecord{{Date: day(5), Status: StatusPresent}}, nil)
	assert.Equal(t, 0, sum.DaysPresent)
	assert.True(t, sum.OvertimePay.IsZero())
}
