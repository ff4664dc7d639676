package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

const secondsPerDay = 24 * 60 * 60

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysInclusive returns the number of calendar days in [from, to], or 0 when to < from.
func DaysInclusive(from, to time.Time) int {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return 0
	}
	// Unix seconds, not time.Duration, which overflows past ~292 years.
	return int((to.Unix()-from.Unix())/secondsPerDay) + 1
}

type leaveDay struct {
	unpaid bool
}

// Summarize aggregates one employee's records and leave periods over the
// inclusive window [from, to]. Records and periods outside the window are
// ignored. A record on a date takes precedence over any leave period; dates
// with neither count as unmarked.
func Summarize(from, to time.Time, records []AttendanceRecord, periods []LeavePeriod) Summary {
	from, to = DateOnly(from), DateOnly(to)
	sum := Summary{
		FromDate:           from,
		ToDate:             to,
		OvertimePay:        decimal.Zero,
		LateDeductionTotal: decimal.Zero,
		FineTotal:          decimal.Zero,
	}
	if to.Before(from) {
		return sum
	}

	byDate := make(map[time.Time]AttendanceRecord, len(records))
	for _, r := range records {
		d := DateOnly(r.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		byDate[d] = r
	}

	leave := make(map[time.Time]leaveDay)
	for _, p := range periods {
		start, end := DateOnly(p.FromDate), DateOnly(p.ToDate)
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			ld := leave[d]
			// unpaid wins when overlapping periods disagree
			ld.unpaid = ld.unpaid || p.IsUnpaid()
			leave[d] = ld
		}
	}
	sum.LeavePeriodDays = len(leave)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		r, ok := byDate[d]
		if !ok {
			if ld, onLeave := leave[d]; onLeave {
				if ld.unpaid {
					sum.DaysLeaveUnpaid++
				} else {
					sum.DaysLeavePaid++
				}
			} else {
				sum.DaysUnmarked++
			}
			continue
		}
		sum.add(r)
	}

	sum.OvertimePay = sum.OvertimePay.Round(2)
	return sum
}

func (s *Summary) add(r AttendanceRecord) {
	switch r.Status {
	case StatusPresent:
		s.DaysPresent++
	case StatusAbsent:
		s.DaysAbsent++
		s.addFine(r)
	case StatusLate:
		s.DaysLate++
		if r.LateDeduction != nil {
			s.LateDeductionTotal = s.LateDeductionTotal.Add(*r.LateDeduction)
		}
		s.addFine(r)
	case StatusLeave:
		if r.LeaveType != nil && *r.LeaveType == LeaveTypeUnpaid {
			s.DaysLeaveUnpaid++
		} else {
			s.DaysLeavePaid++
		}
	case StatusOff:
		s.DaysOff++
	case StatusHoliday:
		s.DaysHoliday++
	default:
		s.DaysUnmarked++
	}

	// overtime is additive on any status
	if r.OvertimeMinutes != nil {
		s.OvertimeMinutesTotal += *r.OvertimeMinutes
		if r.OvertimeRate != nil {
			hours := decimal.NewFromInt(int64(*r.OvertimeMinutes)).Div(sixty)
			s.OvertimePay = s.OvertimePay.Add(hours.Mul(*r.OvertimeRate))
		}
	}
}

func (s *Summary) addFine(r AttendanceRecord) {
	if r.FineAmount != nil {
		s.FineTotal = s.FineTotal.Add(*r.FineAmount)
	}
}
