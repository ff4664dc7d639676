package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/sse"
)

// Publisher receives the alerts a job finds. *sse.Hub satisfies it.
type Publisher interface {
	Publish(event sse.Event) int
}

// LeaveAlertJobs reports leave periods that are about to end.
type LeaveAlertJobs struct {
	attendanceService attendance.AttendanceService
	lookaheadDays     int
	interval          time.Duration
	logger            *slog.Logger
	publisher         Publisher
	now               func() time.Time
}

// NewLeaveAlertJobs builds the job. A nil publisher only logs the alerts.
func NewLeaveAlertJobs(attendanceService attendance.AttendanceService, lookaheadDays int, interval time.Duration, logger *slog.Logger, publisher Publisher) *LeaveAlertJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaveAlertJobs{
		attendanceService: attendanceService,
		lookaheadDays:     lookaheadDays,
		interval:          interval,
		logger:            logger,
		publisher:         publisher,
		now:               time.Now,
	}
}

func (j *LeaveAlertJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("leave_period_alerts", j.interval, j.LeavePeriodAlerts)
}

// LeavePeriodAlerts logs one warning per leave period ending within the lookahead.
func (j *LeaveAlertJobs) LeavePeriodAlerts(ctx context.Context) error {
	today := attendance.DateOnly(j.now().UTC())

	alerts, err := j.attendanceService.LeaveAlerts(ctx, today, j.lookaheadDays)
	if err != nil {
		return err
	}

	for _, a := range alerts {
		j.logger.WarnContext(ctx, a.Message,
			slog.Int64("leave_period_id", a.LeavePeriodID),
			slog.String("employee_code", a.EmployeeCode),
			slog.String("leave_type", a.LeaveType),
			slog.String("last_day", a.LastDay),
		)
		if j.publisher != nil {
			j.publisher.Publish(sse.Event{Topic: sse.TopicLeaveAlerts, Name: "leave_ending", Data: a})
		}
	}
	j.logger.InfoContext(ctx, "Cron: leave period alerts checked", "today", today.Format("2006-01-02"), "alerts", len(alerts))
	return nil
}
