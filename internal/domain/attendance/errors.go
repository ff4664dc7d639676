package attendance

import "errors"

var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrAttendanceExists    = errors.New("attendance already recorded for this employee and date")
	ErrLeavePeriodNotFound = errors.New("leave period not found")
	ErrInvalidDateRange    = errors.New("to_date must not be before from_date")
	ErrEmployeeNotFound    = errors.New("employee not found")
)
