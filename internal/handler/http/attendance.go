package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	CreateLeavePeriod(w http.ResponseWriter, r *http.Request)
	ListLeavePeriods(w http.ResponseWriter, r *http.Request)
	DeleteLeavePeriod(w http.ResponseWriter, r *http.Request)
	LeaveAlerts(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	lookaheadDays     int
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, lookaheadDays int) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		lookaheadDays:     lookaheadDays,
		now:               time.Now,
	}
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req attendance.UpdateAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = id

	result, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeCode: optionalQuery(r, "employee_code"),
		FromDate:     optionalQuery(r, "from_date"),
		ToDate:       optionalQuery(r, "to_date"),
		Status:       optionalQuery(r, "status"),
	}
	filter.Page, filter.Limit = pageQuery(r)

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, meta(result.Page, result.Limit, result.TotalCount, result.TotalPages))
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted", nil)
}

// Summary implements AttendanceHandler.
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := attendance.SummaryRequest{
		EmployeeCode: q.Get("employee_code"),
		FromDate:     q.Get("from_date"),
		ToDate:       q.Get("to_date"),
	}

	result, err := h.attendanceService.Summarize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== LEAVE PERIODS ==========

// CreateLeavePeriod implements AttendanceHandler.
func (h *attendanceHandlerImpl) CreateLeavePeriod(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateLeavePeriodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.attendanceService.CreateLeavePeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave period created", result)
}

// ListLeavePeriods implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLeavePeriods(w http.ResponseWriter, r *http.Request) {
	filter := attendance.LeavePeriodFilter{
		EmployeeCode: optionalQuery(r, "employee_code"),
		FromDate:     optionalQuery(r, "from_date"),
		ToDate:       optionalQuery(r, "to_date"),
	}

	result, err := h.attendanceService.ListLeavePeriods(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteLeavePeriod implements AttendanceHandler.
func (h *attendanceHandlerImpl) DeleteLeavePeriod(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.attendanceService.DeleteLeavePeriod(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave period deleted", nil)
}

// LeaveAlerts implements AttendanceHandler. lookahead_days overrides the
// configured window.
func (h *attendanceHandlerImpl) LeaveAlerts(w http.ResponseWriter, r *http.Request) {
	lookahead := h.lookaheadDays
	if l := r.URL.Query().Get("lookahead_days"); l != "" {
		days, err := strconv.Atoi(l)
		if err != nil || days < 0 {
			response.ValidationError(w, map[string]string{"lookahead_days": "must be a non-negative number"})
			return
		}
		lookahead = days
	}

	result, err := h.attendanceService.LeaveAlerts(r.Context(), h.now(), lookahead)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
