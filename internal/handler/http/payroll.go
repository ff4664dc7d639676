package http

import (
	"net/http"
	"strings"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ComputeSheet(w http.ResponseWriter, r *http.Request)
	ComputeLine(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	UpsertEntry(w http.ResponseWriter, r *http.Request)
	BulkUpsertEntries(w http.ResponseWriter, r *http.Request)

	MarkPaid(w http.ResponseWriter, r *http.Request)
	MarkUnpaid(w http.ResponseWriter, r *http.Request)
	SetPaymentStatus(w http.ResponseWriter, r *http.Request)
	ListPaymentStatuses(w http.ResponseWriter, r *http.Request)
	TotalPaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func lineRequest(r *http.Request) payroll.LineRequest {
	q := r.URL.Query()
	return payroll.LineRequest{
		EmployeeCode: q.Get("employee_code"),
		FromDate:     q.Get("from_date"),
		ToDate:       q.Get("to_date"),
	}
}

// ComputeSheet implements PayrollHandler. employee_codes is a comma separated list.
func (h *payrollHandlerImpl) ComputeSheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.ComputeSheetRequest{
		FromDate: q.Get("from_date"),
		ToDate:   q.Get("to_date"),
	}
	if codes := q.Get("employee_codes"); codes != "" {
		for _, code := range strings.Split(codes, ",") {
			if code = strings.TrimSpace(code); code != "" {
				req.EmployeeCodes = append(req.EmployeeCodes, code)
			}
		}
	}

	result, err := h.payrollService.ComputeSheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ComputeLine implements PayrollHandler.
func (h *payrollHandlerImpl) ComputeLine(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ComputeLine(r.Context(), lineRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEntry implements PayrollHandler.
func (h *payrollHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetEntry(r.Context(), lineRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpsertEntry implements PayrollHandler.
func (h *payrollHandlerImpl) UpsertEntry(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.UpsertEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet entry saved", result)
}

// BulkUpsertEntries implements PayrollHandler.
func (h *payrollHandlerImpl) BulkUpsertEntries(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkUpsertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.BulkUpsertEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet entries saved", result)
}

// ========== PAYMENT STATUS ==========

// MarkPaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkPaidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marked paid", result)
}

// MarkUnpaid implements PayrollHandler.
func (h *payrollHandlerImpl) MarkUnpaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.MarkUnpaidRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.MarkUnpaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Marked unpaid", result)
}

// SetPaymentStatus implements PayrollHandler.
func (h *payrollHandlerImpl) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.PaymentStatusUpsert
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.payrollService.SetPaymentStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status saved", result)
}

// ListPaymentStatuses implements PayrollHandler.
func (h *payrollHandlerImpl) ListPaymentStatuses(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListPaymentStatuses(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TotalPaid implements PayrollHandler.
func (h *payrollHandlerImpl) TotalPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.TotalPaid(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
