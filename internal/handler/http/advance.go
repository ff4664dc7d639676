package http

import (
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/handler/http/response"
)

type AdvanceHandler interface {
	RecordAdvance(w http.ResponseWriter, r *http.Request)
	ListAdvances(w http.ResponseWriter, r *http.Request)
	DeleteAdvance(w http.ResponseWriter, r *http.Request)
	SetDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	Outstanding(w http.ResponseWriter, r *http.Request)
}

type advanceHandlerImpl struct {
	advanceService advance.AdvanceService
}

func NewAdvanceHandler(advanceService advance.AdvanceService) AdvanceHandler {
	return &advanceHandlerImpl{advanceService: advanceService}
}

// RecordAdvance implements AdvanceHandler.
func (h *advanceHandlerImpl) RecordAdvance(w http.ResponseWriter, r *http.Request) {
	var req advance.RecordAdvanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.advanceService.RecordAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance recorded", result)
}

// ListAdvances implements AdvanceHandler.
func (h *advanceHandlerImpl) ListAdvances(w http.ResponseWriter, r *http.Request) {
	filter := advance.AdvanceFilter{
		EmployeeCode: r.URL.Query().Get("employee_code"),
		FromDate:     optionalQuery(r, "from_date"),
		ToDate:       optionalQuery(r, "to_date"),
	}

	result, err := h.advanceService.ListAdvances(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteAdvance implements AdvanceHandler.
func (h *advanceHandlerImpl) DeleteAdvance(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.advanceService.DeleteAdvance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deleted", nil)
}

// SetDeduction implements AdvanceHandler.
func (h *advanceHandlerImpl) SetDeduction(w http.ResponseWriter, r *http.Request) {
	var req advance.SetDeductionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.advanceService.SetDeduction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction saved", result)
}

// ListDeductions implements AdvanceHandler.
func (h *advanceHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	result, err := h.advanceService.ListDeductions(r.Context(), r.URL.Query().Get("employee_code"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Outstanding implements AdvanceHandler.
func (h *advanceHandlerImpl) Outstanding(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.advanceService.Outstanding(r.Context(), q.Get("employee_code"), q.Get("month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
