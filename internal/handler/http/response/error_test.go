package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "quantity", Message: "must be greater than 0"}}, http.StatusUnprocessableEntity, CodeValidation},
		{"wrapped not found", fmt.Errorf("load: %w", inventory.ErrItemNotFound), http.StatusNotFound, CodeNotFound},
		{"unknown employee", payroll.ErrUnknownEmployee, http.StatusNotFound, CodeNotFound},
		{"duplicate code", employee.ErrEmployeeCodeExists, http.StatusConflict, CodeConflict},
		{"dependents", employee.ErrEmployeeHasDependents, http.StatusConflict, CodeConflict},
		{"insufficient stock", fmt.Errorf("%w: GUN-01", inventory.ErrInsufficientStock), http.StatusUnprocessableEntity, CodeRuleViolation},
		{"invalid window", payroll.ErrInvalidWindow, http.StatusUnprocessableEntity, CodeRuleViolation},
		{"token", ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},
		{"admin", ErrAdminRequired, http.StatusForbidden, CodeForbidden},
		{"file type", file.ErrInvalidFileType, http.StatusBadRequest, CodeBadRequest},
		{"file size", file.ErrFileTooLarge, http.StatusRequestEntityTooLarge, CodeFileTooLarge},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "month", Message: "must be a month in YYYY-MM format"},
		{Field: "employee_code", Message: "is required"},
	})

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, map[string]string{
		"month":         "must be a month in YYYY-MM format",
		"employee_code": "is required",
	}, body.Error.Details)
}
