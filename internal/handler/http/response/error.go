package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/file"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrAdminRequired = errors.New("admin role required")
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, ErrAdminRequired):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, inventory.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrEmployeeNotFound),
		errors.Is(err, advance.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrUnknownEmployee):
		NotFound(w, err.Error())
	case errors.Is(err, inventory.ErrItemNotFound),
		errors.Is(err, inventory.ErrSerialUnitNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrLeavePeriodNotFound),
		errors.Is(err, advance.ErrAdvanceNotFound),
		errors.Is(err, advance.ErrDeductionNotFound),
		errors.Is(err, payroll.ErrEntryNotFound),
		errors.Is(err, payroll.ErrPaymentStatusNotFound),
		errors.Is(err, file.ErrFileNotFound):
		NotFound(w, err.Error())

	// Uniqueness and referential conflicts
	case errors.Is(err, employee.ErrEmployeeCodeExists),
		errors.Is(err, employee.ErrEmployeeHasDependents),
		errors.Is(err, inventory.ErrItemCodeExists),
		errors.Is(err, inventory.ErrItemHasDependents),
		errors.Is(err, inventory.ErrSerialNumberExists),
		errors.Is(err, attendance.ErrAttendanceExists),
		errors.Is(err, file.ErrFileInUse):
		Conflict(w, err.Error())

	// Ledger rules
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, inventory.ErrInsufficientBalance),
		errors.Is(err, inventory.ErrInvalidSerialState),
		errors.Is(err, inventory.ErrNotQuantityTracked),
		errors.Is(err, inventory.ErrNotSerialTracked),
		errors.Is(err, inventory.ErrSerialOnlyRestricted),
		errors.Is(err, attendance.ErrInvalidDateRange),
		errors.Is(err, payroll.ErrInvalidWindow):
		UnprocessableEntity(w, err.Error())

	case errors.Is(err, file.ErrInvalidFileType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, file.ErrFileTooLarge):
		FileTooLarge(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
