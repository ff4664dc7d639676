package employee

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/service/servicetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_CreateDefaults(t *testing.T) {
	svc := NewEmployeeService(servicetest.NewEmployees())

	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: "EMP-001",
		FullName:     "Bilal Ahmed",
		BaseSalary:   decimal.NewFromInt(31000),
		OTRate:       decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "cash", resp.BankCash)
	assert.True(t, resp.BaseSalary.Equal(decimal.NewFromInt(31000)))
}

func TestEmployeeService_CreateDuplicateCode(t *testing.T) {
	svc := NewEmployeeService(servicetest.NewEmployees(employee.Employee{EmployeeCode: "EMP-001", FullName: "A"}))

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{EmployeeCode: "EMP-001", FullName: "B"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	svc := NewEmployeeService(servicetest.NewEmployees())

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: "EMP-002",
		FullName:     "Bank Payee",
		BaseSalary:   decimal.NewFromInt(-1),
		BankCash:     "bank",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "base_salary")
	assert.Contains(t, fields, "bank_account_number")
}

func TestEmployeeService_UpdateKeepsCode(t *testing.T) {
	repo := servicetest.NewEmployees(employee.Employee{EmployeeCode: "EMP-001", FullName: "Old Name"})
	svc := NewEmployeeService(repo)
	ctx := context.Background()

	existing, err := svc.GetEmployeeByCode(ctx, "EMP-001")
	require.NoError(t, err)

	name := "New Name"
	salary := decimal.NewFromInt(45000)
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: existing.ID, FullName: &name, BaseSalary: &salary})
	require.NoError(t, err)
	assert.Equal(t, "EMP-001", updated.EmployeeCode)
	assert.Equal(t, "New Name", updated.FullName)
	assert.True(t, updated.BaseSalary.Equal(salary))
}

func TestEmployeeService_ListPaginates(t *testing.T) {
	repo := servicetest.NewEmployees(
		employee.Employee{EmployeeCode: "EMP-001", FullName: "A"},
		employee.Employee{EmployeeCode: "EMP-002", FullName: "B"},
		employee.Employee{EmployeeCode: "EMP-003", FullName: "C"},
	)
	svc := NewEmployeeService(repo)

	resp, err := svc.ListEmployees(context.Background(), employee.EmployeeFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Employees, 1)
	assert.Equal(t, "EMP-003", resp.Employees[0].EmployeeCode)
}

func TestEmployeeService_DeleteMissing(t *testing.T) {
	svc := NewEmployeeService(servicetest.NewEmployees())
	assert.ErrorIs(t, svc.DeleteEmployee(context.Background(), 99), employee.ErrEmployeeNotFound)
}
