package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByCode(ctx context.Context, employeeCode string) (Employee, error)

	// GetByCodes returns the employees found; missing codes are simply absent
	GetByCodes(ctx context.Context, employeeCodes []string) ([]Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)

	// Delete fails with ErrEmployeeHasDependents while other rows reference the employee
	Delete(ctx context.Context, id int64) error
}
