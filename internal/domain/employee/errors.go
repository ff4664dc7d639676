package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrEmployeeHasDependents = errors.New("employee is referenced by attendance, advances, inventory or payroll records")
)
