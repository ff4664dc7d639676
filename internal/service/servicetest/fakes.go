// Package servicetest holds in-memory stand-ins for the postgres repositories
// so services can be unit tested without a database.
package servicetest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/employee"
)

// Restorer snapshots its state and returns a func that rolls back to it.
type Restorer interface {
	Snapshot() func()
}

type txMarker struct{}

// Transactor serializes transactions with one mutex, which stands in for row
// locks, and rolls every registered store back when fn fails.
type Transactor struct {
	mu     sync.Mutex
	stores []Restorer

	Commits   int
	Rollbacks int
}

func NewTransactor(stores ...Restorer) *Transactor {
	return &Transactor{stores: stores}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	restores := make([]func(), 0, len(t.stores))
	for _, s := range t.stores {
		restores = append(restores, s.Snapshot())
	}

	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		for _, restore := range restores {
			restore()
		}
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}

// WithinSnapshot holds the same lock as a transaction, so no write lands
// between the reads of fn.
func (t *Transactor) WithinSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.WithinTransaction(ctx, fn)
}

// Employees is an in-memory employee.EmployeeRepository.
type Employees struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]employee.Employee
}

func NewEmployees(seed ...employee.Employee) *Employees {
	e := &Employees{rows: map[int64]employee.Employee{}}
	for _, emp := range seed {
		if _, err := e.Create(context.Background(), emp); err != nil {
			panic(err)
		}
	}
	return e
}

func (e *Employees) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, row := range e.rows {
		if row.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	e.nextID++
	newEmployee.ID = e.nextID
	if newEmployee.Status == "" {
		newEmployee.Status = employee.StatusActive
	}
	if newEmployee.BankCash == "" {
		newEmployee.BankCash = employee.PayByCash
	}
	newEmployee.CreatedAt = time.Now()
	newEmployee.UpdatedAt = newEmployee.CreatedAt
	e.rows[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (e *Employees) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return row, nil
}

func (e *Employees) GetByCode(ctx context.Context, employeeCode string) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, row := range e.rows {
		if row.EmployeeCode == employeeCode {
			return row, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (e *Employees) GetByCodes(ctx context.Context, employeeCodes []string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, code := range employeeCodes {
		if row, err := e.GetByCode(ctx, code); err == nil {
			out = append(out, row)
		}
	}
	return out, nil
}

func (e *Employees) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var matched []employee.Employee
	for _, row := range e.sorted() {
		if filter.Status != nil && string(row.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil {
			q := strings.ToLower(*filter.Search)
			if !strings.Contains(strings.ToLower(row.EmployeeCode), q) && !strings.Contains(strings.ToLower(row.FullName), q) {
				continue
			}
		}
		matched = append(matched, row)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (e *Employees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, row := range e.sorted() {
		if row.Status == employee.StatusActive {
			out = append(out, row)
		}
	}
	return out, nil
}

func (e *Employees) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.rows[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	emp.EmployeeCode = row.EmployeeCode
	emp.CreatedAt = row.CreatedAt
	emp.UpdatedAt = time.Now()
	e.rows[emp.ID] = emp
	return emp, nil
}

func (e *Employees) Delete(ctx context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.rows[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(e.rows, id)
	return nil
}

func (e *Employees) sorted() []employee.Employee {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]employee.Employee, 0, len(e.rows))
	for _, row := range e.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out
}

var errTransactionLog = errors.New("transaction log unavailable")
