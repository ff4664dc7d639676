package servicetest

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/advance"
	"github.com/shopspring/decimal"
)

// Advances is an in-memory advance.AdvanceRepository.
type Advances struct {
	mu         sync.Mutex
	nextID     int64
	advances   []advance.Advance
	Deductions map[string]advance.Deduction
}

func NewAdvances() *Advances {
	return &Advances{Deductions: map[string]advance.Deduction{}}
}

func deductionKey(employeeID int64, month string) string {
	return month + "/" + strconv.FormatInt(employeeID, 10)
}

func (m *Advances) CreateAdvance(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	a.CreatedAt = time.Now()
	m.advances = append(m.advances, a)
	return a, nil
}

func (m *Advances) GetAdvanceByID(ctx context.Context, id int64) (advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.advances {
		if a.ID == id {
			return a, nil
		}
	}
	return advance.Advance{}, advance.ErrAdvanceNotFound
}

func (m *Advances) DeleteAdvance(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.advances {
		if a.ID == id {
			m.advances = append(m.advances[:i], m.advances[i+1:]...)
			return nil
		}
	}
	return advance.ErrAdvanceNotFound
}

func (m *Advances) ListAdvances(ctx context.Context, employeeID int64, from, to *time.Time) ([]advance.Advance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []advance.Advance
	for _, a := range m.advances {
		if a.EmployeeID != employeeID {
			continue
		}
		if from != nil && a.AdvanceDate.Before(*from) {
			continue
		}
		if to != nil && a.AdvanceDate.After(*to) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *Advances) UpsertDeduction(ctx context.Context, d advance.Deduction) (advance.Deduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := deductionKey(d.EmployeeID, d.Month)
	if existing, ok := m.Deductions[key]; ok {
		d.ID = existing.ID
		d.CreatedAt = existing.CreatedAt
	} else {
		m.nextID++
		d.ID = m.nextID
		d.CreatedAt = time.Now()
	}
	d.UpdatedAt = time.Now()
	m.Deductions[key] = d
	return d, nil
}

func (m *Advances) GetDeduction(ctx context.Context, employeeID int64, month string) (advance.Deduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Deductions[deductionKey(employeeID, month)]
	if !ok {
		return advance.Deduction{}, advance.ErrDeductionNotFound
	}
	return d, nil
}

func (m *Advances) ListDeductions(ctx context.Context, employeeID int64) ([]advance.Deduction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []advance.Deduction
	for _, d := range m.Deductions {
		if d.EmployeeID == employeeID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (m *Advances) SumAdvances(ctx context.Context, employeeID int64, until time.Time) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, a := range m.advances {
		if a.EmployeeID == employeeID && !a.AdvanceDate.After(until) {
			total = total.Add(a.Amount)
		}
	}
	return total, nil
}

func (m *Advances) SumDeductions(ctx context.Context, employeeID int64, month string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, d := range m.Deductions {
		if d.EmployeeID == employeeID && d.Month <= month {
			total = total.Add(d.Amount)
		}
	}
	return total, nil
}

