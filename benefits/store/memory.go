// Package store provides in-memory provider implementations.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/warp/benefits-engine/benefits"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements benefits.EmployeeProvider and
// benefits.ConfigurationProvider. Records are copied on the way in and out.
type Memory struct {
	mu        sync.RWMutex
	employees map[benefits.EmployeeID]benefits.Employee
	config    *benefits.PaycheckConfiguration

	// Err, when set, is returned from every read. Used to simulate an
	// unavailable backing store.
	Err error
}

func NewMemory() *Memory {
	return &Memory{
		employees: make(map[benefits.EmployeeID]benefits.Employee),
	}
}

// SaveEmployee stores or replaces an employee.
func (m *Memory) SaveEmployee(_ context.Context, emp benefits.Employee) error {
	if emp.ID == 0 {
		return errors.New("employee id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[emp.ID] = cloneEmployee(emp)
	return nil
}

// SetConfiguration replaces the active configuration. nil clears it.
func (m *Memory) SetConfiguration(cfg *benefits.PaycheckConfiguration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cfg == nil {
		m.config = nil
		return
	}
	c := *cfg
	m.config = &c
}

func (m *Memory) GetEmployee(_ context.Context, id benefits.EmployeeID) (*benefits.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	emp, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	out := cloneEmployee(emp)
	return &out, nil
}

// ListEmployees returns all employees ordered by id.
func (m *Memory) ListEmployees(_ context.Context) ([]benefits.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	out := make([]benefits.Employee, 0, len(m.employees))
	for _, emp := range m.employees {
		out = append(out, cloneEmployee(emp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetPaycheckConfiguration(_ context.Context) (*benefits.PaycheckConfiguration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.config == nil {
		return nil, nil
	}
	c := *m.config
	return &c, nil
}

func cloneEmployee(emp benefits.Employee) benefits.Employee {
	if emp.Dependents != nil {
		deps := make([]benefits.Dependent, len(emp.Dependents))
		copy(deps, emp.Dependents)
		emp.Dependents = deps
	}
	return emp
}
