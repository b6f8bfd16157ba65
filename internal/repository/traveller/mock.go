package traveller

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu         sync.RWMutex
	travellers map[int64]Traveller
	nextID     int64
	// OwnerExists, when set, decides whether a customer id refers to a profile.
	OwnerExists func(customerID int64) bool
	// Err, when set, is returned by every method.
	Err error
}

var _ Repository = (*MockRepository)(nil)

func NewMockRepository() *MockRepository {
	return &MockRepository{travellers: make(map[int64]Traveller)}
}

func (m *MockRepository) ownerExists(customerID int64) bool {
	return m.OwnerExists == nil || m.OwnerExists(customerID)
}

func (m *MockRepository) sorted(keep func(Traveller) bool) []Traveller {
	out := []Traveller{}
	for _, t := range m.travellers {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b Traveller) int { return cmp.Compare(a.AdditionalID, b.AdditionalID) })
	return out
}

func (m *MockRepository) List(_ context.Context) ([]Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(Traveller) bool { return true }), nil
}

func (m *MockRepository) Get(_ context.Context, additionalID int64) (*Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.travellers[additionalID]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MockRepository) ListByCustomer(_ context.Context, customerID int64) ([]Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(t Traveller) bool { return t.CustomerID == customerID }), nil
}

func (m *MockRepository) Add(_ context.Context, t *Traveller) (*Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if !m.ownerExists(t.CustomerID) {
		return nil, ErrOwnerNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := Traveller{AdditionalID: m.nextID, CustomerID: t.CustomerID, AdditionalName: t.AdditionalName}
	m.travellers[row.AdditionalID] = row
	return &row, nil
}

func (m *MockRepository) Update(_ context.Context, t *Traveller) (*Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.travellers[t.AdditionalID]; !ok {
		return nil, ErrNotFound
	}
	if !m.ownerExists(t.CustomerID) {
		return nil, ErrOwnerNotFound
	}
	row := Traveller{AdditionalID: t.AdditionalID, CustomerID: t.CustomerID, AdditionalName: t.AdditionalName}
	m.travellers[row.AdditionalID] = row
	return &row, nil
}

func (m *MockRepository) Delete(_ context.Context, additionalID int64) (*Traveller, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.travellers[additionalID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.travellers, additionalID)
	return &t, nil
}
