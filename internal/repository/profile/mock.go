package profile

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu       sync.RWMutex
	profiles map[int64]Profile
	nextID   int64
	// Err, when set, is returned by every method.
	Err error
}

var _ Repository = (*MockRepository)(nil)

func NewMockRepository() *MockRepository {
	return &MockRepository{profiles: make(map[int64]Profile)}
}

func (m *MockRepository) List(_ context.Context) ([]Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Profile) int { return cmp.Compare(a.CustomerID, b.CustomerID) })
	return out, nil
}

func (m *MockRepository) Get(_ context.Context, customerID int64) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[customerID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	email = NormalizeEmail(email)
	for _, p := range all {
		if p.EmailID == email {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockRepository) Add(_ context.Context, p *Profile) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := *p
	row.CustomerID = m.nextID
	row.EmailID = NormalizeEmail(row.EmailID)
	m.profiles[row.CustomerID] = row
	return &row, nil
}

func (m *MockRepository) Update(_ context.Context, p *Profile) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.CustomerID]; !ok {
		return nil, ErrNotFound
	}
	row := *p
	row.EmailID = NormalizeEmail(row.EmailID)
	m.profiles[row.CustomerID] = row
	return &row, nil
}

func (m *MockRepository) Delete(_ context.Context, customerID int64) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[customerID]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.profiles, customerID)
	return &p, nil
}
