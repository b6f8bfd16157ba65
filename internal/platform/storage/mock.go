package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MockStore is an in-memory ImageStore for tests.
type MockStore struct {
	mu    sync.RWMutex
	files map[string][]byte
	// SaveErr, when set, is returned by Save.
	SaveErr error
}

var _ ImageStore = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{files: make(map[string][]byte)}
}

func (m *MockStore) Save(_ context.Context, name, _ string, r io.Reader) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	return nil
}

func (m *MockStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[name]
	if !ok {
		return nil, ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, name)
	return nil
}

// Has reports whether name is stored.
func (m *MockStore) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// Len returns the number of stored files.
func (m *MockStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
