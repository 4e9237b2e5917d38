// ABOUTME: Mock UserStore implementation for testing
// ABOUTME: Allows handler tests to run without SQLite

package store

import (
	"context"
	"sync"
)

// MockStore is an in-memory UserStore implementation for testing.
type MockStore struct {
	mu      sync.RWMutex
	users   map[string]*User  // keyed by user ID
	byEmail map[string]string // normalized email -> user ID

	// Err, when set, is returned by every method.
	Err error
}

// Ensure MockStore implements UserStore.
var _ UserStore = (*MockStore)(nil)

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// CreateUser stores a new user, rejecting duplicate emails like SQLiteStore.
func (m *MockStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	user.Email = normalizeEmail(user.Email)
	if _, exists := m.byEmail[user.Email]; exists {
		return ErrEmailExists
	}

	// Make a copy to avoid external modification
	u := *user
	m.users[u.ID] = &u
	m.byEmail[u.Email] = u.ID
	return nil
}

// GetUser retrieves a user by ID.
func (m *MockStore) GetUser(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *u
	return &result, nil
}

// GetUserByEmail retrieves a user by email.
func (m *MockStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}

	id, ok := m.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrNotFound
	}
	result := *m.users[id]
	return &result, nil
}

// CountUsers returns the number of stored users.
func (m *MockStore) CountUsers(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.users), nil
}

// Close is a no-op for MockStore.
func (m *MockStore) Close() error {
	return nil
}
