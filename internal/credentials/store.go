// Package credentials abstracts where the access token lives so the HTTP
// client never touches persistence directly.
package credentials

import "sync"

type Store interface {
	// Token returns the stored access token, or "" when none is stored.
	Token() (string, error)
	Save(token string) error
	Clear() error
}

// MemStore keeps the token in memory only. Used for tests and ephemeral
// sessions.
type MemStore struct {
	mu    sync.Mutex
	token string
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
