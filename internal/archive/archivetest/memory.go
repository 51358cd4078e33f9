// Package archivetest provides an in-memory archive.Store for tests
package archivetest

import (
	"context"
	"sync"
)

// MemoryStore keeps objects in memory. PutErr fails every Put and
// IdentityErr fails every Identity call.
type MemoryStore struct {
	mu          sync.Mutex
	Objects     map[string][]byte
	Types       map[string]string
	Caller      string
	PutErr      error
	IdentityErr error
}

func NewMemoryStore(caller string) *MemoryStore {
	return &MemoryStore{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
		Caller:  caller,
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte, contentType string) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = append([]byte(nil), data...)
	m.Types[key] = contentType
	return nil
}

func (m *MemoryStore) Identity(context.Context) (string, error) {
	if m.IdentityErr != nil {
		return "", m.IdentityErr
	}
	return m.Caller, nil
}
