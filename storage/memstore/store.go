// Package memstore is an in-memory core.Store, used in tests and ephemeral runs.
package memstore

import (
	"context"
	"sync"

	"github.com/trezcool/missingwork/core"
)

type Store struct {
	data  map[string][]byte
	mutex sync.RWMutex
}

var _ core.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, core.ErrNoRecord
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Set(_ context.Context, key string, data []byte) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
