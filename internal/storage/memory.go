package storage

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

type MemoryOption func(*MemoryStore)

// WithQuota limits the total size of keys plus values, like a browser storage area.
func WithQuota(bytes int) MemoryOption {
	return func(s *MemoryStore) { s.quota = bytes }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{data: make(map[string][]byte)}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quota > 0 {
		used := len(key) + len(value)
		for k, v := range s.data {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > s.quota {
			return ErrQuotaExceeded
		}
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
