package repository

import (
	"context"
	"sync"
)

type repository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewKVRepository() *repository {
	return &repository{data: make(map[string]string)}
}

func (r *repository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	return v, ok, nil
}

func (r *repository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = value
	return nil
}

func (r *repository) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, key)
	return nil
}
