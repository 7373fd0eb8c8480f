package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/care-api/internal/repository"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

type preferenceRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewPreferenceRepository() repository.PreferenceRepository {
	return &preferenceRepository{values: make(map[string]string)}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return "", apperrors.NotFound("preference", nil)
	}
	return v, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}
