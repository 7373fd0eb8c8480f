package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/care-api/internal/repository"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

const keyPrefix = "care:preferences:"

type preferenceRepository struct {
	client redis.UniversalClient
}

func NewPreferenceRepository(client redis.UniversalClient) repository.PreferenceRepository {
	return &preferenceRepository{client: client}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.NotFound("preference", err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return v, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set preference %s: %w", key, err)
	}
	return nil
}
