package repository

import (
	"context"

	"github.com/jwalitptl/care-api/internal/model"
)

// All repository interfaces in one file
type (
	// VitalRepository stores health readings in insertion order.
	VitalRepository interface {
		List(ctx context.Context) ([]model.HealthRecord, error)
		Add(ctx context.Context, record *model.HealthRecord) error
	}

	// PreferenceRepository is a small key/value store. Get returns a
	// NotFound AppError for a missing key.
	PreferenceRepository interface {
		Get(ctx context.Context, key string) (string, error)
		Set(ctx context.Context, key, value string) error
	}
)
