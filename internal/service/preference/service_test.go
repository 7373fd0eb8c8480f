package preference

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/logger"
)

type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockPreferenceRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func TestLanguageRoundTrip(t *testing.T) {
	svc := NewService(memory.NewPreferenceRepository(), logger.Nop())
	ctx := context.Background()

	lang, err := svc.GetLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLanguage, lang)

	require.NoError(t, svc.SetLanguage(ctx, "ta"))
	lang, err = svc.GetLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ta", lang)

	err = svc.SetLanguage(ctx, "fr")
	assert.True(t, apperrors.IsValidation(err))
	lang, err = svc.GetLanguage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ta", lang)
}

func TestGetLanguageUnsupportedStoredValue(t *testing.T) {
	repo := new(MockPreferenceRepository)
	repo.On("Get", mock.Anything, model.LanguagePreferenceKey).Return("xx", nil)

	lang, err := NewService(repo, logger.Nop()).GetLanguage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultLanguage, lang)
}

func TestLanguageRepositoryErrors(t *testing.T) {
	repo := new(MockPreferenceRepository)
	boom := errors.New("timeout")
	repo.On("Get", mock.Anything, model.LanguagePreferenceKey).Return("", boom)
	repo.On("Set", mock.Anything, model.LanguagePreferenceKey, "en").Return(boom)
	svc := NewService(repo, logger.Nop())

	_, err := svc.GetLanguage(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.SetLanguage(context.Background(), "en"), boom)
	repo.AssertExpectations(t)
}
