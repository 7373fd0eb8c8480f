package preference

import (
	"context"
	"fmt"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/logger"
)

type Service struct {
	repo   repository.PreferenceRepository
	logger *logger.Logger
}

func NewService(repo repository.PreferenceRepository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// GetLanguage returns the stored language, or the default when none is
// stored or the stored value is no longer supported.
func (s *Service) GetLanguage(ctx context.Context) (string, error) {
	lang, err := s.repo.Get(ctx, model.LanguagePreferenceKey)
	if apperrors.HasCode(err, apperrors.ErrNotFound) {
		return model.DefaultLanguage, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load language: %w", err)
	}
	if !model.IsSupportedLanguage(lang) {
		s.logger.Warn("stored language not supported", "language", lang)
		return model.DefaultLanguage, nil
	}
	return lang, nil
}

func (s *Service) SetLanguage(ctx context.Context, lang string) error {
	if !model.IsSupportedLanguage(lang) {
		return apperrors.NewValidation(fmt.Sprintf("unsupported language %q", lang))
	}
	if err := s.repo.Set(ctx, model.LanguagePreferenceKey, lang); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	s.logger.Info("language changed", "language", lang)
	return nil
}
