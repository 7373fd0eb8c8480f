package search

import (
	"context"
	"strconv"

	"github.com/jwalitptl/care-api/internal/catalog"
	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

type Service struct {
	catalog *catalog.Store
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(store *catalog.Store, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		catalog: store,
		logger:  log,
		metrics: m,
	}
}

// Search filters the catalog and projects the result for display.
func (s *Service) Search(ctx context.Context, criteria model.FilterCriteria, expanded bool) model.SearchResult {
	filtered := Filter(s.catalog.All(), criteria)

	s.metrics.SearchRequests.WithLabelValues(strconv.FormatBool(expanded)).Inc()
	s.metrics.SearchResults.Observe(float64(len(filtered)))
	s.logger.Debug("doctor search",
		"query", criteria.Query,
		"specialty", string(criteria.Specialty),
		"matches", len(filtered))

	return model.SearchResult{
		Doctors:          Project(filtered, expanded),
		Total:            len(filtered),
		HasMore:          HasMore(filtered),
		Expanded:         expanded,
		HasActiveFilters: criteria.HasActive(),
		Criteria:         criteria,
	}
}

// GetDoctor returns a single catalog entry.
func (s *Service) GetDoctor(ctx context.Context, id int) (*model.Doctor, error) {
	d, ok := s.catalog.Get(id)
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return &d, nil
}

// Specialties returns the selectable specialty list.
func (s *Service) Specialties() []model.SpecialtyInfo {
	return model.Specialties
}
