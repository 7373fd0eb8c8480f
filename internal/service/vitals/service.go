package vitals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/internal/repository"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

type Service struct {
	repo    repository.VitalRepository
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.VitalRepository, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		logger:  log,
		metrics: m,
		now:     time.Now,
	}
}

// Kinds returns the tracked vital types.
func (s *Service) Kinds() []model.VitalInfo {
	return model.VitalKinds
}

func (s *Service) Overview(ctx context.Context) ([]model.VitalSummary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return Overview(records), nil
}

func (s *Service) Latest(ctx context.Context, kind model.VitalKind) (*model.HealthRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return Latest(records, kind), nil
}

func (s *Service) Trend(ctx context.Context, kind model.VitalKind) (model.Trend, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list readings: %w", err)
	}
	return Trend(records, kind), nil
}

// Recent returns every reading, newest first.
func (s *Service) Recent(ctx context.Context) ([]model.HealthRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	return Recent(records), nil
}

// AddReading validates and stores a new reading. Missing date or time
// default to the current clock.
func (s *Service) AddReading(ctx context.Context, req model.AddReadingRequest) (*model.HealthRecord, error) {
	if _, ok := req.Kind.Info(); !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown vital type %q", req.Kind))
	}
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, apperrors.NewValidation("please enter a value")
	}

	now := s.now()
	record := &model.HealthRecord{
		Kind:  req.Kind,
		Value: value,
		Date:  req.Date,
		Time:  req.Time,
		Notes: strings.TrimSpace(req.Notes),
	}
	if record.Date == "" {
		record.Date = now.Format(model.RecordDateLayout)
	} else if _, err := time.Parse(model.RecordDateLayout, record.Date); err != nil {
		return nil, apperrors.NewValidation("date must be YYYY-MM-DD")
	}
	if record.Time == "" {
		record.Time = now.Format(model.RecordTimeLayout)
	} else if _, err := time.Parse(model.RecordTimeLayout, record.Time); err != nil {
		return nil, apperrors.NewValidation("time must be HH:MM")
	}

	if err := s.repo.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add reading: %w", err)
	}

	s.metrics.VitalsReadingsAdded.WithLabelValues(string(record.Kind)).Inc()
	s.logger.Info("vital reading added",
		"record_id", record.ID,
		"kind", string(record.Kind),
		"date", record.Date)

	return record, nil
}
