package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwalitptl/care-api/internal/email"
	"github.com/jwalitptl/care-api/internal/model"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/messaging"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

const (
	maxRetries = 3
	retryDelay = 500 * time.Millisecond

	// EventBookingConfirmed is the event type published for each booking.
	EventBookingConfirmed = "booking.confirmed"

	channelEvent = "event"
	channelEmail = "email"
)

// DoctorLookup resolves the doctor named in a booking.
type DoctorLookup interface {
	Get(id int) (model.Doctor, bool)
}

// Service fans a confirmed booking out to the event publisher and, when
// configured, an email confirmation.
type Service struct {
	publisher  messaging.Publisher
	emailSvc   email.Service
	doctors    DoctorLookup
	logger     *logger.Logger
	metrics    *metrics.Metrics
	retryDelay time.Duration
}

// NewService builds the notifier. emailSvc may be nil.
func NewService(publisher messaging.Publisher, emailSvc email.Service, doctors DoctorLookup, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		publisher:  publisher,
		emailSvc:   emailSvc,
		doctors:    doctors,
		logger:     log,
		metrics:    m,
		retryDelay: retryDelay,
	}
}

// BookingConfirmed delivers the booking on every channel. A failing channel
// does not stop the others.
func (s *Service) BookingConfirmed(ctx context.Context, booking model.Booking) error {
	var errs []error

	err := s.withRetry(ctx, channelEvent, func() error {
		return s.publisher.Publish(ctx, EventBookingConfirmed, booking)
	})
	if err != nil {
		s.metrics.BookingEventsPublished.WithLabelValues("failed").Inc()
		errs = append(errs, err)
	} else {
		s.metrics.BookingEventsPublished.WithLabelValues("published").Inc()
	}

	if s.emailSvc != nil {
		if err := s.sendEmail(ctx, booking); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Service) sendEmail(ctx context.Context, booking model.Booking) error {
	doctor, ok := s.doctors.Get(booking.DoctorID)
	if !ok {
		return fmt.Errorf("doctor %d not in catalog", booking.DoctorID)
	}
	return s.withRetry(ctx, channelEmail, func() error {
		return s.emailSvc.SendBookingConfirmation(ctx, booking, doctor)
	})
}

func (s *Service) withRetry(ctx context.Context, channel string, send func() error) error {
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = send(); err == nil {
			return nil
		}

		s.logger.Warn("notification attempt failed",
			"channel", channel,
			"attempt", attempt,
			"error", err.Error())

		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("%s notification failed after %d attempts: %w", channel, maxRetries, err)
}
