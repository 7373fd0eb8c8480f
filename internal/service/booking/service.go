package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
	"github.com/jwalitptl/care-api/pkg/logger"
	"github.com/jwalitptl/care-api/pkg/metrics"
)

// Listener is notified once per confirmed booking.
type Listener interface {
	BookingConfirmed(ctx context.Context, booking model.Booking) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, booking model.Booking) error

func (f ListenerFunc) BookingConfirmed(ctx context.Context, booking model.Booking) error {
	return f(ctx, booking)
}

type Config struct {
	SessionTTL    time.Duration
	CleanupPeriod time.Duration
	Scheduler     Scheduler
}

// Service owns the live booking sessions. Idle sessions expire after the
// configured TTL and are disposed on eviction.
type Service struct {
	sessions  *cache.Cache
	options   OptionsFunc
	now       func() time.Time
	doctors   DoctorLookup
	scheduler Scheduler
	logger    *logger.Logger
	metrics   *metrics.Metrics

	mu        sync.RWMutex
	listeners []Listener
	wg        sync.WaitGroup
}

func NewService(options OptionsFunc, doctors DoctorLookup, cfg Config, log *logger.Logger, m *metrics.Metrics) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultCleanupPeriod
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = RealScheduler()
	}

	s := &Service{
		sessions:  cache.New(cfg.SessionTTL, cfg.CleanupPeriod),
		options:   options,
		now:       time.Now,
		doctors:   doctors,
		scheduler: cfg.Scheduler,
		logger:    log,
		metrics:   m,
	}
	s.sessions.OnEvicted(func(key string, v interface{}) {
		if sess, ok := v.(*Session); ok {
			sess.Dispose()
		}
		s.metrics.BookingSessionsActive.Dec()
		s.logger.Debug("booking session evicted", "session_id", key)
	})
	return s
}

// Subscribe registers a listener for confirmed bookings.
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Options returns the selectable dates, slots and modalities a session
// created now would offer.
func (s *Service) Options() model.BookingOptions {
	return s.options(s.now()).View()
}

// Create starts a new session with the booking form open. The session keeps
// the date window current at creation.
func (s *Service) Create(ctx context.Context) (model.SessionState, error) {
	id := uuid.New()
	sess := NewSession(id, s.options(s.now()), s.doctors, s.scheduler, s.hooks())
	if err := sess.Open(); err != nil {
		return model.SessionState{}, err
	}

	s.sessions.Set(id.String(), sess, cache.DefaultExpiration)
	s.metrics.BookingSessionsActive.Inc()
	s.logger.Info("booking session created", "session_id", id.String())

	return sess.State(), nil
}

// Get returns the session state and refreshes its expiry.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (model.SessionState, error) {
	sess, err := s.session(id)
	if err != nil {
		return model.SessionState{}, err
	}
	return sess.State(), nil
}

func (s *Service) Open(ctx context.Context, id uuid.UUID) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.Open() })
}

func (s *Service) Close(ctx context.Context, id uuid.UUID) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.Close() })
}

func (s *Service) SelectDoctor(ctx context.Context, id uuid.UUID, doctorID int) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.SelectDoctor(doctorID) })
}

func (s *Service) SelectDate(ctx context.Context, id uuid.UUID, token string) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.SelectDate(token) })
}

func (s *Service) SelectTime(ctx context.Context, id uuid.UUID, slot string) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.SelectTime(slot) })
}

func (s *Service) SetModality(ctx context.Context, id uuid.UUID, m model.Modality) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.SetModality(m) })
}

func (s *Service) SetNotes(ctx context.Context, id uuid.UUID, notes string) (model.SessionState, error) {
	return s.apply(id, func(sess *Session) error { return sess.SetNotes(notes) })
}

// Confirm submits the session's selection.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return sess.Confirm()
}

// Delete removes the session and cancels any pending reset.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.session(id); err != nil {
		return err
	}
	s.sessions.Delete(id.String())
	s.logger.Info("booking session deleted", "session_id", id.String())
	return nil
}

// Shutdown disposes every live session and waits for in-flight listeners.
func (s *Service) Shutdown(ctx context.Context) error {
	for key := range s.sessions.Items() {
		s.sessions.Delete(key)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) session(id uuid.UUID) (*Session, error) {
	v, ok := s.sessions.Get(id.String())
	if !ok {
		return nil, apperrors.NotFound("booking session", nil)
	}
	sess := v.(*Session)
	s.sessions.Replace(id.String(), sess, cache.DefaultExpiration)
	return sess, nil
}

func (s *Service) apply(id uuid.UUID, fn func(*Session) error) (model.SessionState, error) {
	sess, err := s.session(id)
	if err != nil {
		return model.SessionState{}, err
	}
	if err := fn(sess); err != nil {
		return sess.State(), err
	}
	return sess.State(), nil
}

func (s *Service) hooks() Hooks {
	return Hooks{
		OnTransition: func(id uuid.UUID, from, to model.BookingPhase) {
			s.metrics.BookingTransitions.WithLabelValues(string(from), string(to)).Inc()
			s.logger.Debug("booking phase changed",
				"session_id", id.String(),
				"from", string(from),
				"to", string(to))
		},
		OnValidationFailed: func(id uuid.UUID) {
			s.metrics.BookingValidationFailures.Inc()
			s.logger.Info("booking confirm rejected", "session_id", id.String())
		},
		OnConfirmed: s.dispatch,
	}
}

func (s *Service) dispatch(booking model.Booking) {
	s.logger.Info("booking confirmed",
		"booking_id", booking.ID.String(),
		"session_id", booking.SessionID.String(),
		"doctor_id", booking.DoctorID,
		"date", booking.Date,
		"time", booking.TimeSlot)

	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		s.wg.Add(1)
		go func(l Listener) {
			defer s.wg.Done()
			if err := l.BookingConfirmed(context.Background(), booking); err != nil {
				s.logger.Error(err, "booking listener failed", "booking_id", booking.ID.String())
			}
		}(l)
	}
}
