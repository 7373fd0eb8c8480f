package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

var (
	// ErrMissingSelection is returned by Confirm when the doctor or time slot is unset.
	ErrMissingSelection = apperrors.NewValidation("please select a doctor and time slot")
	// ErrNotSelecting is returned by actions that need an open booking form.
	ErrNotSelecting = apperrors.NewConflict("booking session is not open for selection")
	// ErrDisposed is returned once the session has been torn down.
	ErrDisposed = apperrors.NewConflict("booking session has been closed")
)

// DoctorLookup resolves doctor ids against the catalog.
type DoctorLookup interface {
	Get(id int) (model.Doctor, bool)
}

// Hooks observe a session. They run while the session lock is held, except
// OnConfirmed, which runs after it is released.
type Hooks struct {
	OnTransition       func(id uuid.UUID, from, to model.BookingPhase)
	OnValidationFailed func(id uuid.UUID)
	OnConfirmed        func(booking model.Booking)
}

// Session is the workflow state of a single appointment booking attempt.
//
// idle -> selecting -> submitted -> confirmed -> idle. The last step fires
// from a scheduled reset; re-opening or disposing the session cancels it.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	opts      *Options
	doctors   DoctorLookup
	scheduler Scheduler
	hooks     Hooks
	now       func() time.Time

	phase    model.BookingPhase
	doctorID *int
	date     string
	timeSlot string
	modality model.Modality
	notes    string

	lastBooking *model.Booking
	resetTimer  Timer
	generation  uint64
	disposed    bool
}

// NewSession creates an idle session.
func NewSession(id uuid.UUID, opts *Options, doctors DoctorLookup, scheduler Scheduler, hooks Hooks) *Session {
	if scheduler == nil {
		scheduler = RealScheduler()
	}
	s := &Session{
		id:        id,
		opts:      opts,
		doctors:   doctors,
		scheduler: scheduler,
		hooks:     hooks,
		now:       time.Now,
		phase:     model.BookingPhaseIdle,
	}
	s.clearSelection()
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Open shows the booking form. Opening a confirmed session cancels its
// pending reset and starts a fresh selection.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}

	switch s.phase {
	case model.BookingPhaseSelecting:
		return nil
	case model.BookingPhaseConfirmed:
		s.cancelReset()
		s.clearSelection()
	}
	s.transition(model.BookingPhaseSelecting)
	return nil
}

// Close dismisses the booking form and drops the in-progress selection.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}

	switch s.phase {
	case model.BookingPhaseIdle:
		return nil
	case model.BookingPhaseSelecting:
		s.clearSelection()
		s.transition(model.BookingPhaseIdle)
		return nil
	}
	return ErrNotSelecting
}

func (s *Session) SelectDoctor(id int) error {
	if _, ok := s.doctors.Get(id); !ok {
		return apperrors.NewValidation("selected doctor does not exist")
	}
	return s.update(func() {
		s.doctorID = &id
	})
}

func (s *Session) SelectDate(token string) error {
	if !s.opts.hasDate(token) {
		return apperrors.NewValidation("selected date is outside the booking window")
	}
	return s.update(func() {
		s.date = token
	})
}

func (s *Session) SelectTime(slot string) error {
	if !s.opts.hasTimeSlot(slot) {
		return apperrors.NewValidation("selected time slot is not offered")
	}
	return s.update(func() {
		s.timeSlot = slot
	})
}

func (s *Session) SetModality(m model.Modality) error {
	if !m.Valid() {
		return apperrors.NewValidation("appointment type must be video or in-person")
	}
	return s.update(func() {
		s.modality = m
	})
}

func (s *Session) SetNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return apperrors.NewValidation("notes are too long")
	}
	return s.update(func() {
		s.notes = notes
	})
}

// Confirm submits the selection. Without a doctor and a time slot it fails
// with ErrMissingSelection and the session stays in selecting.
func (s *Session) Confirm() (*model.Booking, error) {
	s.mu.Lock()

	if s.disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	if s.phase != model.BookingPhaseSelecting {
		s.mu.Unlock()
		return nil, ErrNotSelecting
	}
	if s.doctorID == nil || s.timeSlot == "" {
		if s.hooks.OnValidationFailed != nil {
			s.hooks.OnValidationFailed(s.id)
		}
		s.mu.Unlock()
		return nil, ErrMissingSelection
	}

	s.transition(model.BookingPhaseSubmitted)
	booking := model.Booking{
		ID:          uuid.New(),
		SessionID:   s.id,
		DoctorID:    *s.doctorID,
		Date:        s.date,
		TimeSlot:    s.timeSlot,
		Modality:    s.modality,
		Notes:       s.notes,
		ConfirmedAt: s.now(),
	}
	s.lastBooking = &booking
	s.transition(model.BookingPhaseConfirmed)
	s.scheduleReset()
	s.mu.Unlock()

	if s.hooks.OnConfirmed != nil {
		s.hooks.OnConfirmed(booking)
	}
	return &booking, nil
}

// Dispose tears the session down. A pending reset is cancelled and any
// callback already in flight becomes a no-op.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.cancelReset()
	s.disposed = true
}

// State returns a snapshot of the session.
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := model.SessionState{
		ID:       s.id,
		Phase:    s.phase,
		Date:     s.date,
		TimeSlot: s.timeSlot,
		Modality: s.modality,
		Notes:    s.notes,
	}
	if s.doctorID != nil {
		id := *s.doctorID
		state.DoctorID = &id
	}
	if s.lastBooking != nil {
		b := *s.lastBooking
		state.LastBooking = &b
	}
	return state
}

func (s *Session) Phase() model.BookingPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) update(set func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	if s.phase != model.BookingPhaseSelecting {
		return ErrNotSelecting
	}
	set()
	return nil
}

// scheduleReset must be called with s.mu held.
func (s *Session) scheduleReset() {
	s.cancelReset()
	gen := s.generation
	s.resetTimer = s.scheduler.AfterFunc(s.opts.ResetDelay, func() {
		s.autoReset(gen)
	})
}

// cancelReset must be called with s.mu held. Bumping the generation
// invalidates a callback that already fired but has not taken the lock.
func (s *Session) cancelReset() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
	s.generation++
}

func (s *Session) autoReset(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed || gen != s.generation || s.phase != model.BookingPhaseConfirmed {
		return
	}
	s.resetTimer = nil
	s.clearSelection()
	s.transition(model.BookingPhaseIdle)
}

func (s *Session) clearSelection() {
	s.doctorID = nil
	s.date = s.opts.DefaultDate
	s.timeSlot = ""
	s.modality = model.ModalityVideo
	s.notes = ""
}

func (s *Session) transition(to model.BookingPhase) {
	from := s.phase
	s.phase = to
	if s.hooks.OnTransition != nil {
		s.hooks.OnTransition(s.id, from, to)
	}
}
