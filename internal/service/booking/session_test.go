package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/care-api/internal/catalog"
	"github.com/jwalitptl/care-api/internal/model"
	apperrors "github.com/jwalitptl/care-api/pkg/errors"
)

type fakeTimer struct {
	s       *fakeScheduler
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler only runs callbacks when the test fires them.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{s: s, d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that is still pending.
func (s *fakeScheduler) fireAll() int {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

// fireStale runs a timer's callback even if it was stopped, as if it had
// fired just before Stop was called.
func (s *fakeScheduler) fireStale(i int) {
	s.mu.Lock()
	t := s.timers[i]
	s.mu.Unlock()
	t.f()
}

func (s *fakeScheduler) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

var windowStart = time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC)

func testOptions(t *testing.T) *Options {
	t.Helper()
	opts, err := NewOptions(windowStart, DefaultWindowDays, DefaultDateOffset, nil, DefaultResetDelay)
	require.NoError(t, err)
	return opts
}

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore(catalog.SampleDoctors())
	require.NoError(t, err)
	return store
}

type recorder struct {
	mu          sync.Mutex
	transitions [][2]model.BookingPhase
	rejected    int
	confirmed   []model.Booking
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnTransition: func(_ uuid.UUID, from, to model.BookingPhase) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.transitions = append(r.transitions, [2]model.BookingPhase{from, to})
		},
		OnValidationFailed: func(uuid.UUID) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.rejected++
		},
		OnConfirmed: func(b model.Booking) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.confirmed = append(r.confirmed, b)
		},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeScheduler, *recorder) {
	t.Helper()
	sched := &fakeScheduler{}
	rec := &recorder{}
	return NewSession(uuid.New(), testOptions(t), testStore(t), sched, rec.hooks()), sched, rec
}

func TestNewOptions(t *testing.T) {
	opts := testOptions(t)

	require.Len(t, opts.Dates, 7)
	assert.Equal(t, "6", opts.Dates[0].Token)
	assert.Equal(t, "Fri", opts.Dates[0].Weekday)
	assert.Equal(t, "2025-06-06", opts.Dates[0].Date)
	assert.Equal(t, "12", opts.Dates[6].Token)
	assert.Equal(t, "8", opts.DefaultDate)
	assert.Equal(t, DefaultTimeSlots, opts.TimeSlots)

	_, err := NewOptions(windowStart, 0, 0, nil, DefaultResetDelay)
	assert.Error(t, err)
	_, err = NewOptions(windowStart, 7, 7, nil, DefaultResetDelay)
	assert.Error(t, err)
	_, err = NewOptions(windowStart, 7, 2, nil, 0)
	assert.Error(t, err)
}

func TestSessionInitialState(t *testing.T) {
	sess, _, _ := newTestSession(t)
	st := sess.State()

	assert.Equal(t, model.BookingPhaseIdle, st.Phase)
	assert.Nil(t, st.DoctorID)
	assert.Equal(t, "8", st.Date)
	assert.Empty(t, st.TimeSlot)
	assert.Equal(t, model.ModalityVideo, st.Modality)
	assert.Nil(t, st.LastBooking)
}

func TestConfirmGuard(t *testing.T) {
	tests := []struct {
		name   string
		doctor int
		slot   string
	}{
		{name: "nothing selected"},
		{name: "doctor only", doctor: 1},
		{name: "time only", slot: "10:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, sched, rec := newTestSession(t)
			require.NoError(t, sess.Open())
			if tt.doctor != 0 {
				require.NoError(t, sess.SelectDoctor(tt.doctor))
			}
			if tt.slot != "" {
				require.NoError(t, sess.SelectTime(tt.slot))
			}

			booking, err := sess.Confirm()
			assert.Nil(t, booking)
			assert.ErrorIs(t, err, ErrMissingSelection)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, model.BookingPhaseSelecting, sess.Phase())
			assert.Equal(t, 1, rec.rejected)
			assert.Empty(t, rec.confirmed)
			assert.Zero(t, sched.pending())
		})
	}
}

func TestConfirmAndAutoReset(t *testing.T) {
	sess, sched, rec := newTestSession(t)
	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(2))
	require.NoError(t, sess.SelectDate("10"))
	require.NoError(t, sess.SelectTime("10:00 AM"))
	require.NoError(t, sess.SetModality(model.ModalityInPerson))
	require.NoError(t, sess.SetNotes("rash on left arm"))

	booking, err := sess.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 2, booking.DoctorID)
	assert.Equal(t, "10", booking.Date)
	assert.Equal(t, "10:00 AM", booking.TimeSlot)
	assert.Equal(t, model.ModalityInPerson, booking.Modality)
	assert.Equal(t, "rash on left arm", booking.Notes)
	assert.Equal(t, sess.ID(), booking.SessionID)

	st := sess.State()
	assert.Equal(t, model.BookingPhaseConfirmed, st.Phase)
	require.NotNil(t, st.LastBooking)
	assert.Equal(t, booking.ID, st.LastBooking.ID)
	require.Len(t, rec.confirmed, 1)
	assert.Equal(t, booking.ID, rec.confirmed[0].ID)

	require.Len(t, sched.timers, 1)
	assert.Equal(t, DefaultResetDelay, sched.timers[0].d)

	assert.Equal(t, 1, sched.fireAll())

	st = sess.State()
	assert.Equal(t, model.BookingPhaseIdle, st.Phase)
	assert.Nil(t, st.DoctorID)
	assert.Empty(t, st.TimeSlot)
	assert.Empty(t, st.Notes)
	assert.Equal(t, "8", st.Date)
	assert.Equal(t, model.ModalityVideo, st.Modality)
	require.NotNil(t, st.LastBooking)

	assert.Equal(t, [][2]model.BookingPhase{
		{model.BookingPhaseIdle, model.BookingPhaseSelecting},
		{model.BookingPhaseSelecting, model.BookingPhaseSubmitted},
		{model.BookingPhaseSubmitted, model.BookingPhaseConfirmed},
		{model.BookingPhaseConfirmed, model.BookingPhaseIdle},
	}, rec.transitions)
}

func TestReopenCancelsReset(t *testing.T) {
	sess, sched, _ := newTestSession(t)
	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(1))
	require.NoError(t, sess.SelectTime("09:00 AM"))
	_, err := sess.Confirm()
	require.NoError(t, err)

	require.NoError(t, sess.Open())
	assert.Zero(t, sched.pending())

	st := sess.State()
	assert.Equal(t, model.BookingPhaseSelecting, st.Phase)
	assert.Nil(t, st.DoctorID)
	assert.Empty(t, st.TimeSlot)

	// A callback that raced with Open must not clear the new selection.
	require.NoError(t, sess.SelectDoctor(3))
	sched.fireStale(0)
	st = sess.State()
	assert.Equal(t, model.BookingPhaseSelecting, st.Phase)
	require.NotNil(t, st.DoctorID)
	assert.Equal(t, 3, *st.DoctorID)
}

func TestDisposeDiscardsPendingReset(t *testing.T) {
	sess, sched, rec := newTestSession(t)
	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(1))
	require.NoError(t, sess.SelectTime("09:00 AM"))
	_, err := sess.Confirm()
	require.NoError(t, err)

	sess.Dispose()
	assert.Zero(t, sched.pending())

	sched.fireStale(0)
	assert.Equal(t, model.BookingPhaseConfirmed, sess.Phase())
	assert.Len(t, rec.transitions, 3)

	assert.ErrorIs(t, sess.Open(), ErrDisposed)
	assert.ErrorIs(t, sess.SelectTime("09:00 AM"), ErrDisposed)
	_, err = sess.Confirm()
	assert.ErrorIs(t, err, ErrDisposed)

	// second dispose is a no-op
	sess.Dispose()
}

func TestSettersRequireSelecting(t *testing.T) {
	sess, _, _ := newTestSession(t)

	assert.ErrorIs(t, sess.SelectDoctor(1), ErrNotSelecting)
	assert.ErrorIs(t, sess.SelectTime("09:00 AM"), ErrNotSelecting)
	_, err := sess.Confirm()
	assert.ErrorIs(t, err, ErrNotSelecting)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrConflict))
}

func TestSetterValidation(t *testing.T) {
	sess, _, _ := newTestSession(t)
	require.NoError(t, sess.Open())

	assert.True(t, apperrors.IsValidation(sess.SelectDoctor(99)))
	assert.True(t, apperrors.IsValidation(sess.SelectDate("13")))
	assert.True(t, apperrors.IsValidation(sess.SelectTime("05:00 PM")))
	assert.True(t, apperrors.IsValidation(sess.SetModality("phone")))

	long := make([]byte, MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.True(t, apperrors.IsValidation(sess.SetNotes(string(long))))
	assert.NoError(t, sess.SetNotes(string(long[:MaxNotesLength])))

	st := sess.State()
	assert.Nil(t, st.DoctorID)
	assert.Equal(t, "8", st.Date)
	assert.Empty(t, st.TimeSlot)
}

func TestClose(t *testing.T) {
	sess, sched, _ := newTestSession(t)

	assert.NoError(t, sess.Close())
	assert.Equal(t, model.BookingPhaseIdle, sess.Phase())

	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(4))
	require.NoError(t, sess.Close())
	st := sess.State()
	assert.Equal(t, model.BookingPhaseIdle, st.Phase)
	assert.Nil(t, st.DoctorID)

	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(4))
	require.NoError(t, sess.SelectTime("03:00 PM"))
	_, err := sess.Confirm()
	require.NoError(t, err)
	assert.ErrorIs(t, sess.Close(), ErrNotSelecting)
	assert.Equal(t, 1, sched.pending())
}

func TestOpenIsIdempotentWhileSelecting(t *testing.T) {
	sess, _, rec := newTestSession(t)
	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(5))
	require.NoError(t, sess.Open())

	st := sess.State()
	require.NotNil(t, st.DoctorID)
	assert.Equal(t, 5, *st.DoctorID)
	assert.Len(t, rec.transitions, 1)
}

func TestRealSchedulerResets(t *testing.T) {
	opts, err := NewOptions(windowStart, DefaultWindowDays, DefaultDateOffset, nil, 10*time.Millisecond)
	require.NoError(t, err)
	sess := NewSession(uuid.New(), opts, testStore(t), nil, Hooks{})

	require.NoError(t, sess.Open())
	require.NoError(t, sess.SelectDoctor(1))
	require.NoError(t, sess.SelectTime("09:00 AM"))
	_, err = sess.Confirm()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return sess.Phase() == model.BookingPhaseIdle
	}, time.Second, 5*time.Millisecond)
}
