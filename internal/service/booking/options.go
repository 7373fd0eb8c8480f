package booking

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jwalitptl/care-api/internal/model"
)

// DefaultTimeSlots are the slots offered when none are configured.
var DefaultTimeSlots = []string{
	"09:00 AM", "10:00 AM", "11:00 AM", "02:00 PM", "03:00 PM", "04:00 PM",
}

const (
	DefaultResetDelay    = 3 * time.Second
	DefaultWindowDays    = 7
	DefaultDateOffset    = 2
	MaxNotesLength       = 1000
	DefaultSessionTTL    = 30 * time.Minute
	DefaultCleanupPeriod = 5 * time.Minute
)

// Options describes what a booking session offers and how it times out.
type Options struct {
	ResetDelay  time.Duration
	TimeSlots   []string
	Dates       []model.DateOption
	DefaultDate string
}

// NewOptions builds a date window of days consecutive days starting at start.
// The default date is the day at defaultOffset within the window.
func NewOptions(start time.Time, days, defaultOffset int, slots []string, resetDelay time.Duration) (*Options, error) {
	if days <= 0 {
		return nil, fmt.Errorf("window must have at least one day, got %d", days)
	}
	if defaultOffset < 0 || defaultOffset >= days {
		return nil, fmt.Errorf("default date offset %d outside window of %d days", defaultOffset, days)
	}
	if len(slots) == 0 {
		slots = DefaultTimeSlots
	}
	if resetDelay <= 0 {
		return nil, fmt.Errorf("reset delay must be positive, got %v", resetDelay)
	}

	dates := make([]model.DateOption, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		dates = append(dates, model.DateOption{
			Token:   strconv.Itoa(day.Day()),
			Weekday: day.Weekday().String()[:3],
			Date:    day.Format("2006-01-02"),
		})
	}

	timeSlots := make([]string, len(slots))
	copy(timeSlots, slots)

	return &Options{
		ResetDelay:  resetDelay,
		TimeSlots:   timeSlots,
		Dates:       dates,
		DefaultDate: dates[defaultOffset].Token,
	}, nil
}

// OptionsFunc returns the options offered to a session created at now.
type OptionsFunc func(now time.Time) *Options

// FixedOptions offers the same window regardless of the clock.
func FixedOptions(opts *Options) OptionsFunc {
	return func(time.Time) *Options { return opts }
}

// RollingOptions starts the window on the current day, so a long-running
// server never offers past dates. The parameters are checked once here.
func RollingOptions(days, defaultOffset int, slots []string, resetDelay time.Duration) (OptionsFunc, error) {
	if _, err := NewOptions(time.Now(), days, defaultOffset, slots, resetDelay); err != nil {
		return nil, err
	}
	return func(now time.Time) *Options {
		y, m, d := now.Date()
		opts, _ := NewOptions(time.Date(y, m, d, 0, 0, 0, 0, now.Location()), days, defaultOffset, slots, resetDelay)
		return opts
	}, nil
}

func (o *Options) hasDate(token string) bool {
	for _, d := range o.Dates {
		if d.Token == token {
			return true
		}
	}
	return false
}

func (o *Options) hasTimeSlot(slot string) bool {
	for _, s := range o.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// View returns the options as presented to clients.
func (o *Options) View() model.BookingOptions {
	return model.BookingOptions{
		Dates:       o.Dates,
		TimeSlots:   o.TimeSlots,
		Modalities:  []model.Modality{model.ModalityVideo, model.ModalityInPerson},
		DefaultDate: o.DefaultDate,
	}
}
