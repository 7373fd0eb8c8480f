package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingPhase is the lifecycle phase of a booking session.
type BookingPhase string

const (
	BookingPhaseIdle      BookingPhase = "idle"
	BookingPhaseSelecting BookingPhase = "selecting"
	BookingPhaseSubmitted BookingPhase = "submitted"
	BookingPhaseConfirmed BookingPhase = "confirmed"
)

// Modality is how the appointment takes place.
type Modality string

const (
	ModalityVideo    Modality = "video"
	ModalityInPerson Modality = "in-person"
)

func (m Modality) Valid() bool {
	return m == ModalityVideo || m == ModalityInPerson
}

// DateOption is one selectable day in the booking window.
type DateOption struct {
	Token   string `json:"token"`
	Weekday string `json:"weekday"`
	Date    string `json:"date"`
}

// BookingOptions describes what a session offers for selection.
type BookingOptions struct {
	Dates       []DateOption `json:"dates"`
	TimeSlots   []string     `json:"time_slots"`
	Modalities  []Modality   `json:"modalities"`
	DefaultDate string       `json:"default_date"`
}

// SessionState is a snapshot of a booking session.
type SessionState struct {
	ID          uuid.UUID    `json:"id"`
	Phase       BookingPhase `json:"phase"`
	DoctorID    *int         `json:"doctor_id,omitempty"`
	Date        string       `json:"date"`
	TimeSlot    string       `json:"time_slot"`
	Modality    Modality     `json:"modality"`
	Notes       string       `json:"notes"`
	LastBooking *Booking     `json:"last_booking,omitempty"`
}

// Booking is a confirmed appointment request.
type Booking struct {
	ID          uuid.UUID `json:"id"`
	SessionID   uuid.UUID `json:"session_id"`
	DoctorID    int       `json:"doctor_id"`
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Modality    Modality  `json:"modality"`
	Notes       string    `json:"notes,omitempty"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}
