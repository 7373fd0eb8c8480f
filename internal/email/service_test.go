package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/care-api/internal/model"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSendBookingConfirmation(t *testing.T) {
	dialer := &fakeDialer{}
	svc := NewService(dialer, "clinic@example.com", "patient@example.com")

	booking := model.Booking{
		ID:       uuid.New(),
		DoctorID: 5,
		Date:     "8",
		TimeSlot: "02:00 PM",
		Modality: model.ModalityInPerson,
		Notes:    "bring vaccination card",
	}
	doctor := model.Doctor{ID: 5, Name: "Dr. Emily Rodriguez", Specialty: model.SpecialtyPediatrics, Location: "New York, USA"}

	require.NoError(t, svc.SendBookingConfirmation(context.Background(), booking, doctor))
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"clinic@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"Appointment confirmed with Dr. Emily Rodriguez"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	body := buf.String()
	assert.Contains(t, body, "Pediatrics")
	assert.Contains(t, body, "02:00 PM")
	assert.Contains(t, body, "bring vaccination card")
	assert.Contains(t, body, booking.ID.String())
}

func TestSendCustomErrors(t *testing.T) {
	svc := NewService(&fakeDialer{err: errors.New("connection refused")}, "a@example.com", "b@example.com")
	assert.Error(t, svc.SendCustom(context.Background(), "b@example.com", "hi", "body"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ok := &fakeDialer{}
	assert.ErrorIs(t, NewService(ok, "a@example.com", "b@example.com").SendCustom(ctx, "b@example.com", "hi", "body"), context.Canceled)
	assert.Empty(t, ok.sent)
}
