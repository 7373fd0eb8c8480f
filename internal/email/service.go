package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/care-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, booking model.Booking, doctor model.Doctor) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

// Dialer sends prepared messages. *gomail.Dialer satisfies it.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

type smtpService struct {
	dialer Dialer
	from   string
	to     string
}

func NewSMTPService(cfg Config) Service {
	return NewService(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, cfg.To)
}

func NewService(dialer Dialer, from, to string) Service {
	return &smtpService{dialer: dialer, from: from, to: to}
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`Your appointment is booked.

Doctor:   {{.Doctor.Name}} ({{.Doctor.Specialty.Label}})
Location: {{.Doctor.Location}}
Date:     {{.Booking.Date}}
Time:     {{.Booking.TimeSlot}}
Type:     {{.Booking.Modality}}
{{- if .Booking.Notes}}
Notes:    {{.Booking.Notes}}
{{- end}}

Reference: {{.Booking.ID}}
`))

func (s *smtpService) SendBookingConfirmation(ctx context.Context, booking model.Booking, doctor model.Doctor) error {
	var body bytes.Buffer
	err := confirmationTmpl.Execute(&body, struct {
		Booking model.Booking
		Doctor  model.Doctor
	}{booking, doctor})
	if err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	subject := fmt.Sprintf("Appointment confirmed with %s", doctor.Name)
	return s.SendCustom(ctx, s.to, subject, body.String())
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
