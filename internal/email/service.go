package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/mindwell/clinic-scheduler/internal/config"
	"github.com/mindwell/clinic-scheduler/internal/model"
)

// Service sends patient-facing appointment notifications.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, appt *model.Appointment) error
	SendCancellation(ctx context.Context, to string, appt *model.Appointment) error
	SendRescheduleNotice(ctx context.Context, to string, appt *model.Appointment) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to string, appt *model.Appointment) error {
	subject := "Your appointment is booked"
	body := fmt.Sprintf("Your %s session is scheduled for %s.", appt.SessionType, appt.StartTime.Format("Monday 2 January 2006, 15:04 MST"))
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendCancellation(ctx context.Context, to string, appt *model.Appointment) error {
	subject := "Your appointment was cancelled"
	body := fmt.Sprintf("Your session on %s has been cancelled.", appt.StartTime.Format("Monday 2 January 2006, 15:04 MST"))
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) SendRescheduleNotice(ctx context.Context, to string, appt *model.Appointment) error {
	subject := "Your appointment was rescheduled"
	body := fmt.Sprintf("Your session has moved to %s.", appt.StartTime.Format("Monday 2 January 2006, 15:04 MST"))
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
