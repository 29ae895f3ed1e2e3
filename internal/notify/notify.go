package notify

import (
	"context"
	"log"
)

// Mailer defines the interface for sending plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender defines the interface for sending SMS messages.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// --- Log fallbacks ---

// LogMailer writes outgoing mail to the application log instead of sending.
// Used when no email backend is configured (local development, tests).
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("MAIL (log only) to=%s subject=%q\n%s", to, subject, body)
	return nil
}

// LogSMSSender writes outgoing SMS to the application log instead of sending.
type LogSMSSender struct{}

func (s *LogSMSSender) Send(ctx context.Context, phoneNumber, message string) error {
	log.Printf("SMS (log only) to=%s\n%s", phoneNumber, message)
	return nil
}
