package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends operational notification mail (inventory auto-order alerts).
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

// NewMailerFromEnv builds a Mailer from SMTP_* environment variables.
// Returns nil when SMTP_HOST is unset; callers treat a nil Mailer as
// notifications disabled.
func NewMailerFromEnv() *Mailer {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return nil
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Invalid SMTP_PORT value, mail notifications disabled: %v", err)
		return nil
	}

	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	alertTo := os.Getenv("ALERT_EMAIL")
	if alertTo == "" {
		alertTo = smtpUser
	}

	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass),
		from:   smtpUser,
		to:     alertTo,
	}
}

// Send delivers a plain text message to the configured alert address.
func (m *Mailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
