package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/auca/lostandfound-backend/config"
	"github.com/auca/lostandfound-backend/pkg/logger"
)

// Mailer delivers plain text mail. Callers treat delivery as
// fire-and-forget: a failed send is logged, never propagated.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer builds a Mailer backed by the configured SMTP relay.
// With no credentials it runs in dev mode and only logs outgoing mail.
func NewSMTPMailer(cfg *config.SMTPConfig) Mailer {
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	// Dev mode: no SMTP credentials, log the mail instead of sending
	if m.username == "" || m.password == "" {
		logger.Info("[DEV MODE] Mail not sent, logging instead", map[string]interface{}{
			"to":      to,
			"subject": subject,
			"body":    body,
		})
		return nil
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		m.from, to, subject, body,
	))

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, message); err != nil {
		logger.Error("Failed to send mail", err, map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return err
	}

	logger.Info("Mail sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}
