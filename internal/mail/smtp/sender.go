package smtp

import (
	"context"

	"gopkg.in/gomail.v2"

	"github.com/KarimovMurodilla/lead-management-system/internal/mail"
)

// Sender delivers mail over SMTP via gomail.
type Sender struct {
	host     string
	port     int
	user     string
	password string
}

// NewSender constructs an SMTP sender.
func NewSender(host string, port int, user, password string) *Sender {
	return &Sender{host: host, port: port, user: user, password: password}
}

// Send dials the SMTP server and submits the message.
func (s *Sender) Send(ctx context.Context, msg mail.Message) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", msg.FromEmail, msg.FromName)
	m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	d := gomail.NewDialer(s.host, s.port, s.user, s.password)
	if err := d.DialAndSend(m); err != nil {
		return false, err
	}
	return true, nil
}
