package mailer

import (
	"context"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer delivers notices over SMTP. It implements the engine's
// Notifier: any failure is logged and reported as false, nothing
// escapes past this boundary.
type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
	log  *slog.Logger
}

func New(host string, port int, user, pass, from string, log *slog.Logger) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from, log: log}
}

func (m *Mailer) Send(ctx context.Context, recipient, subject, body string) bool {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		m.log.Error("bad sender address", "from", m.from, "err", err)
		return false
	}
	if err := msg.To(recipient); err != nil {
		m.log.Error("bad recipient address", "recipient", recipient, "err", err)
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.pass),
	)
	if err != nil {
		m.log.Error("smtp client init failed", "err", err)
		return false
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		m.log.Error("email send failed", "recipient", recipient, "err", err)
		return false
	}
	m.log.Debug("email sent", "recipient", recipient, "subject", subject)
	return true
}
