package contact

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPSender relays messages through an SMTP server.
type SMTPSender struct {
	// Addr is host:port of the server.
	Addr string
	// From is the envelope sender and the From header when the form had no
	// usable address.
	From string
	Auth smtp.Auth
}

var sendMail = smtp.SendMail

// Send delivers m. The context is only checked before dialing.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sendMail(s.Addr, s.Auth, s.From, []string{m.To}, s.format(m))
}

func (s *SMTPSender) format(m Message) []byte {
	from := m.ReplyTo
	if from == "" {
		from = s.From
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	fmt.Fprintf(&b, "From: %s\r\n", from)
	if m.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", m.ReplyTo)
	}
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(strings.Replace(m.Body, "\n", "\r\n", -1))
	return b.Bytes()
}
