// Package mail sends the rendered reminder over authenticated SMTP.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// ErrSend marks authentication or transport failures. There is one attempt
// per run; no retry, no queue.
var ErrSend = errors.New("mail: send failed")

const (
	gmailHost = "smtp.gmail.com"
	gmailPort = 465
)

// Message is a single HTML email.
type Message struct {
	From    string
	To      []string
	Cc      []string
	Bcc     []string
	Subject string
	HTML    string
}

// Recipients returns every address the message is delivered to. Bcc
// addresses appear here but not in the headers.
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.Cc)+len(m.Bcc))
	out = append(out, m.To...)
	out = append(out, m.Cc...)
	out = append(out, m.Bcc...)
	return out
}

// Encode produces the RFC 5322 wire form: headers plus a quoted-printable
// HTML body.
func (m Message) Encode() ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(m.To, ", "))
	if len(m.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(m.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	b.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&b)
	if _, err := qp.Write([]byte(m.HTML)); err != nil {
		return nil, fmt.Errorf("%w: encode body: %v", ErrSend, err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("%w: encode body: %v", ErrSend, err)
	}
	return []byte(b.String()), nil
}

// Sender delivers a prepared message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends over SMTP with implicit TLS, the way Gmail's port 465
// expects.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
}

var _ Sender = (*SMTPSender)(nil)

// NewGmailSender builds a sender for Gmail's TLS endpoint using an app
// password.
func NewGmailSender(username, appPassword string) *SMTPSender {
	return &SMTPSender{
		Host:     gmailHost,
		Port:     gmailPort,
		Username: username,
		Password: appPassword,
	}
}

// Send connects, authenticates and transmits the message once.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	payload, err := msg.Encode()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: 30 * time.Second},
		Config:    &tls.Config{ServerName: s.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSend, addr, err)
	}

	client, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", ErrSend, err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("%w: authentication: %v", ErrSend, err)
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("%w: MAIL FROM: %v", ErrSend, err)
	}
	for _, rcpt := range msg.Recipients() {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("%w: RCPT TO %s: %v", ErrSend, rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: DATA: %v", ErrSend, err)
	}
	if _, err := w.Write(payload); err != nil {
		w.Close()
		return fmt.Errorf("%w: write body: %v", ErrSend, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrSend, err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("%w: QUIT: %v", ErrSend, err)
	}
	return nil
}
