package worker

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/seminarhub/backend/config"
)

// ErrNotConfigured means no SMTP host is set; deliveries are skipped.
var ErrNotConfigured = errors.New("smtp not configured")

// Sender delivers mail over SMTP.
type Sender struct {
	cfg config.SMTPConfig
}

// NewSender creates an SMTP sender.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers one plain-text message. Returns ErrNotConfigured when the
// sender is nil or no SMTP host is set.
func (s *Sender) Send(to, subject, body string) error {
	if s == nil || s.cfg.Host == "" {
		return ErrNotConfigured
	}
	from := s.cfg.FromAddress
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.cfg.FromName, from, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
