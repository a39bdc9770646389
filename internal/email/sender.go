package email

import (
	"fmt"
	"sync"

	"gopkg.in/gomail.v2"

	"contacts_backend/internal/config"
)

// Sender delivers account emails. Implementations must be safe for
// concurrent use.
type Sender interface {
	SendVerification(to, username, verifyURL string) error
	SendPasswordReset(to, username, resetURL string) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	cfg       *config.Config
	templates *TemplateSet
}

func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	templates, err := NewTemplateSet()
	if err != nil {
		return nil, fmt.Errorf("email templates: %w", err)
	}
	return &SMTPSender{cfg: cfg, templates: templates}, nil
}

func (s *SMTPSender) SendVerification(to, username, verifyURL string) error {
	body, err := s.templates.Render(templateVerification, templateData{
		Username: username,
		Link:     verifyURL,
	})
	if err != nil {
		return err
	}
	return s.send(to, "Confirm your email", body)
}

func (s *SMTPSender) SendPasswordReset(to, username, resetURL string) error {
	body, err := s.templates.Render(templateReset, templateData{
		Username: username,
		Link:     resetURL,
	})
	if err != nil {
		return err
	}
	return s.send(to, "Reset your password", body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// MockSender records outgoing mail for tests. Safe for parallel tests.
type MockSender struct {
	mu            sync.Mutex
	verifications []MockMessage
	resets        []MockMessage
	Err           error
}

type MockMessage struct {
	To       string
	Username string
	Link     string
}

func (m *MockSender) SendVerification(to, username, verifyURL string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verifications = append(m.verifications, MockMessage{To: to, Username: username, Link: verifyURL})
	return nil
}

func (m *MockSender) SendPasswordReset(to, username, resetURL string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets = append(m.resets, MockMessage{To: to, Username: username, Link: resetURL})
	return nil
}

// LastVerificationFor returns the most recent verification message
// sent to the address.
func (m *MockSender) LastVerificationFor(to string) (MockMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.verifications) - 1; i >= 0; i-- {
		if m.verifications[i].To == to {
			return m.verifications[i], true
		}
	}
	return MockMessage{}, false
}

// LastResetFor returns the most recent password reset message sent to
// the address.
func (m *MockSender) LastResetFor(to string) (MockMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.resets) - 1; i >= 0; i-- {
		if m.resets[i].To == to {
			return m.resets[i], true
		}
	}
	return MockMessage{}, false
}
