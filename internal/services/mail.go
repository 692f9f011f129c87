package services

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"bowenhooks/internal/config"
)

// MailService sends account emails over SMTP. Without SMTP_HOST set it
// degrades to logging the would-be email, which keeps local development
// and tests free of an external dependency.
type MailService struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewMailService(cfg *config.Config, logger *slog.Logger) *MailService {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP not configured, emails will only be logged")
	}
	return &MailService{cfg: cfg, logger: logger}
}

// SendVerificationEmail delivers the email verification link.
// Fire-and-forget: delivery failures are logged, never surfaced to the
// registration flow.
func (m *MailService) SendVerificationEmail(to, token string) {
	link := fmt.Sprintf("%s/api/v1/auth/verify/%s", m.cfg.AppBaseURL, token)
	subject := "Verify your Bowen Hooks account"
	body := fmt.Sprintf(
		"Welcome to Bowen Hooks!\r\n\r\n"+
			"Click the link below to verify your email address:\r\n%s\r\n\r\n"+
			"The link expires in 24 hours.\r\n", link)

	go m.send(to, subject, body)
}

// SendPasswordResetEmail delivers the password reset link.
func (m *MailService) SendPasswordResetEmail(to, token string) {
	link := fmt.Sprintf("%s/reset-password/%s", m.cfg.AppBaseURL, token)
	subject := "Reset your Bowen Hooks password"
	body := fmt.Sprintf(
		"We received a request to reset your password.\r\n\r\n"+
			"Click the link below to choose a new one:\r\n%s\r\n\r\n"+
			"The link expires in 1 hour. If you did not request this, ignore this email.\r\n", link)

	go m.send(to, subject, body)
}

func (m *MailService) send(to, subject, body string) {
	if m.cfg.SMTPHost == "" {
		m.logger.Info("email skipped (SMTP disabled)", "to", to, "subject", subject)
		return
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.SMTPFrom, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, m.cfg.SMTPUser, []string{to}, msg); err != nil {
		m.logger.Error("email delivery failed", "to", to, "subject", subject, "error", err)
		return
	}
	m.logger.Info("email sent", "to", to, "subject", subject)
}
