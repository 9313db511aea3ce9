package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Service defines the interface for email operations
type Service interface {
	SendWelcomeEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// ServiceImpl implements Service over plain SMTP
type ServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new email Service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &ServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendWelcomeEmail sends a registration confirmation to a newly enrolled
// student. When SMTP credentials are not configured the message is logged
// instead of sent.
func (s *ServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to the program"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour registration is complete. We will reach out shortly to schedule your first session.\r\n",
		toName,
	)

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Info().
			Str("to", toEmail).
			Str("subject", subject).
			Msg("SMTP not configured, logging welcome email instead")
		return nil
	}

	msg := []byte(
		"From: " + s.config.FromName + " <" + s.config.FromEmail + ">\r\n" +
			"To: " + toEmail + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
			body,
	)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	s.logger.Info().Str("to", toEmail).Msg("Welcome email sent")
	return nil
}
