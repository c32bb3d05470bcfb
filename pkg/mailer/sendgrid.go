package mailer

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/campushq/faculty-api/pkg/config"
)

// SendgridMailer delivers generated credentials to newly provisioned faculty
// accounts. Delivery is best-effort: callers fall back to returning the
// credential inline when this reports false.
type SendgridMailer struct {
	key    string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendgrid constructs a mailer from process configuration.
func NewSendgrid(cfg config.MailConfig, logger *zap.Logger) *SendgridMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SendgridMailer{
		key:    cfg.SendgridAPIKey,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}
}

// SendCredential mails login credentials to a faculty member and reports
// whether delivery was accepted.
func (m *SendgridMailer) SendCredential(toEmail, name, credential string) bool {
	if m.key == "" {
		m.logger.Warn("sendgrid api key not configured, credential mail skipped")
		return false
	}

	subject := "Your Faculty Portal Login Credentials"
	to := sgmail.NewEmail(name, toEmail)
	text := fmt.Sprintf(
		"Dear %s,\n\nYour Faculty Portal account has been created successfully.\n\nLogin Credentials:\nEmail: %s\nPassword: %s\n\nPlease change your password after first login for security purposes.\n\nThis is an automated message. Please do not reply.\n",
		name, toEmail, credential,
	)
	html := fmt.Sprintf(
		"<p>Dear <strong>%s</strong>,</p><p>Your account has been created successfully. Please use the following credentials to login:</p><p>Email: <code>%s</code><br>Password: <code>%s</code></p><p>Please change your password after first login for security purposes.</p><p>This is an automated message. Please do not reply to this email.</p>",
		name, toEmail, credential,
	)

	message := sgmail.NewSingleEmail(m.from, subject, to, text, html)
	res, err := sendgrid.NewSendClient(m.key).Send(message)
	if err != nil {
		m.logger.Error("sending credential mail", zap.Error(err))
		return false
	}
	if res.StatusCode >= http.StatusBadRequest {
		m.logger.Error("sending credential mail", zap.Int("status", res.StatusCode), zap.String("body", res.Body))
		return false
	}

	m.logger.Info("credential mail sent", zap.String("to", toEmail))
	return true
}
