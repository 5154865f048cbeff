package mailing

import (
	"fmt"
	"strconv"

	"recipehub/internal/utils"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type (
	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	smtpMailer struct {
		config MailConfig
	}

	noopMailer struct{}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns an SMTP mailer, or one that drops every message when no
// SMTP host is configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		log.Info().Msg("SMTP_HOST not set, outgoing mail is disabled")
		return noopMailer{}
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP_PORT %q: %w", m.config.SMTPPort, err)
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (noopMailer) SendMail(string, string, string) error {
	return nil
}

func WelcomeBody(username, appURL string) string {
	body := fmt.Sprintf("<p>Hi %s,</p><p>Welcome aboard! Your account is ready and you can start sharing recipes.</p>", username)
	if appURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open the app</a></p>`, appURL)
	}
	return body
}
