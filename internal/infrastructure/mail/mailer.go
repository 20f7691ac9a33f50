package mail

import (
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"
	"linkpage.backend/internal/config"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. The SMTP implementation is used in production,
// tests swap in a recording double.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer sends mail over SMTP using go-mail.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer validates the config and builds an SMTP mailer
func NewSMTPMailer(cfg config.MailConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// Send delivers one message synchronously
func (m *SMTPMailer) Send(msg Message) error {
	mail := gomail.NewMsg()

	if m.cfg.FromName != "" {
		if err := mail.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := mail.From(m.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := mail.To(msg.To); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	mail.Subject(msg.Subject)
	mail.SetBodyString(gomail.TypeTextPlain, msg.Body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
	}

	if m.cfg.TLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
		// port 465 speaks implicit TLS, everything else STARTTLS
		if m.cfg.Port == 465 {
			opts = append(opts, gomail.WithSSL())
		}
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	if m.cfg.Username != "" && m.cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(mail); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

// BuildVerificationMessage renders the email-verification mail. The link
// points at the frontend, which relays the token to the API.
func BuildVerificationMessage(baseURL, to, token string) Message {
	link := fmt.Sprintf("%s/verify-email?token=%s", strings.TrimSuffix(baseURL, "/"), token)
	return Message{
		To:      to,
		Subject: "Verify your email address",
		Body: fmt.Sprintf(
			"Welcome!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours. If you did not create an account, you can ignore this email.\n",
			link,
		),
	}
}

// BuildPasswordResetMessage renders the password-reset mail
func BuildPasswordResetMessage(baseURL, to, token string) Message {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimSuffix(baseURL, "/"), token)
	return Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"We received a request to reset your password.\n\nOpen the link below to choose a new one:\n\n%s\n\nThe link expires in 1 hour. If you did not request a reset, you can ignore this email.\n",
			link,
		),
	}
}
