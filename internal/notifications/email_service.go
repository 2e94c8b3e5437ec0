package notifications

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"time"

	"caterly/internal/shared/config"
	"caterly/pkg/logger"
)

// EmailService renders and delivers notification emails
type EmailService interface {
	SendEvent(ctx context.Context, event *Event) error
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func NewSMTPConfig(cfg config.EmailConfig) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  "Caterly",
		Timeout:   30 * time.Second,
	}
}

type smtpEmailService struct {
	config    *SMTPConfig
	templates map[EventType]*template.Template
}

func NewSMTPEmailService(config *SMTPConfig) (EmailService, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("SMTP port must be between 1 and 65535")
	}
	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	service := &smtpEmailService{
		config:    config,
		templates: make(map[EventType]*template.Template),
	}
	service.loadTemplates()
	return service, nil
}

func (s *smtpEmailService) SendEvent(ctx context.Context, event *Event) error {
	subject := subjectFor(event)
	body, err := s.renderBody(event)
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	if err := s.send(event.RecipientEmail, subject, body); err != nil {
		return err
	}

	logger.GetDefault().Info("notification email sent",
		"type", string(event.Type),
		"recipient", event.RecipientEmail,
	)
	return nil
}

func (s *smtpEmailService) send(to, subject, htmlBody string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.FromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (s *smtpEmailService) renderBody(event *Event) (string, error) {
	tmpl, ok := s.templates[event.Type]
	if !ok {
		tmpl = s.templates["default"]
	}

	data := map[string]interface{}{
		"Name":    event.RecipientName,
		"Payload": event.Payload,
	}
	for k, v := range event.Payload {
		data[k] = v
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func subjectFor(event *Event) string {
	switch event.Type {
	case EventBookingConfirmed:
		if title := event.PayloadString("event_title"); title != "" {
			return fmt.Sprintf("Booking confirmed: %s", title)
		}
		return "Your booking is confirmed"
	case EventBookingCancelled:
		if title := event.PayloadString("event_title"); title != "" {
			return fmt.Sprintf("Booking cancelled: %s", title)
		}
		return "Your booking has been cancelled"
	case EventTicketCreated:
		if ref := event.PayloadString("ticket_ref"); ref != "" {
			return fmt.Sprintf("We received your support request (%s)", ref)
		}
		return "We received your support request"
	case EventTicketResolved:
		if ref := event.PayloadString("ticket_ref"); ref != "" {
			return fmt.Sprintf("Your support request was resolved (%s)", ref)
		}
		return "Your support request was resolved"
	default:
		return "Notification from Caterly"
	}
}

func (s *smtpEmailService) loadTemplates() {
	s.templates[EventBookingConfirmed] = template.Must(template.New("booking_confirmed").Parse(`
<h2>Booking Confirmed</h2>
<p>Hi {{.Name}},</p>
<p>Your booking <strong>{{.booking_ref}}</strong> for {{.event_title}} on {{.event_date}} is confirmed.</p>
<p>Guests: {{.guest_count}}<br>
Total: {{.total_amount}}<br>
Deposit due: {{.deposit}}</p>
<p>Thank you for booking with Caterly.</p>`))

	s.templates[EventBookingCancelled] = template.Must(template.New("booking_cancelled").Parse(`
<h2>Booking Cancelled</h2>
<p>Hi {{.Name}},</p>
<p>Your booking <strong>{{.booking_ref}}</strong> for {{.event_title}} has been cancelled.</p>
<p>If this was a mistake, reply to this email or open a support ticket.</p>`))

	s.templates[EventTicketCreated] = template.Must(template.New("ticket_created").Parse(`
<h2>Support Request Received</h2>
<p>Hi {{.Name}},</p>
<p>We received your request <strong>{{.ticket_ref}}</strong>: {{.subject}}.</p>
<p>Our team will get back to you shortly.</p>`))

	s.templates[EventTicketResolved] = template.Must(template.New("ticket_resolved").Parse(`
<h2>Support Request Resolved</h2>
<p>Hi {{.Name}},</p>
<p>Your request <strong>{{.ticket_ref}}</strong> has been resolved:</p>
<blockquote>{{.resolution}}</blockquote>`))

	s.templates["default"] = template.Must(template.New("default").Parse(`
<p>Hi {{.Name}},</p>
<p>You have a new notification from Caterly.</p>`))
}
