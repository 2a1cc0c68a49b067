package domain

import "context"

// Mailer delivers a rendered email. Implementations may be SES-backed or no-op.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// WelcomeEmailData carries the fields the welcome templates interpolate.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// EmailTemplateRenderer renders a named email template into its subject,
// HTML body, and plain-text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EmailService sends transactional emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data WelcomeEmailData) error
}
