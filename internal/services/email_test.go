package services

import (
	"context"
	"errors"
	"testing"

	"evalboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject: " + templateName, "<p>" + templateName + "</p>", templateName, nil
}

func TestEmailService_SendWelcome(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, fakeRenderer{})

	err := svc.SendWelcome(context.Background(), domain.WelcomeEmailData{Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ada@example.com", mailer.sent[0].to)
	assert.Equal(t, "subject: welcome", mailer.sent[0].subject)
	assert.Equal(t, "<p>welcome</p>", mailer.sent[0].html)
	assert.Equal(t, "welcome", mailer.sent[0].text)
}

func TestEmailService_SendWelcome_RenderError(t *testing.T) {
	mailer := &fakeMailer{}
	svc := NewEmailService(mailer, fakeRenderer{err: errors.New("missing template")})

	err := svc.SendWelcome(context.Background(), domain.WelcomeEmailData{Email: "ada@example.com"})
	require.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestEmailService_SendWelcome_MailerError(t *testing.T) {
	svc := NewEmailService(&fakeMailer{err: errors.New("ses throttled")}, fakeRenderer{})

	err := svc.SendWelcome(context.Background(), domain.WelcomeEmailData{Email: "ada@example.com"})
	require.Error(t, err)
}
