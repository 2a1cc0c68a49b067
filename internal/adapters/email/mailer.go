package email

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"evalboard/internal/domain"
)

// SESConfig holds the AWS SES credentials and region.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// MailerConfig selects and configures a mail provider.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// NewMailer creates a mailer for the configured provider. "ses" sends through
// AWS SES; anything else logs and discards.
func NewMailer(cfg MailerConfig) (domain.Mailer, error) {
	switch cfg.Provider {
	case "ses":
		return newSESMailer(cfg), nil
	case "noop":
		return &noopMailer{}, nil
	default:
		log.Printf("mailer: unknown provider %q, falling back to noop", cfg.Provider)
		return &noopMailer{}, nil
	}
}

type sesMailer struct {
	client *ses.Client
	sender string
}

func newSESMailer(cfg MailerConfig) *sesMailer {
	awsCfg := aws.Config{
		Region: cfg.SES.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.SES.AccessKeyID, cfg.SES.SecretAccessKey, ""),
		),
	}
	sender := cfg.FromAddress
	if cfg.FromName != "" {
		sender = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromAddress)
	}
	return &sesMailer{
		client: ses.NewFromConfig(awsCfg),
		sender: sender,
	}
}

func (m *sesMailer) Send(to, subject, html, text string) error {
	input := &ses.SendEmailInput{
		Source:      aws.String(m.sender),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: sesContent(subject),
			Body:    &types.Body{},
		},
	}
	if html != "" {
		input.Message.Body.Html = sesContent(html)
	}
	if text != "" {
		input.Message.Body.Text = sesContent(text)
	}
	out, err := m.client.SendEmail(context.Background(), input)
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	log.Printf("mailer: sent via SES, message id %s", aws.ToString(out.MessageId))
	return nil
}

func sesContent(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
}

type noopMailer struct{}

func (m *noopMailer) Send(to, subject, html, text string) error {
	log.Printf("mailer: discarding email to %s (subject %q)", to, subject)
	return nil
}
