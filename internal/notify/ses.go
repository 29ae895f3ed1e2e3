package notify

import (
	"context"
	"log"

	"fitforge/fitness-planner/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// sesMailer implements the Mailer interface using AWS SES.
type sesMailer struct {
	client *sesv2.Client
	from   string
}

// NewSESMailer creates a new SES-backed mailer. Static credentials are used
// when provided in config; otherwise the SDK's default chain (IAM role,
// environment) applies.
func NewSESMailer(cfg config.EmailConfig) (Mailer, error) {
	opts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for SES: %v", err)
		return nil, err
	}

	log.Printf("SES mailer initialized for region %s, sender %s", cfg.Region, cfg.From)

	return &sesMailer{
		client: sesv2.NewFromConfig(awsSDKConfig),
		from:   cfg.From,
	}, nil
}

// Send delivers a plain-text email through SES.
func (m *sesMailer) Send(ctx context.Context, to, subject, body string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(m.from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	_, err := m.client.SendEmail(ctx, input)
	if err != nil {
		log.Printf("ERROR: Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}
