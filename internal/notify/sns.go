package notify

import (
	"context"
	"log"

	"fitforge/fitness-planner/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// snsSender implements the SMSSender interface using AWS SNS direct publish.
type snsSender struct {
	client   *sns.Client
	senderID string
}

// NewSNSSender creates a new SNS-backed SMS sender.
func NewSNSSender(cfg config.SMSConfig) (SMSSender, error) {
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
		log.Printf("ERROR: Failed to load AWS SDK config for SNS: %v", err)
		return nil, err
	}

	log.Printf("SNS SMS sender initialized for region %s", cfg.Region)

	return &snsSender{
		client:   sns.NewFromConfig(awsSDKConfig),
		senderID: cfg.SenderID,
	}, nil
}

// Send publishes an SMS directly to a phone number in E.164 format.
func (s *snsSender) Send(ctx context.Context, phoneNumber, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		}
	}

	_, err := s.client.Publish(ctx, input)
	if err != nil {
		log.Printf("ERROR: Failed to send SMS to %s: %v", phoneNumber, err)
		return err
	}
	return nil
}
