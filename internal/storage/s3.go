package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"fitforge/fitness-planner/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3Archive implements the ResponseArchive interface using an S3-compatible
// backend.
type s3Archive struct {
	client     *s3.Client
	bucketName string
}

// NewS3Archive creates a new S3 archive instance.
func NewS3Archive(cfg config.ArchiveConfig) (ResponseArchive, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Path-style addressing is required by most S3-compatible services.
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Printf("S3 archive initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Archive{
		client:     s3Client,
		bucketName: cfg.BucketName,
	}, nil
}

// Store writes the payload under generations/<userID>/<date>/<uuid>.json.
func (s *s3Archive) Store(ctx context.Context, userID string, payload []byte) (string, error) {
	objectKey := fmt.Sprintf("generations/%s/%s/%s.json",
		userID,
		time.Now().UTC().Format("2006-01-02"),
		uuid.NewString(),
	)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		log.Printf("ERROR: Failed to archive payload under key '%s': %v", objectKey, err)
		return "", err
	}

	return objectKey, nil
}
