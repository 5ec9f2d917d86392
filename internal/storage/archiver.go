package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	appconfig "payfam-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportArchiver uploads generated report files to an S3-compatible bucket
// so exported reports survive beyond the download.
type ReportArchiver struct {
	client *s3.Client
	bucket string
}

// NewReportArchiver builds an archiver from config, or returns nil when
// archiving is not configured. A nil archiver is safe to skip at call sites.
func NewReportArchiver(ctx context.Context, cfg *appconfig.ArchiveConfig) (*ReportArchiver, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	log.Printf("[Archive] report archiving enabled, bucket %s", cfg.Bucket)
	return &ReportArchiver{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores a report file under reports/<filename>
func (a *ReportArchiver) Upload(ctx context.Context, filename, contentType string, data []byte) error {
	key := "reports/" + filename
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
