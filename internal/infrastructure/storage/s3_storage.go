// Package storage provides object storage implementations for cover images.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	catalogapp "github.com/bookhaven/backend/internal/application/catalog"
	infraconfig "github.com/bookhaven/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3CoverStorage implements CoverStorage
var _ catalogapp.CoverStorage = (*S3CoverStorage)(nil)

// S3CoverStorage stores listing cover images in an S3-compatible bucket
// (AWS S3, MinIO, and the like) and serves them from a public base URL.
type S3CoverStorage struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  *zap.Logger
}

// S3CoverStorageOption is a functional option for configuring S3CoverStorage
type S3CoverStorageOption func(*S3CoverStorage)

// WithLogger sets a custom logger for S3CoverStorage
func WithLogger(logger *zap.Logger) S3CoverStorageOption {
	return func(s *S3CoverStorage) {
		s.logger = logger
	}
}

// NewS3CoverStorage creates a new S3CoverStorage from configuration
func NewS3CoverStorage(cfg *infraconfig.StorageConfig, opts ...S3CoverStorageOption) (*S3CoverStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
			}
		}
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	storage := &S3CoverStorage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(storage)
	}

	return storage, nil
}

// Upload stores the cover bytes under the given key and returns the public
// URL the catalog should reference.
func (s *S3CoverStorage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	if len(data) == 0 {
		return "", errors.New("cover data is empty")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload cover: %w", err)
	}

	s.logger.Debug("Cover uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("size", len(data)))

	return s.baseURL + "/" + key, nil
}

// Delete removes a cover from the bucket. Used when a rejected listing's
// upload should not be kept around.
func (s *S3CoverStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete cover: %w", err)
	}
	return nil
}

// GetBucket returns the bucket name
func (s *S3CoverStorage) GetBucket() string {
	return s.bucket
}
