package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
)

// Ensure S3ArtifactStore implements feed.ArtifactStore
var _ feed.ArtifactStore = (*S3ArtifactStore)(nil)

// S3Config holds configuration for the S3-compatible artifact sink
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	KeyPrefix    string
	UseSSL       bool
	UsePathStyle bool
}

// S3ArtifactStore publishes feed artifacts to an S3-compatible object store
// (AWS S3, MinIO, RustFS, etc.)
type S3ArtifactStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	logger    *zap.Logger
}

// S3ArtifactStoreOption is a functional option for configuring S3ArtifactStore
type S3ArtifactStoreOption func(*S3ArtifactStore)

// WithLogger sets a custom logger for S3ArtifactStore
func WithLogger(logger *zap.Logger) S3ArtifactStoreOption {
	return func(s *S3ArtifactStore) {
		s.logger = logger
	}
}

// NewS3ArtifactStore creates an S3ArtifactStore from configuration
func NewS3ArtifactStore(cfg *S3Config, opts ...S3ArtifactStoreOption) (*S3ArtifactStore, error) {
	if cfg == nil {
		return nil, errors.New("storage: s3 configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage: s3 bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage: s3 access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage: s3 secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	store := &S3ArtifactStore{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Call during startup.
func (s *S3ArtifactStore) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created artifact bucket", zap.String("bucket", s.bucket))
	return nil
}

// Put uploads one artifact under its fixed name.
func (s *S3ArtifactStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	if name == "" {
		return errors.New("storage: artifact name is required")
	}

	key := s.keyPrefix + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("storage: failed to upload artifact %s: %w", name, err)
	}

	s.logger.Debug("Artifact uploaded",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Bucket returns the bucket name
func (s *S3ArtifactStore) Bucket() string {
	return s.bucket
}
