package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sefazor/campus-events-backend/internal/config"
	"go.uber.org/zap"
)

const r2Prefix = "uploads/"

// R2Store puts images into a Cloudflare R2 bucket through the S3 API.
type R2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewR2Store(cfg config.R2Config, logger *zap.Logger) (*R2Store, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		awsConfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
	})

	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}, nil
}

func (s *R2Store) Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error) {
	buf, err := io.ReadAll(io.LimitReader(src, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	if len(buf) == 0 {
		return "", ErrEmptyFile
	}
	if len(buf) > MaxImageSize {
		return "", fmt.Errorf("file exceeds %d bytes", MaxImageSize)
	}

	key := r2Prefix + objectName(filename, contentType)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws.Int64(int64(len(buf))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	s.logger.Debug("image uploaded to R2", zap.String("key", key), zap.Int("bytes", len(buf)))
	return s.publicURL + "/" + key, nil
}
