// Package publish uploads rendered images to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Faultbox/skinview/internal/logger"
)

// UploadTimeout bounds a single upload.
const UploadTimeout = 30 * time.Second

// Credential environment variables, optionally read from an env file.
const (
	EnvAccessKey = "S3_ACCESS_KEY"
	EnvSecretKey = "S3_SECRET_KEY"
)

// ErrNoBucket is returned when publishing is not configured.
var ErrNoBucket = errors.New("no publish bucket configured")

// Config selects the destination.
type Config struct {
	Bucket   string
	Region   string
	Endpoint string // S3-compatible endpoint; empty uses AWS
	Prefix   string // key prefix
	EnvFile  string // KEY=value credentials file, optional
}

// ObjectPutter is the part of the S3 API the publisher uses.
type ObjectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Publisher uploads images under a key prefix.
type Publisher struct {
	cfg    Config
	client ObjectPutter
	log    *zap.Logger
}

// New creates a publisher with an S3 session. Credentials come from
// S3_ACCESS_KEY and S3_SECRET_KEY when set, otherwise from the default
// AWS credential chain.
func New(cfg Config) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.EnvFile, err)
		}
	}

	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if access, secret := os.Getenv(EnvAccessKey), os.Getenv(EnvSecretKey); access != "" && secret != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(access, secret, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}
	return NewWithClient(cfg, s3.New(sess))
}

// NewWithClient creates a publisher using an existing client.
func NewWithClient(cfg Config, client ObjectPutter) (*Publisher, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}
	return &Publisher{cfg: cfg, client: client, log: logger.Named("publish")}, nil
}

// Key returns the object key for a file name.
func (p *Publisher) Key(name string) string {
	return path.Join(p.cfg.Prefix, path.Base(name))
}

// Upload stores data under the prefixed name and returns the key.
func (p *Publisher) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.Key(name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	p.log.Info("uploaded", zap.String("bucket", p.cfg.Bucket), zap.String("key", key), zap.Int64("bytes", size))
	return key, nil
}
