package publish

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sprigerrors "github.com/vango-dev/sprig/internal/errors"
)

// S3API is the subset of *s3.Client the publisher uses.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads files to a bucket.
type S3Publisher struct {
	client       S3API
	bucket       string
	prefix       string
	cacheControl string
}

// NewS3Publisher creates a publisher that stores keys under prefix.
func NewS3Publisher(client S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client:       client,
		bucket:       bucket,
		prefix:       prefix,
		cacheControl: "public, max-age=300",
	}
}

// WithCacheControl sets the Cache-Control header stored with each object.
func (p *S3Publisher) WithCacheControl(v string) *S3Publisher {
	p.cacheControl = v
	return p
}

// Publish uploads body with PutObject.
func (p *S3Publisher) Publish(ctx context.Context, key, contentType string, body []byte) error {
	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.prefix + key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String(p.cacheControl),
	})
	if err != nil {
		// A credentials failure surfaces inside the SDK error and keeps
		// its own code.
		return sprigerrors.FromError(fmt.Errorf("s3 upload of %s: %w", key, err), "E160")
	}
	return nil
}

// S3Config configures NewS3Client.
type S3Config struct {
	Region string

	// Endpoint overrides the service endpoint, e.g. for MinIO.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of a
	// virtual host.
	PathStyle bool
}

// NewS3Client creates an S3 client. Credentials are read from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  aws.NewCredentialsCache(envCredentials{}),
		UsePathStyle: cfg.PathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, sprigerrors.New("E161")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}
