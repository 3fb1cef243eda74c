package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/joshsymonds/eyemap/pkg/logger"
)

// PutObjectAPI is the subset of the S3 client used by S3Exporter.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Option customizes the S3 client built by NewS3Exporter.
type S3Option func(*s3Settings)

type s3Settings struct {
	region       string
	endpoint     string
	loadOptions  []func(*awsconfig.LoadOptions) error
	usePathStyle bool
}

// WithRegion overrides the region resolved from the AWS environment.
func WithRegion(region string) S3Option {
	return func(s *s3Settings) { s.region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint and enables path-style addressing.
func WithEndpoint(endpoint string) S3Option {
	return func(s *s3Settings) {
		s.endpoint = endpoint
		s.usePathStyle = true
	}
}

// WithPathStyle forces path-style bucket addressing.
func WithPathStyle(enabled bool) S3Option {
	return func(s *s3Settings) { s.usePathStyle = enabled }
}

// WithLoadOptions passes extra options to config.LoadDefaultConfig.
func WithLoadOptions(opts ...func(*awsconfig.LoadOptions) error) S3Option {
	return func(s *s3Settings) { s.loadOptions = append(s.loadOptions, opts...) }
}

// S3Exporter uploads reports under a bucket prefix.
type S3Exporter struct {
	client PutObjectAPI
	logger logger.Logger
	bucket string
	prefix string
}

// NewS3Exporter loads AWS configuration from the standard environment and creates an exporter.
func NewS3Exporter(ctx context.Context, bucket, prefix string, log logger.Logger, opts ...S3Option) (*S3Exporter, error) {
	settings := &s3Settings{}
	for _, opt := range opts {
		opt(settings)
	}

	loadOpts := settings.loadOptions
	if settings.region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(settings.region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if settings.endpoint != "" {
			o.BaseEndpoint = aws.String(settings.endpoint)
		}
		o.UsePathStyle = settings.usePathStyle
	})

	return NewS3ExporterWithClient(client, bucket, prefix, log), nil
}

// NewS3ExporterWithClient creates an exporter around an existing client.
func NewS3ExporterWithClient(client PutObjectAPI, bucket, prefix string, log logger.Logger) *S3Exporter {
	return &S3Exporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: log,
	}
}

// Location returns the s3:// URL of the prefix.
func (e *S3Exporter) Location() string {
	if e.prefix == "" {
		return "s3://" + e.bucket
	}
	return "s3://" + e.bucket + "/" + e.prefix
}

// Key returns the object key a report named name is stored under.
func (e *S3Exporter) Key(name string) string {
	if e.prefix == "" {
		return name
	}
	return path.Join(e.prefix, name)
}

// Export uploads body as one object. Reports are small, so the body is buffered to give the
// SDK a seekable payload with a known length.
func (e *S3Exporter) Export(ctx context.Context, name string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}

	key := e.Key(name)
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(name)),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to s3://%s/%s: %w", e.bucket, key, err)
	}

	location := fmt.Sprintf("s3://%s/%s", e.bucket, key)
	e.logger.Info("Uploaded report", "location", location, "bytes", len(data))
	return location, nil
}
