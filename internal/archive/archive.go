// Package archive keeps the original bytes of imported recipe documents in
// S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Store saves a document and returns the key it was stored under.
type Store interface {
	Put(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// Configured reports whether enough is set to reach a bucket.
func (c S3Config) Configured() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

type S3Store struct {
	client s3Client
	bucket string
	now    func() time.Time
	newID  func() string
}

// New returns an S3Store for cfg, or a Nop store when cfg is incomplete.
func New(cfg S3Config) Store {
	if !cfg.Configured() {
		return Nop{}
	}
	return newS3Store(newS3Client(cfg), cfg.Bucket)
}

func newS3Store(client s3Client, bucket string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

// Put uploads data under recipes/YYYY-MM/<uuid>-<filename>.
func (s *S3Store) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("recipes/%s/%s-%s", s.now().UTC().Format("2006-01"), s.newID(), cleanName(filename))
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return key, nil
}

// cleanName keeps the base name and replaces characters that are awkward in
// object keys.
func cleanName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "document"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
}

// Nop discards documents. It is used when no bucket is configured.
type Nop struct{}

func (Nop) Put(context.Context, string, string, []byte) (string, error) { return "", nil }
