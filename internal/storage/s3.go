package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 stores artifacts in an S3-compatible bucket and returns absolute
// object URLs.
type S3 struct {
	client *minio.Client
	bucket string
	base   string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewS3(c S3Config) (*S3, error) {
	if c.Endpoint == "" {
		return nil, fmt.Errorf("s3: endpoint is required")
	}
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}
	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 client for %s: %w", c.Endpoint, err)
	}
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return &S3{
		client: client,
		bucket: c.Bucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, c.Endpoint, c.Bucket),
	}, nil
}

func (s *S3) Save(ctx context.Context, name string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return "", fmt.Errorf("put %s to bucket %s: %w", name, s.bucket, err)
	}
	return s.base + "/" + name, nil
}

func (s *S3) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s from bucket %s: %w", name, s.bucket, err)
	}
	return obj, nil
}
