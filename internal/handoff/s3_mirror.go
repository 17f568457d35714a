package handoff

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"zonetriage/internal/config"
)

// ObjectName is the key suffix of every mirrored list.
const ObjectName = "suspicious_targets.txt"

// Mirror publishes a copy of a written list for remote consumers.
type Mirror interface {
	Publish(ctx context.Context, runID string, content []byte) (string, error)
}

// S3Mirror uploads lists to an S3-compatible bucket under <runID>/suspicious_targets.txt.
type S3Mirror struct {
	client     *minio.Client
	bucketName string
	region     string
	initOnce   sync.Once
	initErr    error
}

func NewS3Mirror(cfg config.MirrorConfig) (*S3Mirror, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Mirror{client: client, bucketName: bucket, region: region}, nil
}

func (s *S3Mirror) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucketName)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// Publish uploads content and returns the object key.
func (s *S3Mirror) Publish(ctx context.Context, runID string, content []byte) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("mirror is nil")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return "", fmt.Errorf("run_id is required")
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("ensure bucket: %w", err)
	}
	key := ObjectKey(runID)
	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func ObjectKey(runID string) string {
	return strings.Trim(strings.TrimSpace(runID), "/") + "/" + ObjectName
}
