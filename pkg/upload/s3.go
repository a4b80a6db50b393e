package upload

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// Config holds the S3 connection settings
type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional, for S3-compatible stores
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix prepended to every upload
}

// S3Uploader uploads rendered images to an S3 bucket
type S3Uploader struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Uploader creates an uploader with a session built from config
func NewS3Uploader(config Config) (*S3Uploader, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3UploaderWithClient(s3.New(sess), config.Bucket, config.Prefix), nil
}

// NewS3UploaderWithClient creates an uploader around an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket, prefix string) *S3Uploader {
	return &S3Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Key returns the full object key for name
func (u *S3Uploader) Key(name string) string {
	return path.Join(u.prefix, name)
}

// Upload stores data under name and returns the full object key
func (u *S3Uploader) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.Key(name)
	size := int64(len(data))
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to S3 (%d bytes)", key, size)
	return key, nil
}
