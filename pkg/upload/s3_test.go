package upload

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// mockS3 records PutObject calls; other S3API methods are not implemented
type mockS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("upload without deadline")
	}
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.inputs = append(m.inputs, input)
	m.bodies = append(m.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	mock := &mockS3{}
	uploader := NewS3UploaderWithClient(mock, "renders", "tracer")

	key, err := uploader.Upload(context.Background(), "default/render.png", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if key != "tracer/default/render.png" {
		t.Errorf("Key = %q, want tracer/default/render.png", key)
	}
	if len(mock.inputs) != 1 {
		t.Fatalf("Expected 1 PutObject call, got %d", len(mock.inputs))
	}

	input := mock.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" {
		t.Errorf("Bucket = %q", aws.StringValue(input.Bucket))
	}
	if aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("ContentType = %q", aws.StringValue(input.ContentType))
	}
	if aws.Int64Value(input.ContentLength) != int64(len("png-bytes")) {
		t.Errorf("ContentLength = %d", aws.Int64Value(input.ContentLength))
	}
	if string(mock.bodies[0]) != "png-bytes" {
		t.Errorf("Body = %q", mock.bodies[0])
	}
}

func TestUpload_Error(t *testing.T) {
	mock := &mockS3{err: errors.New("access denied")}
	uploader := NewS3UploaderWithClient(mock, "renders", "")

	_, err := uploader.Upload(context.Background(), "render.ppm", []byte("P3"), "image/x-portable-pixmap")
	if err == nil || !errors.Is(err, mock.err) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestKey(t *testing.T) {
	testCases := []struct {
		prefix   string
		name     string
		expected string
	}{
		{"", "render.png", "render.png"},
		{"renders", "a/b.png", "renders/a/b.png"},
		{"renders/", "b.png", "renders/b.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			u := NewS3UploaderWithClient(&mockS3{}, "bucket", tc.prefix)
			if got := u.Key(tc.name); got != tc.expected {
				t.Errorf("Key(%q) = %q, want %q", tc.name, got, tc.expected)
			}
		})
	}
}

func TestNewS3Uploader(t *testing.T) {
	if _, err := NewS3Uploader(Config{}); err == nil {
		t.Error("Expected error without a bucket")
	}

	uploader, err := NewS3Uploader(Config{
		Bucket:    "renders",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewS3Uploader failed: %v", err)
	}
	if uploader.bucket != "renders" {
		t.Errorf("bucket = %q", uploader.bucket)
	}
}
