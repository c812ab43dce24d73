package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"github.com/indieinfra/reel/config"
)

type stubS3Client struct {
	bucketExists  bool
	bucketErr     error
	putCalled     bool
	removeCalled  bool
	lastPutKey    string
	lastRemoveKey string
	putErr        error
	removeErr     error
}

func (c *stubS3Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.bucketExists, c.bucketErr
}

func (c *stubS3Client) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	c.putCalled = true
	c.lastPutKey = objectName
	if c.putErr != nil {
		return minio.UploadInfo{}, c.putErr
	}
	return minio.UploadInfo{}, nil
}

func (c *stubS3Client) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	c.removeCalled = true
	c.lastRemoveKey = objectName
	return c.removeErr
}

func withStubClient(t *testing.T, stub *stubS3Client) {
	t.Helper()

	prev := newMinioClient
	newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
		return stub, nil
	}
	t.Cleanup(func() { newMinioClient = prev })
}

func baseS3Config() *config.S3Strategy {
	return &config.S3Strategy{
		Endpoint:    "https://s3.example.com",
		Region:      "us-east-1",
		Bucket:      "bucket",
		AccessKeyId: "key",
		SecretKeyId: "secret",
		PublicUrl:   "https://cdn.example.com",
	}
}

func TestNewS3Store_ClientError(t *testing.T) {
	prev := newMinioClient
	newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
		return nil, errors.New("boom")
	}
	t.Cleanup(func() { newMinioClient = prev })

	if _, err := NewS3Store(baseS3Config(), 0); err == nil {
		t.Fatalf("expected error when client creation fails")
	}
}

func TestNewS3Store_BucketMissing(t *testing.T) {
	withStubClient(t, &stubS3Client{bucketExists: false})

	if _, err := NewS3Store(baseS3Config(), 0); err == nil {
		t.Fatalf("expected error for missing bucket")
	}
}

func TestS3Store_SaveAndDelete(t *testing.T) {
	stub := &stubS3Client{bucketExists: true}
	withStubClient(t, stub)

	store, err := NewS3Store(baseS3Config(), 0)
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}

	file, header := createMultipartFile(t, "clip.mp4", "video/mp4", []byte("mp4-bytes"))

	path, err := store.Save(context.Background(), file, header)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !stub.putCalled {
		t.Fatalf("expected PutObject to be called")
	}
	if !strings.HasPrefix(path, "https://cdn.example.com/") || !strings.HasSuffix(path, ".mp4") {
		t.Fatalf("unexpected media path %q", path)
	}

	if err := store.Delete(context.Background(), path); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !stub.removeCalled || stub.lastRemoveKey != stub.lastPutKey {
		t.Fatalf("expected RemoveObject on key %q, got %q", stub.lastPutKey, stub.lastRemoveKey)
	}
}

func TestS3Store_RejectsBeforeUpload(t *testing.T) {
	stub := &stubS3Client{bucketExists: true}
	withStubClient(t, stub)

	store, err := NewS3Store(baseS3Config(), 4)
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}

	file, header := createMultipartFile(t, "notes.txt", "text/plain", []byte("hi"))
	if _, err := store.Save(context.Background(), file, header); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}

	file, header = createMultipartFile(t, "big.png", "image/png", []byte("too big"))
	if _, err := store.Save(context.Background(), file, header); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	if stub.putCalled {
		t.Fatalf("rejected upload must not reach s3")
	}
}
