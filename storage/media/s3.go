package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/indieinfra/reel/config"
)

// s3Client is the minio surface S3Store uses, narrowed for test doubles.
type s3Client interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

var newMinioClient = func(endpoint string, opts *minio.Options) (s3Client, error) {
	return minio.New(endpoint, opts)
}

// S3Store uploads media to S3 or any compatible service (R2, Backblaze, MinIO).
// The stored media path is the public object URL.
type S3Store struct {
	client      s3Client
	bucket      string
	publicBase  string
	maxFileSize int64
}

func NewS3Store(cfg *config.S3Strategy, maxFileSize int64) (*S3Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("s3 media config is nil")
	}

	region := strings.TrimSpace(cfg.Region)
	if strings.EqualFold(region, "auto") {
		region = ""
	}

	endpointHost := strings.TrimSpace(cfg.Endpoint)
	if endpointHost == "" {
		if region == "" {
			endpointHost = "s3.amazonaws.com"
		} else {
			endpointHost = fmt.Sprintf("s3.%s.amazonaws.com", region)
		}
	} else {
		if parsed, err := url.Parse(endpointHost); err == nil && parsed.Host != "" {
			endpointHost = parsed.Host
		}
	}

	client, err := newMinioClient(endpointHost, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyId, cfg.SecretKeyId, ""),
		Secure: true,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to verify s3 bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("s3 bucket %q does not exist or is not accessible", cfg.Bucket)
	}

	return &S3Store{
		client:      client,
		bucket:      cfg.Bucket,
		publicBase:  strings.TrimSuffix(cfg.PublicUrl, "/"),
		maxFileSize: maxFileSize,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := checkFile(header, s.maxFileSize); err != nil {
		return "", err
	}

	key := generateFilename(header.Filename)
	opts := minio.PutObjectOptions{ContentType: header.Header.Get("Content-Type")}

	if _, err := s.client.PutObject(ctx, s.bucket, key, file, header.Size, opts); err != nil {
		return "", fmt.Errorf("upload to s3 failed: %w", err)
	}

	return s.publicBase + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, path string) error {
	key, ok := strings.CutPrefix(path, s.publicBase+"/")
	if !ok {
		return fmt.Errorf("path %q does not belong to this media store", path)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete from s3 failed: %w", err)
	}

	return nil
}
