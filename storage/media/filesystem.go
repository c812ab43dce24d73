package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/indieinfra/reel/config"
)

// FilesystemStore writes uploads into a local directory served back over a
// static HTTP path.
type FilesystemStore struct {
	basePath    string
	publicPath  string
	maxFileSize int64
}

func NewFilesystemStore(cfg *config.FilesystemStrategy, maxFileSize int64) (*FilesystemStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("filesystem media config is nil")
	}

	if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	return &FilesystemStore{
		basePath:    cfg.Path,
		publicPath:  strings.Trim(cfg.PublicPath, "/"),
		maxFileSize: maxFileSize,
	}, nil
}

// Save writes the upload under the base directory and returns its public
// relative path, e.g. "uploads/1693526400000-123456789.jpg".
func (fs *FilesystemStore) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := checkFile(header, fs.maxFileSize); err != nil {
		return "", err
	}

	filename := generateFilename(header.Filename)
	absPath := filepath.Join(fs.basePath, filename)

	out, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return fs.publicPath + "/" + filename, nil
}

// Delete removes a file previously returned by Save. Unknown paths are not
// an error.
func (fs *FilesystemStore) Delete(ctx context.Context, path string) error {
	filename, ok := strings.CutPrefix(path, fs.publicPath+"/")
	if !ok {
		return fmt.Errorf("path %q does not belong to this media store", path)
	}

	// Reject anything that could escape the base directory.
	if filename != filepath.Base(filename) {
		return fmt.Errorf("invalid media path %q", path)
	}

	if err := os.Remove(filepath.Join(fs.basePath, filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// BasePath exposes the uploads directory for the static file route.
func (fs *FilesystemStore) BasePath() string {
	return fs.basePath
}
