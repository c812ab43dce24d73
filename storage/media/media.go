package media

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrUnsupportedType indicates a MIME type outside image/* and video/*.
	ErrUnsupportedType = errors.New("only image and video files are allowed")

	// ErrTooLarge indicates an upload over the configured size limit.
	ErrTooLarge = errors.New("file exceeds the upload size limit")
)

// Store persists uploaded media binaries. Save validates the file's MIME
// category and size before any bytes reach storage and returns the media
// path recorded on the vlog. Delete is best-effort cleanup for a path
// previously returned by Save.
type Store interface {
	Save(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, path string) error
}

// CategoryOf maps a declared MIME type to its media category ("image" or
// "video"). The second return is false for anything else.
func CategoryOf(contentType string) (string, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image", true
	case strings.HasPrefix(contentType, "video/"):
		return "video", true
	default:
		return "", false
	}
}

// checkFile runs the shared Save-time validations.
func checkFile(header *multipart.FileHeader, maxFileSize int64) error {
	if _, ok := CategoryOf(header.Header.Get("Content-Type")); !ok {
		return ErrUnsupportedType
	}

	if maxFileSize > 0 && header.Size > maxFileSize {
		return ErrTooLarge
	}

	return nil
}

// generateFilename builds a collision-resistant name from the upload
// instant and a random suffix, keeping the original extension.
func generateFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}
