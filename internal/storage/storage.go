package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ecommercio/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// ErrInvalidContentType rejects uploads that are not a known image type.
var ErrInvalidContentType = errors.New("file type not allowed")

// ImageStorage persists uploaded product images and returns the public URL
// stored on the product record.
type ImageStorage interface {
	SaveImage(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// AllowedImageTypes are the content types accepted for product images.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ValidateContentType rejects anything that is not a known image type.
func ValidateContentType(contentType string) error {
	for _, allowed := range AllowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
}

// uniqueKey keeps the original extension but replaces the name, so user
// supplied filenames never reach the filesystem or bucket.
func uniqueKey(filename string) string {
	ext := filepath.Ext(filename)
	return uuid.New().String() + ext
}

// LocalStorage writes images to a directory served as static files under
// /uploads. This is the default for single-node deployments.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) SaveImage(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	if err := ValidateContentType(contentType); err != nil {
		return "", err
	}

	key := uniqueKey(filename)
	path := filepath.Join(s.dir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	logger.Debug("Image stored locally", map[string]interface{}{
		"key": key,
	})
	return "/uploads/" + key, nil
}
