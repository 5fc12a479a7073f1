package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/Dosada05/community-tournaments/models"
)

// MaxImageSize ограничивает размер загружаемых изображений (5 МБ).
const MaxImageSize = 5 << 20

var ErrUnsupportedImageType = fmt.Errorf("unsupported image type: %w", models.ErrInvalidInput)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ImageKey builds a unique object key under prefix, e.g. "games/<id>/<uuid>.png".
func ImageKey(prefix, ownerID, contentType string) (string, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", ErrUnsupportedImageType
	}
	return path.Join(prefix, ownerID, uuid.NewString()+ext), nil
}
