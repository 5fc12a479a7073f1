package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Dosada05/community-tournaments/storage"
)

// uploadImage кладет изображение в хранилище и возвращает его публичный URL.
func uploadImage(ctx context.Context, uploader storage.FileUploader, prefix, ownerID string, file io.Reader, size int64, contentType string) (string, error) {
	if uploader == nil {
		return "", ErrUploadsDisabled
	}
	if size > storage.MaxImageSize {
		return "", ErrImageTooLarge
	}
	key, err := storage.ImageKey(prefix, ownerID, contentType)
	if err != nil {
		return "", err
	}
	result, err := uploader.Upload(ctx, key, contentType, io.LimitReader(file, storage.MaxImageSize))
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return uploader.GetPublicURL(result.Key), nil
}
