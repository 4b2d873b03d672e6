package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"memories/internal/apperror"
	"memories/internal/storage"
)

// imageStore moves data URL images into object storage. With no storage
// configured values pass through unchanged.
type imageStore struct {
	storage storage.Storage
}

func (s *imageStore) save(ctx context.Context, postID, value string) (string, error) {
	if s.storage == nil || value == "" {
		return value, nil
	}

	if !strings.HasPrefix(value, "data:") {
		if s.storage.OwnsURL(value) && !s.storage.OwnsPostImage(postID, value) {
			return "", apperror.BadRequest("Image belongs to another post")
		}
		return value, nil
	}

	data, err := decodeDataURL(value)
	if err != nil {
		return "", err
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", apperror.BadRequest("Unsupported image type")
	}

	url, err := s.storage.UploadImage(ctx, postID, data, mime.String(), mime.Extension())
	if err != nil {
		return "", apperror.Internal("Failed to store image", err)
	}

	return url, nil
}

// remove deletes the stored image of postID; failures are only logged.
func (s *imageStore) remove(ctx context.Context, postID, value string) {
	if s.storage == nil || value == "" || !s.storage.OwnsPostImage(postID, value) {
		return
	}

	if err := s.storage.DeleteImage(ctx, postID, value); err != nil {
		logrus.WithError(err).WithField("image", value).Warn("Failed to delete stored image")
	}
}

func decodeDataURL(value string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(value, "data:"), ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, apperror.BadRequest("Invalid image data")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil || len(data) == 0 {
		return nil, apperror.BadRequest("Invalid image data")
	}

	return data, nil
}
