package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"memories/internal/config"
)

// Storage keeps post images outside the database.
type Storage interface {
	UploadImage(ctx context.Context, postID string, data []byte, contentType, ext string) (string, error)
	DeleteImage(ctx context.Context, postID, imageURL string) error
	// OwnsURL reports whether imageURL points into the image bucket.
	OwnsURL(imageURL string) bool
	// OwnsPostImage reports whether imageURL is an object stored for postID.
	OwnsPostImage(postID, imageURL string) bool
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewMinIOClient connects to MinIO and creates the bucket when missing.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.BucketName, err)
		}
		logrus.WithField("bucket", cfg.BucketName).Info("Created image bucket")
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: publicBaseURL(cfg),
	}, nil
}

// UploadImage stores data under posts/{postID}/{yyyy}/{mm}/{uuid}{ext} and
// returns the public URL of the object.
func (m *MinIOClient) UploadImage(ctx context.Context, postID string, data []byte, contentType, ext string) (string, error) {
	now := time.Now().UTC()
	objectName := ObjectName(postID, now, uuid.New().String(), ext)

	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"post-id":     postID,
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to minio: %w", err)
	}

	return m.objectURL(objectName), nil
}

// DeleteImage removes the object behind imageURL. Objects outside the
// prefix of postID are never touched.
func (m *MinIOClient) DeleteImage(ctx context.Context, postID, imageURL string) error {
	objectName, ok := m.objectNameFromURL(imageURL)
	if !ok || !isPostObject(postID, objectName) {
		return nil
	}

	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete image from minio: %w", err)
	}
	return nil
}

func (m *MinIOClient) OwnsURL(imageURL string) bool {
	_, ok := m.objectNameFromURL(imageURL)
	return ok
}

func (m *MinIOClient) OwnsPostImage(postID, imageURL string) bool {
	objectName, ok := m.objectNameFromURL(imageURL)
	return ok && isPostObject(postID, objectName)
}

func (m *MinIOClient) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
}

func (m *MinIOClient) objectNameFromURL(imageURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", m.publicURL, m.bucket)
	if !strings.HasPrefix(imageURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(imageURL, prefix)
	return name, name != ""
}

// ObjectName builds the storage key of a post image.
func ObjectName(postID string, at time.Time, id, ext string) string {
	return fmt.Sprintf("%s%d/%02d/%s%s", postPrefix(postID), at.Year(), at.Month(), id, ext)
}

func postPrefix(postID string) string {
	return "posts/" + postID + "/"
}

func isPostObject(postID, objectName string) bool {
	if postID == "" || strings.Contains(postID, "/") || strings.Contains(objectName, "..") {
		return false
	}
	return strings.HasPrefix(objectName, postPrefix(postID))
}

func publicBaseURL(cfg config.MinIO) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}
