package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"lostfound-backend/internal/config"
)

var ErrStorageUnavailable = errors.New("object storage unavailable")

// StorageService wraps the object store. Items persist only the storage key;
// clients receive time-limited signed URLs.
type StorageService interface {
	Upload(ctx context.Context, data []byte, ext, mimeType, originalName string) (string, error)
	SignedURL(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

type storageService struct {
	client *minio.Client
	cfg    *config.Config
}

func NewStorageService(client *minio.Client, cfg *config.Config) StorageService {
	return &storageService{client: client, cfg: cfg}
}

func (s *storageService) Upload(ctx context.Context, data []byte, ext, mimeType, originalName string) (string, error) {
	if s.client == nil {
		return "", ErrStorageUnavailable
	}

	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	key := fmt.Sprintf("uploads/%s-%d.%s", base, time.Now().UTC().Unix(), ext)

	_, err := s.client.PutObject(ctx, s.cfg.MinIOBucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return key, nil
}

func (s *storageService) SignedURL(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", ErrStorageUnavailable
	}

	u, err := s.client.PresignedGetObject(ctx, s.cfg.MinIOBucket, key, s.cfg.SignedURLExpiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *storageService) Remove(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	return s.client.RemoveObject(ctx, s.cfg.MinIOBucket, key, minio.RemoveObjectOptions{})
}
