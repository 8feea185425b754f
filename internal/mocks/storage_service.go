package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type StorageService struct {
	mock.Mock
}

func (m *StorageService) Upload(ctx context.Context, data []byte, ext, mimeType, originalName string) (string, error) {
	args := m.Called(ctx, data, ext, mimeType, originalName)
	return args.String(0), args.Error(1)
}

func (m *StorageService) SignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *StorageService) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
