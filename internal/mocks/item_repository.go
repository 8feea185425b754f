package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

type ItemRepository struct {
	mock.Mock
}

func (m *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *ItemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *ItemRepository) SetHidden(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	args := m.Called(ctx, id, reason)
	return args.Bool(0), args.Error(1)
}

func (m *ItemRepository) Restore(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID) error {
	args := m.Called(ctx, id, reviewerID)
	return args.Error(0)
}

func (m *ItemRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ItemRepository) ListAutoHidden(ctx context.Context, limit int) ([]domain.Item, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *ItemRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ItemRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
