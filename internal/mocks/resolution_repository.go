package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/domain"
)

type ResolutionRepository struct {
	mock.Mock
}

func (m *ResolutionRepository) CreateClaim(ctx context.Context, res *domain.Resolution, ownerNotif *domain.Notification) error {
	args := m.Called(ctx, res, ownerNotif)
	return args.Error(0)
}

func (m *ResolutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resolution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *ResolutionRepository) GetPendingByItem(ctx context.Context, itemID uuid.UUID) (*domain.Resolution, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resolution), args.Error(1)
}

func (m *ResolutionRepository) HasActiveForItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *ResolutionRepository) Decide(ctx context.Context, res *domain.Resolution, claimantNotif *domain.Notification) error {
	args := m.Called(ctx, res, claimantNotif)
	return args.Error(0)
}

func (m *ResolutionRepository) ListDetails(ctx context.Context, status *domain.ResolutionStatus, limit int) ([]domain.ClaimDetail, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimDetail), args.Error(1)
}

func (m *ResolutionRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentClaim, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentClaim), args.Error(1)
}

func (m *ResolutionRepository) CountByStatus(ctx context.Context, status domain.ResolutionStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ResolutionRepository) CountDecidedSince(ctx context.Context, status domain.ResolutionStatus, since time.Time) (int64, error) {
	args := m.Called(ctx, status, since)
	return args.Get(0).(int64), args.Error(1)
}
