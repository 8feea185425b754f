package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/domain"
)

type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) File(ctx context.Context, report *domain.Report, threshold int, hideNotif *domain.Notification) (bool, error) {
	args := m.Called(ctx, report, threshold, hideNotif)
	return args.Bool(0), args.Error(1)
}

func (m *ReportRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ReportDetail, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportDetail), args.Error(1)
}

func (m *ReportRepository) ListReportedItems(ctx context.Context) ([]domain.ReportedItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportedItem), args.Error(1)
}

func (m *ReportRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentReport, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecentReport), args.Error(1)
}

func (m *ReportRepository) CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ReportRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
