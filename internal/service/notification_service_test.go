package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/mocks"
	"lostfound-backend/internal/service"
)

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Default Limit", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(notifRepo, nil)

		notifRepo.On("ListByUser", ctx, userID, false, 20).Return([]domain.Notification{}, nil).Once()

		_, err := svc.List(ctx, userID, false, 0)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})

	t.Run("Limit Capped", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(notifRepo, nil)

		notifRepo.On("ListByUser", ctx, userID, true, 100).Return([]domain.Notification{}, nil).Once()

		_, err := svc.List(ctx, userID, true, 500)

		assert.NoError(t, err)
		notifRepo.AssertExpectations(t)
	})
}

func TestNotificationService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Falls Back To Database Without Redis", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(notifRepo, nil)

		notifRepo.On("CountUnread", ctx, userID).Return(int64(3), nil).Once()

		count, err := svc.UnreadCount(ctx, userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	notifID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(notifRepo, nil)

		notifRepo.On("MarkAsRead", ctx, notifID, userID).Return(true, nil).Once()

		err := svc.MarkAsRead(ctx, userID, notifID)

		assert.NoError(t, err)
	})

	t.Run("Other Recipient Sees Not Found", func(t *testing.T) {
		notifRepo := new(mocks.NotificationRepository)
		svc := service.NewNotificationService(notifRepo, nil)

		notifRepo.On("MarkAsRead", ctx, notifID, userID).Return(false, nil).Once()

		err := svc.MarkAsRead(ctx, userID, notifID)

		assert.ErrorIs(t, err, service.ErrNotificationNotFound)
	})
}
