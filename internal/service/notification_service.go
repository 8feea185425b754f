package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

var ErrNotificationNotFound = errors.New("notification not found")

const unreadCountTTL = 60 * time.Second

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	InvalidateUnread(ctx context.Context, userID uuid.UUID)
}

type notificationService struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
}

func NewNotificationService(notifRepo repository.NotificationRepository, redis *redis.Client) NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		redis:     redis,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.notifRepo.ListByUser(ctx, userID, unreadOnly, limit)
}

// UnreadCount serves the badge counter. The Redis cache is best effort: any
// cache failure falls through to the database silently.
func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	key := unreadKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		_ = s.redis.Set(ctx, key, count, unreadCountTTL).Err()
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	updated, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotificationNotFound
	}
	s.InvalidateUnread(ctx, userID)
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.InvalidateUnread(ctx, userID)
	return nil
}

func (s *notificationService) InvalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, unreadKey(userID)).Err()
	}
}

func unreadKey(userID uuid.UUID) string {
	return fmt.Sprintf("notif:unread:%s", userID)
}
