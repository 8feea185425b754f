package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"lostfound-backend/internal/config"
	"lostfound-backend/internal/repository"
)

type Services struct {
	Auth         AuthService
	User         UserService
	Item         ItemService
	Resolution   ResolutionService
	Report       ReportService
	Notification NotificationService
	Moderation   ModerationService
	Storage      StorageService
	Email        EmailService
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	storageService := NewStorageService(minioClient, cfg)
	emailService := NewEmailService(cfg)
	authService := NewAuthService(repos.User, NewGoogleVerifier(cfg.GoogleClientID), cfg)
	notificationService := NewNotificationService(repos.Notification, redis)
	itemService := NewItemService(repos.Item, repos.User, repos.Resolution, storageService)
	resolutionService := NewResolutionService(repos.Resolution, repos.Item, repos.User, storageService, emailService, notificationService)
	reportService := NewReportService(repos.Report, repos.Item, notificationService)
	moderationService := NewModerationService(repos.User, repos.Item, repos.Resolution, repos.Report, storageService)
	userService := NewUserService(repos.User)

	return &Services{
		Auth:         authService,
		User:         userService,
		Item:         itemService,
		Resolution:   resolutionService,
		Report:       reportService,
		Notification: notificationService,
		Moderation:   moderationService,
		Storage:      storageService,
		Email:        emailService,
	}
}
