package handler

import "lostfound-backend/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Item         *ItemHandler
	Resolution   *ResolutionHandler
	Notification *NotificationHandler
	Profile      *ProfileHandler
	Admin        *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Item:         NewItemHandler(services.Item, services.Report),
		Resolution:   NewResolutionHandler(services.Resolution),
		Notification: NewNotificationHandler(services.Notification),
		Profile:      NewProfileHandler(services.User, services.Item),
		Admin:        NewAdminHandler(services.Moderation),
	}
}
