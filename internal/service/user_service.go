package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

type UserService interface {
	GetByPublicID(ctx context.Context, publicID string) (*domain.User, error)
	SetHostel(ctx context.Context, userID uuid.UUID, hostel domain.Hostel) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	return s.userRepo.GetByPublicID(ctx, publicID)
}

func (s *userService) SetHostel(ctx context.Context, userID uuid.UUID, hostel domain.Hostel) error {
	if !hostel.IsValid() {
		return fmt.Errorf("%w: hostel must be boys or girls", ErrInvalidInput)
	}
	return s.userRepo.UpdateHostel(ctx, userID, hostel)
}
