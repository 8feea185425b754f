package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/service"
)

type IdentityVerifier struct {
	mock.Mock
}

func (m *IdentityVerifier) Verify(ctx context.Context, idToken string) (*service.GoogleProfile, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GoogleProfile), args.Error(1)
}
