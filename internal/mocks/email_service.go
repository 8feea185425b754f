package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendClaimApproved(ctx context.Context, toEmail, name, itemTitle string) error {
	args := m.Called(ctx, toEmail, name, itemTitle)
	return args.Error(0)
}

func (m *EmailService) SendClaimRejected(ctx context.Context, toEmail, name, itemTitle, reason string) error {
	args := m.Called(ctx, toEmail, name, itemTitle, reason)
	return args.Error(0)
}
