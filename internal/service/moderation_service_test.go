package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/mocks"
	"lostfound-backend/internal/service"
)

func newModerationFixture() (*mocks.UserRepository, *mocks.ItemRepository, *mocks.ResolutionRepository, *mocks.ReportRepository, *mocks.StorageService, service.ModerationService) {
	userRepo := new(mocks.UserRepository)
	itemRepo := new(mocks.ItemRepository)
	resolutionRepo := new(mocks.ResolutionRepository)
	reportRepo := new(mocks.ReportRepository)
	storage := new(mocks.StorageService)
	svc := service.NewModerationService(userRepo, itemRepo, resolutionRepo, reportRepo, storage)
	return userRepo, itemRepo, resolutionRepo, reportRepo, storage, svc
}

func TestModerationService_ModerateUser(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	target := func() *domain.User {
		return &domain.User{ID: uuid.New(), PublicID: "target-sub", WarningCount: 1}
	}

	t.Run("Warn Increments Count", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		u := target()
		userRepo.On("GetByPublicID", ctx, u.PublicID).Return(u, nil).Once()
		userRepo.On("UpdateModeration", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.WarningCount == 2 && !user.IsBanned
		})).Return(nil).Once()

		err := svc.ModerateUser(ctx, admin, u.PublicID, domain.ModerateUserInput{Action: domain.UserActionWarn})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Temp Ban Defaults To Seven Days", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		u := target()
		before := time.Now().UTC()
		userRepo.On("GetByPublicID", ctx, u.PublicID).Return(u, nil).Once()
		userRepo.On("UpdateModeration", ctx, mock.MatchedBy(func(user *domain.User) bool {
			if !user.IsBanned || user.BanUntil == nil {
				return false
			}
			days := user.BanUntil.Sub(before).Hours() / 24
			return days > 6.9 && days < 7.1
		})).Return(nil).Once()

		err := svc.ModerateUser(ctx, admin, u.PublicID, domain.ModerateUserInput{Action: domain.UserActionTempBan})

		assert.NoError(t, err)
	})

	t.Run("Perm Ban Has No Expiry", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		u := target()
		userRepo.On("GetByPublicID", ctx, u.PublicID).Return(u, nil).Once()
		userRepo.On("UpdateModeration", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return user.IsBanned && user.BanUntil == nil
		})).Return(nil).Once()

		err := svc.ModerateUser(ctx, admin, u.PublicID, domain.ModerateUserInput{Action: domain.UserActionPermBan})

		assert.NoError(t, err)
	})

	t.Run("Unban Clears Everything", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		reason := "spamming the feed"
		until := time.Now().UTC().Add(24 * time.Hour)
		u := target()
		u.IsBanned = true
		u.BanReason = &reason
		u.BanUntil = &until

		userRepo.On("GetByPublicID", ctx, u.PublicID).Return(u, nil).Once()
		userRepo.On("UpdateModeration", ctx, mock.MatchedBy(func(user *domain.User) bool {
			return !user.IsBanned && user.BanReason == nil && user.BanUntil == nil
		})).Return(nil).Once()

		err := svc.ModerateUser(ctx, admin, u.PublicID, domain.ModerateUserInput{Action: domain.UserActionUnban})

		assert.NoError(t, err)
	})

	t.Run("Unknown Action", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		u := target()
		userRepo.On("GetByPublicID", ctx, u.PublicID).Return(u, nil).Once()

		err := svc.ModerateUser(ctx, admin, u.PublicID, domain.ModerateUserInput{Action: "obliterate"})

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Unknown User", func(t *testing.T) {
		userRepo, _, _, _, _, svc := newModerationFixture()

		userRepo.On("GetByPublicID", ctx, "nobody").Return(nil, nil).Once()

		err := svc.ModerateUser(ctx, admin, "nobody", domain.ModerateUserInput{Action: domain.UserActionWarn})

		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})
}

func TestModerationService_ModerateItem(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: string(domain.RoleAdmin)}

	item := &domain.Item{
		ID:    uuid.New(),
		Title: "Suspicious listing",
		Image: "uploads/photo-1700000000.jpg",
	}

	t.Run("Hide Uses Admin Reason", func(t *testing.T) {
		_, itemRepo, _, _, _, svc := newModerationFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		itemRepo.On("SetHidden", ctx, item.ID, domain.HiddenReasonAdmin).Return(true, nil).Once()

		err := svc.ModerateItem(ctx, admin, item.ID, domain.ModerateItemInput{Action: domain.ItemActionHide})

		assert.NoError(t, err)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Hide With Custom Reason", func(t *testing.T) {
		_, itemRepo, _, _, _, svc := newModerationFixture()

		reason := "misleading photo"
		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		itemRepo.On("SetHidden", ctx, item.ID, reason).Return(true, nil).Once()

		err := svc.ModerateItem(ctx, admin, item.ID, domain.ModerateItemInput{
			Action: domain.ItemActionHide,
			Reason: &reason,
		})

		assert.NoError(t, err)
	})

	t.Run("Restore", func(t *testing.T) {
		_, itemRepo, _, _, _, svc := newModerationFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		itemRepo.On("Restore", ctx, item.ID, admin.ID).Return(nil).Once()

		err := svc.ModerateItem(ctx, admin, item.ID, domain.ModerateItemInput{Action: domain.ItemActionRestore})

		assert.NoError(t, err)
	})

	t.Run("Delete Removes Image", func(t *testing.T) {
		_, itemRepo, _, _, storage, svc := newModerationFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		itemRepo.On("DeleteCascade", ctx, item.ID).Return(nil).Once()
		storage.On("Remove", ctx, item.Image).Return(nil).Once()

		err := svc.ModerateItem(ctx, admin, item.ID, domain.ModerateItemInput{Action: domain.ItemActionDelete})

		assert.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("Missing Item", func(t *testing.T) {
		_, itemRepo, _, _, _, svc := newModerationFixture()

		id := uuid.New()
		itemRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		err := svc.ModerateItem(ctx, admin, id, domain.ModerateItemInput{Action: domain.ItemActionHide})

		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})
}

func TestModerationService_Stats(t *testing.T) {
	ctx := context.Background()
	_, itemRepo, resolutionRepo, reportRepo, _, svc := newModerationFixture()

	itemRepo.On("CountAll", ctx).Return(int64(42), nil).Once()
	itemRepo.On("CountCreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(7), nil).Once()
	resolutionRepo.On("CountDecidedSince", ctx, domain.ResolutionApproved, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()
	resolutionRepo.On("CountDecidedSince", ctx, domain.ResolutionRejected, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()
	resolutionRepo.On("CountByStatus", ctx, domain.ResolutionPending).Return(int64(4), nil).Once()
	reportRepo.On("CountByStatus", ctx, domain.ReportPending).Return(int64(5), nil).Once()
	reportRepo.On("CountCreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(int64(6), nil).Once()

	stats, err := svc.Stats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalItems)
	assert.Equal(t, int64(7), stats.ItemsCurrentMonth)
	assert.Equal(t, int64(3), stats.ClaimsApprovedCurrentMonth)
	assert.Equal(t, int64(2), stats.ClaimsRejectedCurrentMonth)
	assert.Equal(t, int64(4), stats.ClaimsPending)
	assert.Equal(t, int64(5), stats.ActiveReports)
	assert.Equal(t, int64(6), stats.ReportsCurrentMonth)
}

func TestModerationService_Activity(t *testing.T) {
	ctx := context.Background()
	_, itemRepo, resolutionRepo, reportRepo, _, svc := newModerationFixture()

	now := time.Now().UTC()

	resolutionRepo.On("ListRecent", ctx, mock.AnythingOfType("int")).Return([]domain.RecentClaim{
		{
			ID:              uuid.New(),
			ItemID:          uuid.New(),
			ItemTitle:       "Black wallet",
			ClaimerName:     "Claimant",
			ClaimerPublicID: "claimant-sub",
			Status:          domain.ResolutionPending,
			CreatedAt:       now.Add(-1 * time.Hour),
		},
	}, nil).Once()
	reportRepo.On("ListRecent", ctx, mock.AnythingOfType("int")).Return([]domain.RecentReport{
		{
			ID:               uuid.New(),
			ItemID:           uuid.New(),
			ItemTitle:        "Blue backpack",
			ReporterName:     "Reporter",
			ReporterPublicID: "reporter-sub",
			Reason:           domain.ReasonSpam,
			CreatedAt:        now.Add(-10 * time.Minute),
		},
	}, nil).Once()
	itemRepo.On("ListAutoHidden", ctx, mock.AnythingOfType("int")).Return([]domain.Item{
		{ID: uuid.New(), Title: "Hidden listing", CreatedAt: now.Add(-2 * time.Hour)},
	}, nil).Once()

	activities, err := svc.Activity(ctx, 50)

	assert.NoError(t, err)
	assert.Len(t, activities, 3)
	// Newest first.
	assert.Equal(t, "report_filed", activities[0].Type)
	assert.Equal(t, "claim_pending", activities[1].Type)
	assert.Equal(t, "item_auto_hidden", activities[2].Type)
}
