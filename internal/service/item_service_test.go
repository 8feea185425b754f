package service_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/mocks"
	"lostfound-backend/internal/repository"
	"lostfound-backend/internal/service"
)

func newItemFixture() (*mocks.ItemRepository, *mocks.UserRepository, *mocks.ResolutionRepository, *mocks.StorageService, service.ItemService) {
	itemRepo := new(mocks.ItemRepository)
	userRepo := new(mocks.UserRepository)
	resolutionRepo := new(mocks.ResolutionRepository)
	storage := new(mocks.StorageService)
	svc := service.NewItemService(itemRepo, userRepo, resolutionRepo, storage)
	return itemRepo, userRepo, resolutionRepo, storage, svc
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode fixture image: %v", err)
	}
	return buf.Bytes()
}

func validCreateInput() domain.CreateItemInput {
	return domain.CreateItemInput{
		Type:        domain.TypeFound,
		Title:       "Black wallet",
		Description: "Found a black leather wallet near the cafeteria entrance.",
		Category:    "keys-wallets",
		Date:        time.Now().UTC().Format(time.RFC3339),
		Location:    "Main cafeteria",
		Visibility:  domain.VisibilityPublic,
	}
}

func TestItemService_Create(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: uuid.New(), PublicID: "owner-sub", Name: "Finder"}

	t.Run("Success", func(t *testing.T) {
		itemRepo, _, _, storage, svc := newItemFixture()

		storage.On("Upload", ctx, mock.Anything, "jpg", "image/jpeg", "photo.jpg").
			Return("uploads/photo-1700000000.jpg", nil).Once()
		itemRepo.On("Create", ctx, mock.MatchedBy(func(i *domain.Item) bool {
			return i.UserID == owner.ID && i.Image == "uploads/photo-1700000000.jpg"
		})).Return(nil).Once()
		storage.On("SignedURL", ctx, "uploads/photo-1700000000.jpg").
			Return("https://cdn.example/signed", nil).Once()

		item, err := svc.Create(ctx, owner, validCreateInput(), jpegBytes(t, 100, 80), "photo.jpg")

		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example/signed", item.ImageURL)
		assert.Equal(t, owner.PublicID, item.ReporterPublicID)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Orphan Cleanup On Insert Failure", func(t *testing.T) {
		itemRepo, _, _, storage, svc := newItemFixture()

		storage.On("Upload", ctx, mock.Anything, "jpg", "image/jpeg", "photo.jpg").
			Return("uploads/photo-1700000000.jpg", nil).Once()
		itemRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()
		storage.On("Remove", ctx, "uploads/photo-1700000000.jpg").Return(nil).Once()

		_, err := svc.Create(ctx, owner, validCreateInput(), jpegBytes(t, 100, 80), "photo.jpg")

		assert.Error(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("Title Too Short", func(t *testing.T) {
		_, _, _, _, svc := newItemFixture()

		input := validCreateInput()
		input.Title = "ab"

		_, err := svc.Create(ctx, owner, input, jpegBytes(t, 100, 80), "photo.jpg")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		_, _, _, _, svc := newItemFixture()

		input := validCreateInput()
		input.Category = "bicycles"

		_, err := svc.Create(ctx, owner, input, jpegBytes(t, 100, 80), "photo.jpg")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Missing Image", func(t *testing.T) {
		_, _, _, _, svc := newItemFixture()

		_, err := svc.Create(ctx, owner, validCreateInput(), nil, "photo.jpg")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("Non Image Rejected", func(t *testing.T) {
		_, _, _, _, svc := newItemFixture()

		_, err := svc.Create(ctx, owner, validCreateInput(), []byte("not an image at all"), "photo.jpg")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestItemService_Get(t *testing.T) {
	ctx := context.Background()

	ownerID := uuid.New()
	hostel := string(domain.HostelBoys)

	boysItem := &domain.Item{
		ID:         uuid.New(),
		UserID:     ownerID,
		Title:      "Hostel room key",
		Visibility: domain.VisibilityBoys,
	}

	t.Run("Anonymous Cannot See Hostel Item", func(t *testing.T) {
		itemRepo, _, _, _, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, boysItem.ID).Return(boysItem, nil).Once()

		_, err := svc.Get(ctx, nil, boysItem.ID)

		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})

	t.Run("Matching Hostel Sees Item", func(t *testing.T) {
		itemRepo, userRepo, _, _, svc := newItemFixture()

		viewer := &domain.User{ID: uuid.New(), Hostel: &hostel}
		itemRepo.On("GetByID", ctx, boysItem.ID).Return(boysItem, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).
			Return(&domain.User{ID: ownerID, Image: "https://avatar"}, nil).Once()

		detail, err := svc.Get(ctx, viewer, boysItem.ID)

		assert.NoError(t, err)
		assert.Equal(t, "https://avatar", detail.Reporter.Image)
	})

	t.Run("Owner Sees Hidden Item", func(t *testing.T) {
		itemRepo, userRepo, _, _, svc := newItemFixture()

		hidden := &domain.Item{
			ID:         uuid.New(),
			UserID:     ownerID,
			Visibility: domain.VisibilityPublic,
			IsHidden:   true,
		}
		owner := &domain.User{ID: ownerID}
		itemRepo.On("GetByID", ctx, hidden.ID).Return(hidden, nil).Once()
		userRepo.On("GetByID", ctx, ownerID).Return(owner, nil).Once()

		_, err := svc.Get(ctx, owner, hidden.ID)

		assert.NoError(t, err)
	})

	t.Run("Hidden Item Absent For Others", func(t *testing.T) {
		itemRepo, _, _, _, svc := newItemFixture()

		hidden := &domain.Item{
			ID:         uuid.New(),
			UserID:     ownerID,
			Visibility: domain.VisibilityPublic,
			IsHidden:   true,
		}
		itemRepo.On("GetByID", ctx, hidden.ID).Return(hidden, nil).Once()

		_, err := svc.Get(ctx, &domain.User{ID: uuid.New()}, hidden.ID)

		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})
}

func TestItemService_Feed(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous Scope Is Public Only", func(t *testing.T) {
		itemRepo, _, _, _, svc := newItemFixture()

		itemRepo.On("List", ctx, mock.MatchedBy(func(f repository.ItemFilter) bool {
			return len(f.Visibilities) == 1 && f.Visibilities[0] == domain.VisibilityPublic
		})).Return([]domain.Item{}, nil).Once()

		feed, err := svc.Feed(ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, feed.LostItems)
		assert.Empty(t, feed.FoundItems)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Hostel Widens Scope", func(t *testing.T) {
		itemRepo, _, _, _, svc := newItemFixture()

		hostel := string(domain.HostelGirls)
		viewer := &domain.User{ID: uuid.New(), Hostel: &hostel}

		itemRepo.On("List", ctx, mock.MatchedBy(func(f repository.ItemFilter) bool {
			return len(f.Visibilities) == 2 && f.Visibilities[1] == domain.VisibilityGirls
		})).Return([]domain.Item{
			{ID: uuid.New(), Type: domain.TypeLost},
			{ID: uuid.New(), Type: domain.TypeFound},
		}, nil).Once()

		feed, err := svc.Feed(ctx, viewer)

		assert.NoError(t, err)
		assert.Len(t, feed.LostItems, 1)
		assert.Len(t, feed.FoundItems, 1)
	})
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()

	owner := &domain.User{ID: uuid.New()}
	item := &domain.Item{
		ID:         uuid.New(),
		UserID:     owner.ID,
		Title:      "Black wallet",
		Visibility: domain.VisibilityPublic,
	}

	updateInput := domain.UpdateItemInput{
		Title:       "Brown wallet",
		Description: "Found a brown leather wallet near the cafeteria entrance.",
		Category:    "keys-wallets",
		Date:        time.Now().UTC().Format(time.RFC3339),
		Location:    "Main cafeteria",
		Visibility:  domain.VisibilityPublic,
	}

	t.Run("Blocked While Claim Active", func(t *testing.T) {
		itemRepo, _, resolutionRepo, _, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		resolutionRepo.On("HasActiveForItem", ctx, item.ID).Return(true, nil).Once()

		_, err := svc.Update(ctx, owner, item.ID, updateInput)

		assert.ErrorIs(t, err, service.ErrActiveClaim)
	})

	t.Run("Allowed After Claim Rejected", func(t *testing.T) {
		itemRepo, _, resolutionRepo, _, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		resolutionRepo.On("HasActiveForItem", ctx, item.ID).Return(false, nil).Once()
		itemRepo.On("Update", ctx, mock.MatchedBy(func(i *domain.Item) bool {
			return i.Title == "Brown wallet"
		})).Return(nil).Once()

		updated, err := svc.Update(ctx, owner, item.ID, updateInput)

		assert.NoError(t, err)
		assert.Equal(t, "Brown wallet", updated.Title)
	})

	t.Run("Not Owner", func(t *testing.T) {
		itemRepo, _, _, _, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()

		_, err := svc.Update(ctx, &domain.User{ID: uuid.New()}, item.ID, updateInput)

		assert.ErrorIs(t, err, service.ErrNotOwner)
	})
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()

	owner := &domain.User{ID: uuid.New()}
	item := &domain.Item{
		ID:     uuid.New(),
		UserID: owner.ID,
		Image:  "uploads/photo-1700000000.jpg",
	}

	t.Run("Success Removes Image", func(t *testing.T) {
		itemRepo, _, resolutionRepo, storage, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		resolutionRepo.On("HasActiveForItem", ctx, item.ID).Return(false, nil).Once()
		itemRepo.On("DeleteCascade", ctx, item.ID).Return(nil).Once()
		storage.On("Remove", ctx, item.Image).Return(nil).Once()

		err := svc.Delete(ctx, owner, item.ID)

		assert.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("Storage Failure Not Fatal", func(t *testing.T) {
		itemRepo, _, resolutionRepo, storage, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		resolutionRepo.On("HasActiveForItem", ctx, item.ID).Return(false, nil).Once()
		itemRepo.On("DeleteCascade", ctx, item.ID).Return(nil).Once()
		storage.On("Remove", ctx, item.Image).Return(assert.AnError).Once()

		err := svc.Delete(ctx, owner, item.ID)

		assert.NoError(t, err)
	})

	t.Run("Blocked While Claim Active", func(t *testing.T) {
		itemRepo, _, resolutionRepo, _, svc := newItemFixture()

		itemRepo.On("GetByID", ctx, item.ID).Return(item, nil).Once()
		resolutionRepo.On("HasActiveForItem", ctx, item.ID).Return(true, nil).Once()

		err := svc.Delete(ctx, owner, item.ID)

		assert.ErrorIs(t, err, service.ErrActiveClaim)
	})
}
