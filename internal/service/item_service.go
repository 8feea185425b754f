package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/imaging"
	"lostfound-backend/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrItemNotFound = errors.New("item not found")
	ErrNotOwner     = errors.New("not the item owner")
	ErrActiveClaim  = errors.New("item has an active claim")
)

// MaxUploadBytes caps raw image uploads at 5 MiB.
const MaxUploadBytes = 5 * 1024 * 1024

type ItemService interface {
	Create(ctx context.Context, owner *domain.User, input domain.CreateItemInput, imageData []byte, imageName string) (*domain.Item, error)
	Feed(ctx context.Context, viewer *domain.User) (*domain.ItemFeed, error)
	Get(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.ItemDetail, error)
	Update(ctx context.Context, caller *domain.User, id uuid.UUID, input domain.UpdateItemInput) (*domain.Item, error)
	Delete(ctx context.Context, caller *domain.User, id uuid.UUID) error
	FeedForUser(ctx context.Context, viewer *domain.User, target *domain.User) (*domain.ItemFeed, error)
}

type itemService struct {
	itemRepo       repository.ItemRepository
	userRepo       repository.UserRepository
	resolutionRepo repository.ResolutionRepository
	storage        StorageService
}

func NewItemService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	resolutionRepo repository.ResolutionRepository,
	storage StorageService,
) ItemService {
	return &itemService{
		itemRepo:       itemRepo,
		userRepo:       userRepo,
		resolutionRepo: resolutionRepo,
		storage:        storage,
	}
}

func (s *itemService) Create(ctx context.Context, owner *domain.User, input domain.CreateItemInput, imageData []byte, imageName string) (*domain.Item, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.Category = strings.TrimSpace(input.Category)

	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: item type must be lost or found", ErrInvalidInput)
	}
	date, err := validateItemFields(input.Title, input.Description, input.Category, input.Date, input.Location, input.Visibility)
	if err != nil {
		return nil, err
	}
	if len(imageData) == 0 {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if len(imageData) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: image exceeds 5MB limit", ErrInvalidInput)
	}

	processed, err := imaging.Process(imageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	key, err := s.storage.Upload(ctx, processed.Data, processed.Ext, processed.MIME, imageName)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Location:    input.Location,
		Date:        date,
		Type:        input.Type,
		Visibility:  input.Visibility,
		Image:       key,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		// Roll back the orphaned object so storage cannot drift from the DB.
		if rmErr := s.storage.Remove(ctx, key); rmErr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", key, rmErr)
		}
		return nil, err
	}

	item.ReporterPublicID = owner.PublicID
	item.ReporterName = owner.Name
	s.attachURL(ctx, item)
	return item, nil
}

func (s *itemService) Feed(ctx context.Context, viewer *domain.User) (*domain.ItemFeed, error) {
	items, err := s.itemRepo.List(ctx, repository.ItemFilter{
		Visibilities: visibilityScope(viewer),
	})
	if err != nil {
		return nil, err
	}
	return s.buildFeed(ctx, items), nil
}

func (s *itemService) Get(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.ItemDetail, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !canView(item, viewer) {
		return nil, ErrItemNotFound
	}

	reporter, err := s.userRepo.GetByID(ctx, item.UserID)
	if err != nil {
		return nil, err
	}

	s.attachURL(ctx, item)

	detail := &domain.ItemDetail{Item: item}
	if reporter != nil {
		detail.Reporter = domain.ItemReporter{Image: reporter.Image}
	}
	return detail, nil
}

func (s *itemService) Update(ctx context.Context, caller *domain.User, id uuid.UUID, input domain.UpdateItemInput) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.UserID != caller.ID {
		return nil, ErrNotOwner
	}

	active, err := s.resolutionRepo.HasActiveForItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrActiveClaim
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Location = strings.TrimSpace(input.Location)
	input.Category = strings.TrimSpace(input.Category)

	date, err := validateItemFields(input.Title, input.Description, input.Category, input.Date, input.Location, input.Visibility)
	if err != nil {
		return nil, err
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Category = input.Category
	item.Location = input.Location
	item.Date = date
	item.Visibility = input.Visibility

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.attachURL(ctx, item)
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, caller *domain.User, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	if item.UserID != caller.ID {
		return ErrNotOwner
	}

	active, err := s.resolutionRepo.HasActiveForItem(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return ErrActiveClaim
	}

	if err := s.itemRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, item.Image); err != nil {
		log.Printf("Failed to remove image %s: %v", item.Image, err)
	}
	return nil
}

// FeedForUser lists the target user's items as seen by viewer. The owner
// (and admins) see everything including hidden items.
func (s *itemService) FeedForUser(ctx context.Context, viewer *domain.User, target *domain.User) (*domain.ItemFeed, error) {
	filter := repository.ItemFilter{UserID: &target.ID}

	ownView := viewer != nil && (viewer.ID == target.ID || viewer.IsAdmin())
	if ownView {
		filter.IncludeHidden = true
	} else {
		filter.Visibilities = visibilityScope(viewer)
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.buildFeed(ctx, items), nil
}

func (s *itemService) buildFeed(ctx context.Context, items []domain.Item) *domain.ItemFeed {
	feed := &domain.ItemFeed{
		LostItems:  []domain.Item{},
		FoundItems: []domain.Item{},
	}
	for i := range items {
		s.attachURL(ctx, &items[i])
		if items[i].Type == domain.TypeLost {
			feed.LostItems = append(feed.LostItems, items[i])
		} else {
			feed.FoundItems = append(feed.FoundItems, items[i])
		}
	}
	return feed
}

// attachURL decorates the item with a signed image URL. URL generation is
// best effort: a storage hiccup leaves the field empty instead of failing
// the read.
func (s *itemService) attachURL(ctx context.Context, item *domain.Item) {
	if item.Image == "" {
		return
	}
	url, err := s.storage.SignedURL(ctx, item.Image)
	if err != nil {
		log.Printf("Failed to sign URL for %s: %v", item.Image, err)
		return
	}
	item.ImageURL = url
}

// visibilityScope returns the visibility values the viewer may see in
// listings. Anonymous callers and users without a hostel see public only.
func visibilityScope(viewer *domain.User) []domain.Visibility {
	scope := []domain.Visibility{domain.VisibilityPublic}
	if viewer != nil && viewer.Hostel != nil {
		scope = append(scope, domain.Visibility(*viewer.Hostel))
	}
	return scope
}

// canView applies the hidden and visibility gates for a direct fetch. The
// outcome is indistinguishable from absence for callers outside the scope.
func canView(item *domain.Item, viewer *domain.User) bool {
	if viewer != nil && (viewer.ID == item.UserID || viewer.IsAdmin()) {
		return true
	}
	if item.IsHidden {
		return false
	}
	if item.Visibility == domain.VisibilityPublic {
		return true
	}
	return viewer != nil && viewer.Hostel != nil && domain.Visibility(*viewer.Hostel) == item.Visibility
}

func validateItemFields(title, description, category, dateStr, location string, visibility domain.Visibility) (time.Time, error) {
	if len(title) < 3 || len(title) > 30 {
		return time.Time{}, fmt.Errorf("%w: title must be 3-30 characters", ErrInvalidInput)
	}
	if len(description) < 20 || len(description) > 280 {
		return time.Time{}, fmt.Errorf("%w: description must be 20-280 characters", ErrInvalidInput)
	}
	if !domain.ItemCategories[category] {
		return time.Time{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	if len(location) < 3 || len(location) > 30 {
		return time.Time{}, fmt.Errorf("%w: location must be 3-30 characters", ErrInvalidInput)
	}
	if !visibility.IsValid() {
		return time.Time{}, fmt.Errorf("%w: visibility must be public, boys or girls", ErrInvalidInput)
	}

	date, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date not parseable", ErrInvalidInput)
	}
	return date, nil
}
