package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

var (
	ErrResolutionNotFound = errors.New("resolution not found")
	ErrNoPendingClaim     = errors.New("no claim found for this item")
	ErrNotFoundItem       = errors.New("item is not a found item")
	ErrSelfClaim          = errors.New("cannot claim your own item")
	ErrNotClaimant        = errors.New("not the claimant of this resolution")
	ErrNotFinder          = errors.New("not the finder of this item")
)

// ResolutionService runs the claim workflow on found items: a non-owner
// submits a pending claim, the finder approves or rejects it, and approval
// reveals the finder's contact to the claimant.
type ResolutionService interface {
	Create(ctx context.Context, claimant *domain.User, input domain.CreateResolutionInput) (*domain.Resolution, error)
	Approve(ctx context.Context, caller *domain.User, resolutionID uuid.UUID) error
	Reject(ctx context.Context, caller *domain.User, resolutionID uuid.UUID, reason string) error
	GetForClaimant(ctx context.Context, caller *domain.User, resolutionID uuid.UUID) (*domain.ResolutionView, error)
	GetForReview(ctx context.Context, caller *domain.User, itemID uuid.UUID) (*domain.ReviewView, error)
}

type resolutionService struct {
	resolutionRepo repository.ResolutionRepository
	itemRepo       repository.ItemRepository
	userRepo       repository.UserRepository
	storage        StorageService
	emailSvc       EmailService
	notifSvc       NotificationService
}

func NewResolutionService(
	resolutionRepo repository.ResolutionRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	storage StorageService,
	emailSvc EmailService,
	notifSvc NotificationService,
) ResolutionService {
	return &resolutionService{
		resolutionRepo: resolutionRepo,
		itemRepo:       itemRepo,
		userRepo:       userRepo,
		storage:        storage,
		emailSvc:       emailSvc,
		notifSvc:       notifSvc,
	}
}

func (s *resolutionService) Create(ctx context.Context, claimant *domain.User, input domain.CreateResolutionInput) (*domain.Resolution, error) {
	if len(input.ClaimDescription) < 20 {
		return nil, fmt.Errorf("%w: claim description must be at least 20 characters", ErrInvalidInput)
	}

	item, err := s.itemRepo.GetByID(ctx, input.FoundItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !canView(item, claimant) {
		return nil, ErrItemNotFound
	}
	if item.Type != domain.TypeFound {
		return nil, ErrNotFoundItem
	}
	if item.UserID == claimant.ID {
		return nil, ErrSelfClaim
	}

	resolution := &domain.Resolution{
		ID:               uuid.New(),
		FoundItemID:      item.ID,
		ClaimantID:       claimant.ID,
		Status:           domain.ResolutionPending,
		ClaimDescription: input.ClaimDescription,
	}

	ownerNotif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  item.UserID,
		Type:    domain.NotifClaimCreated,
		Title:   "New claim received",
		Message: fmt.Sprintf("A user has submitted a claim for your found item '%s'.", item.Title),
		ItemID:  &item.ID,
	}

	// The repository runs the exclusivity checks, the insert and the owner
	// notification in one transaction.
	if err := s.resolutionRepo.CreateClaim(ctx, resolution, ownerNotif); err != nil {
		return nil, err
	}

	s.notifSvc.InvalidateUnread(ctx, item.UserID)
	return resolution, nil
}

func (s *resolutionService) Approve(ctx context.Context, caller *domain.User, resolutionID uuid.UUID) error {
	resolution, item, err := s.loadForDecision(ctx, caller, resolutionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	resolution.Status = domain.ResolutionApproved
	resolution.DecidedAt = &now

	claimantNotif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  resolution.ClaimantID,
		Type:    domain.NotifClaimApproved,
		Title:   "Your claim has been approved",
		Message: fmt.Sprintf("Your claim for the item '%s' has been approved by the finder.", item.Title),
		ItemID:  &item.ID,
	}

	if err := s.resolutionRepo.Decide(ctx, resolution, claimantNotif); err != nil {
		return err
	}

	s.notifSvc.InvalidateUnread(ctx, resolution.ClaimantID)
	s.emailClaimant(resolution.ClaimantID, item.Title, "")
	return nil
}

func (s *resolutionService) Reject(ctx context.Context, caller *domain.User, resolutionID uuid.UUID, reason string) error {
	if len(reason) < 20 || len(reason) > 280 {
		return fmt.Errorf("%w: rejection reason must be 20-280 characters", ErrInvalidInput)
	}

	resolution, item, err := s.loadForDecision(ctx, caller, resolutionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	resolution.Status = domain.ResolutionRejected
	resolution.RejectionReason = &reason
	resolution.DecidedAt = &now

	claimantNotif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  resolution.ClaimantID,
		Type:    domain.NotifClaimRejected,
		Title:   "Your claim has been rejected",
		Message: fmt.Sprintf("Your claim for the item '%s' has been rejected by the finder. Reason: %s", item.Title, reason),
		ItemID:  &item.ID,
	}

	if err := s.resolutionRepo.Decide(ctx, resolution, claimantNotif); err != nil {
		return err
	}

	s.notifSvc.InvalidateUnread(ctx, resolution.ClaimantID)
	s.emailClaimant(resolution.ClaimantID, item.Title, reason)
	return nil
}

func (s *resolutionService) GetForClaimant(ctx context.Context, caller *domain.User, resolutionID uuid.UUID) (*domain.ResolutionView, error) {
	resolution, err := s.resolutionRepo.GetByID(ctx, resolutionID)
	if err != nil {
		return nil, err
	}
	if resolution == nil {
		return nil, ErrResolutionNotFound
	}
	if resolution.ClaimantID != caller.ID {
		return nil, ErrNotClaimant
	}

	item, err := s.itemRepo.GetByID(ctx, resolution.FoundItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	view := &domain.ResolutionView{
		Resolution: resolution,
		Item:       s.itemSummary(ctx, item, true),
	}

	// Contact details are revealed if and only if the claim is approved.
	if resolution.Status == domain.ResolutionApproved {
		finder, err := s.userRepo.GetByID(ctx, item.UserID)
		if err != nil {
			return nil, err
		}
		if finder != nil {
			view.FinderContact = &domain.FinderContact{
				Name:  finder.Name,
				Email: finder.Email,
			}
		}
	}

	return view, nil
}

func (s *resolutionService) GetForReview(ctx context.Context, caller *domain.User, itemID uuid.UUID) (*domain.ReviewView, error) {
	resolution, err := s.resolutionRepo.GetPendingByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if resolution == nil {
		return nil, ErrNoPendingClaim
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if item.UserID != caller.ID {
		return nil, ErrNotFinder
	}

	view := &domain.ReviewView{
		Item:       s.itemSummary(ctx, item, false),
		Resolution: resolution,
	}
	if claimant, err := s.userRepo.GetByID(ctx, resolution.ClaimantID); err == nil && claimant != nil {
		view.Claimant = &domain.ClaimantInfo{Name: claimant.Name, Image: claimant.Image}
	}
	return view, nil
}

func (s *resolutionService) loadForDecision(ctx context.Context, caller *domain.User, resolutionID uuid.UUID) (*domain.Resolution, *domain.Item, error) {
	resolution, err := s.resolutionRepo.GetByID(ctx, resolutionID)
	if err != nil {
		return nil, nil, err
	}
	if resolution == nil {
		return nil, nil, ErrResolutionNotFound
	}

	item, err := s.itemRepo.GetByID(ctx, resolution.FoundItemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrItemNotFound
	}
	if item.UserID != caller.ID {
		return nil, nil, ErrNotFinder
	}

	return resolution, item, nil
}

func (s *resolutionService) itemSummary(ctx context.Context, item *domain.Item, withCategory bool) *domain.ItemSummary {
	summary := &domain.ItemSummary{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Location:    item.Location,
		Date:        item.Date,
	}
	if withCategory {
		summary.Category = item.Category
	}
	if item.Image != "" {
		url, err := s.storage.SignedURL(ctx, item.Image)
		if err != nil {
			log.Printf("Failed to sign URL for %s: %v", item.Image, err)
		} else {
			summary.ImageURL = url
		}
	}
	return summary
}

// emailClaimant delivers the decision email off the request path. Failures
// are logged only; the persisted notification already records the decision.
func (s *resolutionService) emailClaimant(claimantID uuid.UUID, itemTitle, rejectionReason string) {
	go func() {
		ctx := context.Background()
		claimant, err := s.userRepo.GetByID(ctx, claimantID)
		if err != nil || claimant == nil {
			return
		}

		if rejectionReason == "" {
			err = s.emailSvc.SendClaimApproved(ctx, claimant.Email, claimant.Name, itemTitle)
		} else {
			err = s.emailSvc.SendClaimRejected(ctx, claimant.Email, claimant.Name, itemTitle, rejectionReason)
		}
		if err != nil {
			log.Printf("Failed to send claim decision email to %s: %v", claimant.Email, err)
		}
	}()
}
