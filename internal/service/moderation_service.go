package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

// ModerationService is the admin surface: dashboard statistics, the activity
// feed, claim oversight and item/user moderation actions. Admin moderation
// operates independently of the report threshold.
type ModerationService interface {
	Stats(ctx context.Context) (*domain.OverviewStats, error)
	Activity(ctx context.Context, limit int) ([]domain.ActivityItem, error)
	Claims(ctx context.Context, status *domain.ResolutionStatus, limit int) ([]domain.ClaimDetail, error)
	Users(ctx context.Context) ([]domain.UserDetail, error)
	ReportedItems(ctx context.Context) ([]domain.ReportedItem, error)
	ModerateItem(ctx context.Context, admin *domain.User, itemID uuid.UUID, input domain.ModerateItemInput) error
	ModerateUser(ctx context.Context, admin *domain.User, publicID string, input domain.ModerateUserInput) error
}

type moderationService struct {
	userRepo       repository.UserRepository
	itemRepo       repository.ItemRepository
	resolutionRepo repository.ResolutionRepository
	reportRepo     repository.ReportRepository
	storage        StorageService
}

func NewModerationService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	resolutionRepo repository.ResolutionRepository,
	reportRepo repository.ReportRepository,
	storage StorageService,
) ModerationService {
	return &moderationService{
		userRepo:       userRepo,
		itemRepo:       itemRepo,
		resolutionRepo: resolutionRepo,
		reportRepo:     reportRepo,
		storage:        storage,
	}
}

func (s *moderationService) Stats(ctx context.Context) (*domain.OverviewStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats := &domain.OverviewStats{}
	var err error

	if stats.TotalItems, err = s.itemRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.ItemsCurrentMonth, err = s.itemRepo.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}
	if stats.ClaimsApprovedCurrentMonth, err = s.resolutionRepo.CountDecidedSince(ctx, domain.ResolutionApproved, monthStart); err != nil {
		return nil, err
	}
	if stats.ClaimsRejectedCurrentMonth, err = s.resolutionRepo.CountDecidedSince(ctx, domain.ResolutionRejected, monthStart); err != nil {
		return nil, err
	}
	if stats.ClaimsPending, err = s.resolutionRepo.CountByStatus(ctx, domain.ResolutionPending); err != nil {
		return nil, err
	}
	if stats.ActiveReports, err = s.reportRepo.CountByStatus(ctx, domain.ReportPending); err != nil {
		return nil, err
	}
	if stats.ReportsCurrentMonth, err = s.reportRepo.CountCreatedSince(ctx, monthStart); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *moderationService) Activity(ctx context.Context, limit int) ([]domain.ActivityItem, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	claimLimit := max(5, limit/2)
	reportLimit := max(5, limit/2)
	systemLimit := min(5, limit)

	activities := []domain.ActivityItem{}

	claims, err := s.resolutionRepo.ListRecent(ctx, claimLimit)
	if err != nil {
		return nil, err
	}
	for _, c := range claims {
		ts := c.CreatedAt
		if c.DecidedAt != nil {
			ts = *c.DecidedAt
		}
		activities = append(activities, domain.ActivityItem{
			ID:          c.ID.String(),
			Type:        "claim_" + string(c.Status),
			Description: fmt.Sprintf("%s claimed '%s' - %s", c.ClaimerName, c.ItemTitle, claimStatusLabel(c.Status)),
			Timestamp:   ts,
			Metadata: map[string]string{
				"item_id":       c.ItemID.String(),
				"claimer_id":    c.ClaimerPublicID,
				"resolution_id": c.ID.String(),
			},
		})
	}

	reports, err := s.reportRepo.ListRecent(ctx, reportLimit)
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		activities = append(activities, domain.ActivityItem{
			ID:          r.ID.String(),
			Type:        "report_filed",
			Description: fmt.Sprintf("%s reported '%s' - %s", r.ReporterName, r.ItemTitle, r.Reason),
			Timestamp:   r.CreatedAt,
			Metadata: map[string]string{
				"item_id":     r.ItemID.String(),
				"reporter_id": r.ReporterPublicID,
				"reason":      string(r.Reason),
			},
		})
	}

	hidden, err := s.itemRepo.ListAutoHidden(ctx, systemLimit)
	if err != nil {
		return nil, err
	}
	for _, item := range hidden {
		activities = append(activities, domain.ActivityItem{
			ID:          item.ID.String(),
			Type:        "item_auto_hidden",
			Description: fmt.Sprintf("Item '%s' was auto-hidden due to multiple reports", item.Title),
			Timestamp:   item.CreatedAt,
			Metadata:    map[string]string{"item_id": item.ID.String()},
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (s *moderationService) Claims(ctx context.Context, status *domain.ResolutionStatus, limit int) ([]domain.ClaimDetail, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.resolutionRepo.ListDetails(ctx, status, limit)
}

func (s *moderationService) Users(ctx context.Context) ([]domain.UserDetail, error) {
	return s.userRepo.ListWithStats(ctx)
}

func (s *moderationService) ReportedItems(ctx context.Context) ([]domain.ReportedItem, error) {
	items, err := s.reportRepo.ListReportedItems(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		reports, err := s.reportRepo.ListByItem(ctx, items[i].ItemID)
		if err != nil {
			return nil, err
		}
		items[i].Reports = reports
	}
	return items, nil
}

func (s *moderationService) ModerateItem(ctx context.Context, admin *domain.User, itemID uuid.UUID, input domain.ModerateItemInput) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	switch input.Action {
	case domain.ItemActionHide:
		reason := domain.HiddenReasonAdmin
		if input.Reason != nil && *input.Reason != "" {
			reason = *input.Reason
		}
		_, err := s.itemRepo.SetHidden(ctx, itemID, reason)
		return err

	case domain.ItemActionRestore:
		return s.itemRepo.Restore(ctx, itemID, admin.ID)

	case domain.ItemActionDelete:
		if err := s.itemRepo.DeleteCascade(ctx, itemID); err != nil {
			return err
		}
		if err := s.storage.Remove(ctx, item.Image); err != nil {
			log.Printf("Failed to remove image %s: %v", item.Image, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: invalid action %q", ErrInvalidInput, input.Action)
	}
}

func (s *moderationService) ModerateUser(ctx context.Context, admin *domain.User, publicID string, input domain.ModerateUserInput) error {
	user, err := s.userRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	switch input.Action {
	case domain.UserActionWarn:
		user.WarningCount++

	case domain.UserActionTempBan:
		user.IsBanned = true
		user.BanReason = moderationReason(input.Reason, "Temporary ban by admin")
		days := 7
		if input.BanDays != nil && *input.BanDays > 0 {
			days = *input.BanDays
		}
		until := time.Now().UTC().AddDate(0, 0, days)
		user.BanUntil = &until

	case domain.UserActionPermBan:
		user.IsBanned = true
		user.BanReason = moderationReason(input.Reason, "Permanently banned by admin")
		user.BanUntil = nil

	case domain.UserActionUnban:
		user.IsBanned = false
		user.BanReason = nil
		user.BanUntil = nil

	default:
		return fmt.Errorf("%w: invalid action %q", ErrInvalidInput, input.Action)
	}

	return s.userRepo.UpdateModeration(ctx, user)
}

func claimStatusLabel(status domain.ResolutionStatus) string {
	switch status {
	case domain.ResolutionApproved:
		return "Approved"
	case domain.ResolutionRejected:
		return "Rejected"
	default:
		return "Pending Review"
	}
}

func moderationReason(reason *string, fallback string) *string {
	if reason != nil && *reason != "" {
		return reason
	}
	return &fallback
}
