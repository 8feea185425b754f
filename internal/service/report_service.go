package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"lostfound-backend/internal/domain"
	"lostfound-backend/internal/repository"
)

var ErrOwnReport = errors.New("cannot report your own item")

// ReportService files item reports and applies the auto-hide threshold.
type ReportService interface {
	File(ctx context.Context, reporter *domain.User, itemID uuid.UUID, reason domain.ReportReason) (bool, error)
}

type reportService struct {
	reportRepo repository.ReportRepository
	itemRepo   repository.ItemRepository
	notifSvc   NotificationService
}

func NewReportService(reportRepo repository.ReportRepository, itemRepo repository.ItemRepository, notifSvc NotificationService) ReportService {
	return &reportService{
		reportRepo: reportRepo,
		itemRepo:   itemRepo,
		notifSvc:   notifSvc,
	}
}

// File records the report and returns whether the item crossed the auto-hide
// threshold. Hidden or out-of-scope items read as absent to the reporter.
func (s *reportService) File(ctx context.Context, reporter *domain.User, itemID uuid.UUID, reason domain.ReportReason) (bool, error) {
	if !reason.IsValid() {
		return false, fmt.Errorf("%w: unknown report reason %q", ErrInvalidInput, reason)
	}

	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return false, err
	}
	if item == nil || item.IsHidden || !canView(item, reporter) {
		return false, ErrItemNotFound
	}
	if item.UserID == reporter.ID {
		return false, ErrOwnReport
	}

	report := &domain.Report{
		ID:     uuid.New(),
		UserID: reporter.ID,
		ItemID: item.ID,
		Reason: reason,
		Status: domain.ReportPending,
	}

	hideNotif := &domain.Notification{
		ID:      uuid.New(),
		UserID:  item.UserID,
		Type:    domain.NotifItemAutoHidden,
		Title:   "Your item has been hidden",
		Message: fmt.Sprintf("Your item '%s' was hidden automatically after multiple reports.", item.Title),
		ItemID:  &item.ID,
	}

	autoHidden, err := s.reportRepo.File(ctx, report, domain.AutoHideThreshold, hideNotif)
	if errors.Is(err, repository.ErrItemHidden) {
		// Lost the race with a concurrent hide; same outcome as absent.
		return false, ErrItemNotFound
	}
	if err != nil {
		return false, err
	}

	if autoHidden {
		s.notifSvc.InvalidateUnread(ctx, item.UserID)
	}
	return autoHidden, nil
}
