package domain

import (
	"time"

	"github.com/google/uuid"
)

// OverviewStats backs the admin dashboard header.
type OverviewStats struct {
	TotalItems                  int64 `json:"total_items"`
	ItemsCurrentMonth           int64 `json:"items_current_month"`
	ClaimsApprovedCurrentMonth  int64 `json:"claims_approved_current_month"`
	ClaimsRejectedCurrentMonth  int64 `json:"claims_rejected_current_month"`
	ClaimsPending               int64 `json:"claims_pending"`
	ActiveReports               int64 `json:"active_reports"`
	ReportsCurrentMonth         int64 `json:"reports_current_month"`
}

// ActivityItem is one row of the merged admin activity feed.
type ActivityItem struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata"`
}

// UserDetail is the admin user-management row.
type UserDetail struct {
	ID              uuid.UUID  `json:"-" db:"id"`
	PublicID        string     `json:"public_id" db:"public_id"`
	Name            string     `json:"name" db:"name"`
	Email           string     `json:"email" db:"email"`
	Image           string     `json:"image" db:"image"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	WarningCount    int        `json:"warning_count" db:"warning_count"`
	IsBanned        bool       `json:"is_banned" db:"is_banned"`
	BanReason       *string    `json:"ban_reason,omitempty" db:"ban_reason"`
	BanUntil        *time.Time `json:"ban_until,omitempty" db:"ban_until"`
	ItemsPosted     int64      `json:"items_posted" db:"items_posted"`
	ReportsReceived int64      `json:"reports_received" db:"reports_received"`
}

// RecentClaim feeds the activity list: a resolution joined with the item
// title and the claimant.
type RecentClaim struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	ItemID          uuid.UUID        `json:"item_id" db:"item_id"`
	ItemTitle       string           `json:"item_title" db:"item_title"`
	ClaimerName     string           `json:"claimer_name" db:"claimer_name"`
	ClaimerPublicID string           `json:"claimer_public_id" db:"claimer_public_id"`
	Status          ResolutionStatus `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	DecidedAt       *time.Time       `json:"decided_at" db:"decided_at"`
}

// RecentReport feeds the activity list: a report joined with the item title
// and the reporter.
type RecentReport struct {
	ID               uuid.UUID    `json:"id" db:"id"`
	ItemID           uuid.UUID    `json:"item_id" db:"item_id"`
	ItemTitle        string       `json:"item_title" db:"item_title"`
	ReporterName     string       `json:"reporter_name" db:"reporter_name"`
	ReporterPublicID string       `json:"reporter_public_id" db:"reporter_public_id"`
	Reason           ReportReason `json:"reason" db:"reason"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}
