package domain

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	UserID     uuid.UUID    `json:"-" db:"user_id"`
	ItemID     uuid.UUID    `json:"item_id" db:"item_id"`
	Reason     ReportReason `json:"reason" db:"reason"`
	Status     ReportStatus `json:"status" db:"status"`
	ReviewedBy *uuid.UUID   `json:"-" db:"reviewed_by"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}

type ReportReason string

const (
	ReasonSpam          ReportReason = "spam"
	ReasonInappropriate ReportReason = "inappropriate"
	ReasonHarassment    ReportReason = "harassment"
	ReasonFake          ReportReason = "fake"
	ReasonOther         ReportReason = "other"
)

func (r ReportReason) IsValid() bool {
	switch r {
	case ReasonSpam, ReasonInappropriate, ReasonHarassment, ReasonFake, ReasonOther:
		return true
	default:
		return false
	}
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportDismissed ReportStatus = "dismissed"
)

// AutoHideThreshold is the report count at which an item is concealed
// automatically.
const AutoHideThreshold = 5

type CreateReportInput struct {
	Reason ReportReason `json:"reason"`
}

type ModerateItemInput struct {
	Action string  `json:"action"`
	Reason *string `json:"reason,omitempty"`
}

const (
	ItemActionHide    = "hide"
	ItemActionRestore = "restore"
	ItemActionDelete  = "delete"
)

// ReportDetail is a report row joined with the reporter's name, shown to
// admins on the reported-items board.
type ReportDetail struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	ReporterName string       `json:"reporter_name" db:"reporter_name"`
	Reason       ReportReason `json:"reason" db:"reason"`
	Status       ReportStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// ReportedItem aggregates an item with its accumulated reports.
type ReportedItem struct {
	ItemID        uuid.UUID      `json:"item_id" db:"item_id"`
	ItemTitle     string         `json:"item_title" db:"item_title"`
	ItemType      ItemType       `json:"item_type" db:"item_type"`
	ItemOwnerName string         `json:"item_owner_name" db:"item_owner_name"`
	ItemOwnerID   string         `json:"item_owner_id" db:"item_owner_id"`
	ReportCount   int64          `json:"report_count" db:"report_count"`
	IsHidden      bool           `json:"is_hidden" db:"is_hidden"`
	HiddenReason  *string        `json:"hidden_reason,omitempty" db:"hidden_reason"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	Reports       []ReportDetail `json:"reports" db:"-"`
}
