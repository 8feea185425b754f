package domain

import (
	"time"

	"github.com/google/uuid"
)

type Resolution struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	FoundItemID      uuid.UUID        `json:"found_item_id" db:"found_item_id"`
	ClaimantID       uuid.UUID        `json:"-" db:"claimant_id"`
	Status           ResolutionStatus `json:"status" db:"status"`
	ClaimDescription string           `json:"claim_description" db:"claim_description"`
	RejectionReason  *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	DecidedAt        *time.Time       `json:"decided_at,omitempty" db:"decided_at"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
}

type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "pending"
	ResolutionApproved ResolutionStatus = "approved"
	ResolutionRejected ResolutionStatus = "rejected"
)

func (s ResolutionStatus) IsValid() bool {
	return s == ResolutionPending || s == ResolutionApproved || s == ResolutionRejected
}

type CreateResolutionInput struct {
	FoundItemID      uuid.UUID `json:"found_item_id"`
	ClaimDescription string    `json:"claim_description"`
}

type RejectResolutionInput struct {
	RejectionReason string `json:"rejection_reason"`
}

// ItemSummary is the trimmed item view attached to resolution responses.
// It deliberately omits type, visibility and the owner reference.
type ItemSummary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	ImageURL    string    `json:"image"`
}

// FinderContact is revealed to the claimant only after approval.
type FinderContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ResolutionView is the claimant-facing read of a claim.
type ResolutionView struct {
	Resolution    *Resolution    `json:"resolution"`
	Item          *ItemSummary   `json:"item"`
	FinderContact *FinderContact `json:"finder_contact,omitempty"`
}

// ClaimantInfo is the claimant card shown to the finder while reviewing.
type ClaimantInfo struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ReviewView is the owner-facing read of the pending claim on their item.
type ReviewView struct {
	Item       *ItemSummary  `json:"item"`
	Resolution *Resolution   `json:"resolution"`
	Claimant   *ClaimantInfo `json:"claimant,omitempty"`
}

// ClaimDetail is the admin moderation row, joined across resolution, item,
// claimant and owner.
type ClaimDetail struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	ItemID           uuid.UUID        `json:"item_id" db:"item_id"`
	ItemTitle        string           `json:"item_title" db:"item_title"`
	ItemOwnerName    string           `json:"item_owner_name" db:"item_owner_name"`
	ItemOwnerID      string           `json:"item_owner_id" db:"item_owner_id"`
	ClaimerName      string           `json:"claimer_name" db:"claimer_name"`
	ClaimerID        string           `json:"claimer_id" db:"claimer_id"`
	ClaimerEmail     string           `json:"claimer_email" db:"claimer_email"`
	Status           ResolutionStatus `json:"status" db:"status"`
	ClaimDescription string           `json:"claim_description" db:"claim_description"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	DecidedAt        *time.Time       `json:"decided_at,omitempty" db:"decided_at"`
}
