package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"-" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	ItemID    *uuid.UUID       `json:"item_id,omitempty" db:"item_id"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifClaimCreated   NotificationType = "claim_created"
	NotifClaimApproved  NotificationType = "claim_approved"
	NotifClaimRejected  NotificationType = "claim_rejected"
	NotifItemAutoHidden NotificationType = "item_auto_hidden"
)
