package domain

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"-" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	Category     string     `json:"category" db:"category"`
	Location     string     `json:"location" db:"location"`
	Date         time.Time  `json:"date" db:"date"`
	Type         ItemType   `json:"type" db:"type"`
	Visibility   Visibility `json:"visibility" db:"visibility"`
	Image        string     `json:"-" db:"image"`
	ImageURL     string     `json:"image" db:"-"`
	IsHidden     bool       `json:"is_hidden" db:"is_hidden"`
	HiddenReason *string    `json:"hidden_reason,omitempty" db:"hidden_reason"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	// Joined reporter columns, filled by list/detail queries.
	ReporterPublicID string `json:"reporter_public_id" db:"reporter_public_id"`
	ReporterName     string `json:"reporter_name" db:"reporter_name"`
}

type ItemType string

const (
	TypeLost  ItemType = "lost"
	TypeFound ItemType = "found"
)

func (t ItemType) IsValid() bool {
	return t == TypeLost || t == TypeFound
}

type Visibility string

const (
	VisibilityPublic Visibility = "public"
	VisibilityBoys   Visibility = "boys"
	VisibilityGirls  Visibility = "girls"
)

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPublic, VisibilityBoys, VisibilityGirls:
		return true
	default:
		return false
	}
}

var ItemCategories = map[string]bool{
	"electronics":  true,
	"clothing":     true,
	"bags":         true,
	"keys-wallets": true,
	"documents":    true,
	"others":       true,
}

const HiddenReasonAutoReport = "auto_report_threshold"
const HiddenReasonAdmin = "admin_moderation"

// CreateItemInput carries the multipart form fields of an item post. The
// image file travels separately as a byte slice.
type CreateItemInput struct {
	Type        ItemType
	Title       string
	Description string
	Category    string
	Date        string
	Location    string
	Visibility  Visibility
}

type UpdateItemInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	Location    string     `json:"location"`
	Visibility  Visibility `json:"visibility"`
}

// ItemDetail is the detail-fetch response: the item plus the poster's avatar.
type ItemDetail struct {
	Item     *Item        `json:"item"`
	Reporter ItemReporter `json:"reporter"`
}

type ItemReporter struct {
	Image string `json:"image"`
}

// ItemFeed groups a listing into the two boards the client renders.
type ItemFeed struct {
	LostItems  []Item `json:"lost_items"`
	FoundItems []Item `json:"found_items"`
}
