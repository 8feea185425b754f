package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"-" db:"id"`
	PublicID     string     `json:"public_id" db:"public_id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Image        string     `json:"image" db:"image"`
	Role         string     `json:"role" db:"role"`
	Hostel       *string    `json:"hostel,omitempty" db:"hostel"`
	WarningCount int        `json:"warning_count" db:"warning_count"`
	IsBanned     bool       `json:"is_banned" db:"is_banned"`
	BanReason    *string    `json:"ban_reason,omitempty" db:"ban_reason"`
	BanUntil     *time.Time `json:"ban_until,omitempty" db:"ban_until"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type Hostel string

const (
	HostelBoys  Hostel = "boys"
	HostelGirls Hostel = "girls"
)

func (h Hostel) IsValid() bool {
	return h == HostelBoys || h == HostelGirls
}

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}

// BanActive reports whether the user is currently locked out. A nil BanUntil
// on a banned user means the ban is indefinite.
func (u *User) BanActive(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if u.BanUntil == nil {
		return true
	}
	return u.BanUntil.After(now)
}

// PublicProfile is the subset of a user shown on profile pages.
type PublicProfile struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type GoogleAuthInput struct {
	IDToken string `json:"id_token"`
}

type RefreshTokenInput struct {
	Token string `json:"token"`
}

type SetHostelInput struct {
	Hostel Hostel `json:"hostel"`
}

type ModerateUserInput struct {
	Action  string  `json:"action"`
	Reason  *string `json:"reason,omitempty"`
	BanDays *int    `json:"ban_days,omitempty"`
}

const (
	UserActionWarn    = "warn"
	UserActionTempBan = "temp_ban"
	UserActionPermBan = "perm_ban"
	UserActionUnban   = "unban"
)
