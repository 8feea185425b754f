package repository

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Sentinel errors for constraint and state violations surfaced by the
// transactional repository methods. Services translate these into the
// client-facing conflict responses.
var (
	ErrDuplicateReport = errors.New("item already reported by this user")
	ErrItemHidden      = errors.New("item is hidden")
	ErrItemResolved    = errors.New("item already has an approved claim")
	ErrDuplicateClaim  = errors.New("pending claim already exists for this user")
	ErrClaimDecided    = errors.New("claim has already been decided")
)

type Repositories struct {
	User         UserRepository
	Item         ItemRepository
	Resolution   ResolutionRepository
	Report       ReportRepository
	Notification NotificationRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Item:         NewItemRepository(db),
		Resolution:   NewResolutionRepository(db),
		Report:       NewReportRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
