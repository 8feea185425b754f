package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lostfound-backend/internal/domain"
)

type ResolutionRepository interface {
	CreateClaim(ctx context.Context, res *domain.Resolution, ownerNotif *domain.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resolution, error)
	GetPendingByItem(ctx context.Context, itemID uuid.UUID) (*domain.Resolution, error)
	HasActiveForItem(ctx context.Context, itemID uuid.UUID) (bool, error)
	Decide(ctx context.Context, res *domain.Resolution, claimantNotif *domain.Notification) error
	ListDetails(ctx context.Context, status *domain.ResolutionStatus, limit int) ([]domain.ClaimDetail, error)
	ListRecent(ctx context.Context, limit int) ([]domain.RecentClaim, error)
	CountByStatus(ctx context.Context, status domain.ResolutionStatus) (int64, error)
	CountDecidedSince(ctx context.Context, status domain.ResolutionStatus, since time.Time) (int64, error)
}

type resolutionRepository struct {
	db *sqlx.DB
}

func NewResolutionRepository(db *sqlx.DB) ResolutionRepository {
	return &resolutionRepository{db: db}
}

// CreateClaim inserts a pending resolution together with the owner's
// notification. The item row is locked for the duration of the transaction so
// the approved-exclusivity and duplicate-pending checks cannot race with a
// concurrent claim on the same item.
func (r *resolutionRepository) CreateClaim(ctx context.Context, res *domain.Resolution, ownerNotif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var itemID uuid.UUID
	if err := tx.GetContext(ctx, &itemID,
		`SELECT id FROM items WHERE id = $1 FOR UPDATE`, res.FoundItemID); err != nil {
		return err
	}

	var approved bool
	if err := tx.GetContext(ctx, &approved,
		`SELECT EXISTS(SELECT 1 FROM resolutions WHERE found_item_id = $1 AND status = $2)`,
		res.FoundItemID, domain.ResolutionApproved); err != nil {
		return err
	}
	if approved {
		return ErrItemResolved
	}

	var pending bool
	if err := tx.GetContext(ctx, &pending,
		`SELECT EXISTS(SELECT 1 FROM resolutions WHERE found_item_id = $1 AND claimant_id = $2 AND status = $3)`,
		res.FoundItemID, res.ClaimantID, domain.ResolutionPending); err != nil {
		return err
	}
	if pending {
		return ErrDuplicateClaim
	}

	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO resolutions (id, found_item_id, claimant_id, status, claim_description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		res.ID, res.FoundItemID, res.ClaimantID, res.Status, res.ClaimDescription,
	).Scan(&res.CreatedAt); err != nil {
		return err
	}

	if err := insertNotificationTx(ctx, tx, ownerNotif); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *resolutionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resolution, error) {
	var res domain.Resolution
	query := `SELECT * FROM resolutions WHERE id = $1`

	err := r.db.GetContext(ctx, &res, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resolutionRepository) GetPendingByItem(ctx context.Context, itemID uuid.UUID) (*domain.Resolution, error) {
	var res domain.Resolution
	query := `SELECT * FROM resolutions WHERE found_item_id = $1 AND status = $2`

	err := r.db.GetContext(ctx, &res, query, itemID, domain.ResolutionPending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *resolutionRepository) HasActiveForItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var active bool
	query := `SELECT EXISTS(SELECT 1 FROM resolutions WHERE found_item_id = $1 AND status IN ($2, $3))`

	err := r.db.GetContext(ctx, &active, query, itemID, domain.ResolutionPending, domain.ResolutionApproved)
	return active, err
}

// Decide applies a pending -> approved/rejected transition and inserts the
// claimant's notification atomically. The conditional update closes the race
// between two concurrent decisions: only one can see status = pending.
func (r *resolutionRepository) Decide(ctx context.Context, res *domain.Resolution, claimantNotif *domain.Notification) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE resolutions
		 SET status = $2, rejection_reason = $3, decided_at = $4
		 WHERE id = $1 AND status = $5`,
		res.ID, res.Status, res.RejectionReason, res.DecidedAt, domain.ResolutionPending)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClaimDecided
	}

	if err := insertNotificationTx(ctx, tx, claimantNotif); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *resolutionRepository) ListDetails(ctx context.Context, status *domain.ResolutionStatus, limit int) ([]domain.ClaimDetail, error) {
	claims := []domain.ClaimDetail{}

	query := `
		SELECT r.id, i.id AS item_id, i.title AS item_title,
		       o.name AS item_owner_name, o.public_id AS item_owner_id,
		       c.name AS claimer_name, c.public_id AS claimer_id, c.email AS claimer_email,
		       r.status, r.claim_description, r.created_at, r.decided_at
		FROM resolutions r
		JOIN items i ON i.id = r.found_item_id
		JOIN users c ON c.id = r.claimant_id
		JOIN users o ON o.id = i.user_id`
	args := []interface{}{}

	if status != nil {
		args = append(args, *status)
		query += ` WHERE r.status = $1`
	}
	args = append(args, limit)
	if status != nil {
		query += ` ORDER BY r.created_at DESC LIMIT $2`
	} else {
		query += ` ORDER BY r.created_at DESC LIMIT $1`
	}

	err := r.db.SelectContext(ctx, &claims, query, args...)
	return claims, err
}

func (r *resolutionRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentClaim, error) {
	claims := []domain.RecentClaim{}
	query := `
		SELECT r.id, i.id AS item_id, i.title AS item_title,
		       c.name AS claimer_name, c.public_id AS claimer_public_id,
		       r.status, r.created_at, r.decided_at
		FROM resolutions r
		JOIN items i ON i.id = r.found_item_id
		JOIN users c ON c.id = r.claimant_id
		ORDER BY r.created_at DESC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &claims, query, limit)
	return claims, err
}

func (r *resolutionRepository) CountByStatus(ctx context.Context, status domain.ResolutionStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM resolutions WHERE status = $1`, status)
	return count, err
}

func (r *resolutionRepository) CountDecidedSince(ctx context.Context, status domain.ResolutionStatus, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM resolutions WHERE status = $1 AND decided_at >= $2`, status, since)
	return count, err
}

func insertNotificationTx(ctx context.Context, tx *sqlx.Tx, notif *domain.Notification) error {
	return tx.QueryRowxContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, item_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message, notif.ItemID,
	).Scan(&notif.CreatedAt)
}
