package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"lostfound-backend/internal/domain"
)

// ItemFilter narrows listings. An empty Visibilities slice means no
// visibility filtering (owner and admin views).
type ItemFilter struct {
	Visibilities  []domain.Visibility
	UserID        *uuid.UUID
	IncludeHidden bool
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	SetHidden(ctx context.Context, id uuid.UUID, reason string) (bool, error)
	Restore(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	ListAutoHidden(ctx context.Context, limit int) ([]domain.Item, error)
	CountAll(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type itemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `
	i.id, i.user_id, i.title, i.description, i.category, i.location, i.date,
	i.type, i.visibility, i.image, i.is_hidden, i.hidden_reason, i.created_at,
	u.public_id AS reporter_public_id, u.name AS reporter_name`

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (id, user_id, title, description, category, location, date, type, visibility, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		item.ID, item.UserID, item.Title, item.Description, item.Category,
		item.Location, item.Date, item.Type, item.Visibility, item.Image,
	).Scan(&item.CreatedAt)
}

func (r *itemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.user_id WHERE i.id = $1`

	err := r.db.GetContext(ctx, &item, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]domain.Item, error) {
	items := []domain.Item{}

	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.user_id WHERE 1=1`
	args := []interface{}{}

	if !filter.IncludeHidden {
		query += ` AND i.is_hidden = false`
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += fmt.Sprintf(" AND i.user_id = $%d", len(args))
	}
	if len(filter.Visibilities) > 0 {
		vis := make([]string, len(filter.Visibilities))
		for i, v := range filter.Visibilities {
			vis[i] = string(v)
		}
		args = append(args, pq.Array(vis))
		query += fmt.Sprintf(" AND i.visibility = ANY($%d)", len(args))
	}
	query += ` ORDER BY i.created_at DESC`

	err := r.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items
		SET title = $2, description = $3, category = $4, location = $5, date = $6, visibility = $7
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.Category,
		item.Location, item.Date, item.Visibility,
	)
	return err
}

// SetHidden conceals the item unless it is already hidden; the conditional
// update guarantees a single transition even under concurrent moderation.
func (r *itemRepository) SetHidden(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	query := `UPDATE items SET is_hidden = true, hidden_reason = $2 WHERE id = $1 AND is_hidden = false`
	res, err := r.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// Restore clears the hidden flag and dismisses every report on the item in
// one transaction so moderation state cannot diverge.
func (r *itemRepository) Restore(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE items SET is_hidden = false, hidden_reason = NULL WHERE id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE reports SET status = $2, reviewed_by = $3, reviewed_at = NOW() WHERE item_id = $1`,
		id, domain.ReportDismissed, reviewerID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteCascade removes reports, then resolutions, then the item itself,
// children before parent.
func (r *itemRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE item_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resolutions WHERE found_item_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *itemRepository) ListAutoHidden(ctx context.Context, limit int) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `SELECT ` + itemColumns + `
		FROM items i JOIN users u ON u.id = i.user_id
		WHERE i.is_hidden = true AND i.hidden_reason = $1
		ORDER BY i.created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &items, query, domain.HiddenReasonAutoReport, limit)
	return items, err
}

func (r *itemRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM items`)
	return count, err
}

func (r *itemRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM items WHERE created_at >= $1`, since)
	return count, err
}
