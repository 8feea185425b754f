package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lostfound-backend/internal/domain"
)

type ReportRepository interface {
	File(ctx context.Context, report *domain.Report, threshold int, hideNotif *domain.Notification) (bool, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ReportDetail, error)
	ListReportedItems(ctx context.Context) ([]domain.ReportedItem, error)
	ListRecent(ctx context.Context, limit int) ([]domain.RecentReport, error)
	CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

// File inserts the report and applies the auto-hide threshold in a single
// transaction. The item row is locked so the insert, the recount and the
// conditional hide cannot interleave with a concurrent report; combined with
// the is_hidden = false guard this yields exactly one hide and one
// notification per item. Returns whether the item was auto-hidden.
func (r *reportRepository) File(ctx context.Context, report *domain.Report, threshold int, hideNotif *domain.Notification) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var hidden bool
	if err := tx.GetContext(ctx, &hidden,
		`SELECT is_hidden FROM items WHERE id = $1 FOR UPDATE`, report.ItemID); err != nil {
		return false, err
	}
	if hidden {
		return false, ErrItemHidden
	}

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO reports (id, user_id, item_id, reason, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		report.ID, report.UserID, report.ItemID, report.Reason, report.Status,
	).Scan(&report.CreatedAt)
	if isUniqueViolation(err) {
		return false, ErrDuplicateReport
	}
	if err != nil {
		return false, err
	}

	var count int
	if err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM reports WHERE item_id = $1`, report.ItemID); err != nil {
		return false, err
	}

	autoHidden := false
	if count >= threshold {
		result, err := tx.ExecContext(ctx,
			`UPDATE items SET is_hidden = true, hidden_reason = $2 WHERE id = $1 AND is_hidden = false`,
			report.ItemID, domain.HiddenReasonAutoReport)
		if err != nil {
			return false, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return false, err
		}
		if affected > 0 {
			if err := insertNotificationTx(ctx, tx, hideNotif); err != nil {
				return false, err
			}
			autoHidden = true
		}
	}

	return autoHidden, tx.Commit()
}

func (r *reportRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ReportDetail, error) {
	reports := []domain.ReportDetail{}
	query := `
		SELECT rp.id, u.name AS reporter_name, rp.reason, rp.status, rp.created_at
		FROM reports rp
		JOIN users u ON u.id = rp.user_id
		WHERE rp.item_id = $1
		ORDER BY rp.created_at DESC`

	err := r.db.SelectContext(ctx, &reports, query, itemID)
	return reports, err
}

func (r *reportRepository) ListReportedItems(ctx context.Context) ([]domain.ReportedItem, error) {
	items := []domain.ReportedItem{}
	query := `
		SELECT i.id AS item_id, i.title AS item_title, i.type AS item_type,
		       o.name AS item_owner_name, o.public_id AS item_owner_id,
		       COUNT(rp.id) AS report_count,
		       i.is_hidden, i.hidden_reason, i.created_at
		FROM reports rp
		JOIN items i ON i.id = rp.item_id
		JOIN users o ON o.id = i.user_id
		GROUP BY i.id, o.name, o.public_id
		ORDER BY report_count DESC`

	err := r.db.SelectContext(ctx, &items, query)
	return items, err
}

func (r *reportRepository) ListRecent(ctx context.Context, limit int) ([]domain.RecentReport, error) {
	reports := []domain.RecentReport{}
	query := `
		SELECT rp.id, i.id AS item_id, i.title AS item_title,
		       u.name AS reporter_name, u.public_id AS reporter_public_id,
		       rp.reason, rp.created_at
		FROM reports rp
		JOIN items i ON i.id = rp.item_id
		JOIN users u ON u.id = rp.user_id
		ORDER BY rp.created_at DESC
		LIMIT $1`

	err := r.db.SelectContext(ctx, &reports, query, limit)
	return reports, err
}

func (r *reportRepository) CountByStatus(ctx context.Context, status domain.ReportStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM reports WHERE status = $1`, status)
	return count, err
}

func (r *reportRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM reports WHERE created_at >= $1`, since)
	return count, err
}
