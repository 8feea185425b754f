package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lostfound-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByPublicID(ctx context.Context, publicID string) (*domain.User, error)
	UpdateHostel(ctx context.Context, id uuid.UUID, hostel domain.Hostel) error
	UpdateModeration(ctx context.Context, user *domain.User) error
	ListWithStats(ctx context.Context) ([]domain.UserDetail, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, public_id, name, email, image, role, hostel)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.PublicID, user.Name, user.Email, user.Image, user.Role, user.Hostel,
	).Scan(&user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByPublicID(ctx context.Context, publicID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE public_id = $1`

	err := r.db.GetContext(ctx, &user, query, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateHostel(ctx context.Context, id uuid.UUID, hostel domain.Hostel) error {
	query := `UPDATE users SET hostel = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, string(hostel))
	return err
}

func (r *userRepository) UpdateModeration(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET warning_count = $2, is_banned = $3, ban_reason = $4, ban_until = $5
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.WarningCount, user.IsBanned, user.BanReason, user.BanUntil,
	)
	return err
}

func (r *userRepository) ListWithStats(ctx context.Context) ([]domain.UserDetail, error) {
	users := []domain.UserDetail{}
	query := `
		SELECT u.id, u.public_id, u.name, u.email, u.image, u.created_at,
		       u.warning_count, u.is_banned, u.ban_reason, u.ban_until,
		       COALESCE(i.cnt, 0) AS items_posted,
		       COALESCE(r.cnt, 0) AS reports_received
		FROM users u
		LEFT JOIN (
			SELECT user_id, COUNT(*) AS cnt FROM items GROUP BY user_id
		) i ON i.user_id = u.id
		LEFT JOIN (
			SELECT it.user_id, COUNT(*) AS cnt
			FROM reports rp JOIN items it ON rp.item_id = it.id
			GROUP BY it.user_id
		) r ON r.user_id = u.id
		ORDER BY reports_received DESC, u.created_at DESC`

	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}
