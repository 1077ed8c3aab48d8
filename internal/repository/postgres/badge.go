package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type badgeRepository struct {
	db *sqlx.DB
}

func NewBadgeRepository(db *sqlx.DB) repository.BadgeRepository {
	return &badgeRepository{db: db}
}

// EnsureByName upserts on the unique name so concurrent first awards
// cannot create duplicate catalog rows.
func (r *badgeRepository) EnsureByName(ctx context.Context, badge *domain.Badge) error {
	query := `
		INSERT INTO badges (name, description, icon, category, criteria, points_required)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, description, icon, category, criteria, points_required, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		badge.Name, badge.Description, badge.Icon, badge.Category,
		badge.Criteria, badge.PointsRequired,
	).Scan(
		&badge.ID, &badge.Description, &badge.Icon, &badge.Category,
		&badge.Criteria, &badge.PointsRequired, &badge.CreatedAt,
	)
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*domain.Badge, error) {
	var badge domain.Badge
	query := `
		SELECT id, name, description, icon, category, criteria, points_required, created_at
		FROM badges WHERE name = $1
	`
	err := r.db.GetContext(ctx, &badge, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBadgeNotFound
		}
		return nil, err
	}
	return &badge, nil
}
