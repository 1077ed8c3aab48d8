package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `
	id, handle, password_hash, first_name, last_name, age, gender,
	occupation, location, bio, preferences, profile_image, is_verified,
	completion, created_at, updated_at
`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Handle, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.Age, &user.Gender, &user.Occupation,
		&user.Location, &user.Bio, pq.Array(&user.Preferences),
		&user.ProfileImage, &user.IsVerified, &user.Completion,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			handle, password_hash, first_name, last_name, age, gender,
			occupation, location, bio, preferences, profile_image,
			is_verified, completion
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.Handle, user.PasswordHash, user.FirstName, user.LastName,
		user.Age, user.Gender, user.Occupation, user.Location, user.Bio,
		pq.Array(user.Preferences), user.ProfileImage, user.IsVerified,
		user.Completion,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateHandle
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Badges, err = r.GetBadges(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE lower(handle) = lower($1)`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, handle))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user.Badges, err = r.GetBadges(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, age = $3, gender = $4,
		    occupation = $5, location = $6, bio = $7, preferences = $8,
		    profile_image = $9, is_verified = $10,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		user.FirstName, user.LastName, user.Age, user.Gender,
		user.Occupation, user.Location, user.Bio,
		pq.Array(user.Preferences), user.ProfileImage, user.IsVerified,
		user.ID,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *userRepository) UpdateCompletion(ctx context.Context, userID, completion int) error {
	query := `
		UPDATE users
		SET completion = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	result, err := r.db.ExecContext(ctx, query, completion, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AwardBadge relies on the user_badges primary key (user_id, badge_id) so
// concurrent awards of the same badge collapse to one row.
func (r *userRepository) AwardBadge(ctx context.Context, userID int, badge domain.UserBadge) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id, name, description, icon, category, awarded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`
	_, err := r.db.ExecContext(
		ctx, query,
		userID, badge.BadgeID, badge.Name, badge.Description,
		badge.Icon, badge.Category, badge.AwardedAt,
	)
	return err
}

func (r *userRepository) GetBadges(ctx context.Context, userID int) ([]domain.UserBadge, error) {
	query := `
		SELECT badge_id, name, description, icon, category, awarded_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY awarded_at, badge_id
	`
	badges := []domain.UserBadge{}
	err := r.db.SelectContext(ctx, &badges, query, userID)
	return badges, err
}
