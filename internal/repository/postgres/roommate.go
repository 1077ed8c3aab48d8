package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type roommateRepository struct {
	db *sqlx.DB
}

func NewRoommateRepository(db *sqlx.DB) repository.RoommateRepository {
	return &roommateRepository{db: db}
}

func (r *roommateRepository) Upsert(ctx context.Context, profile *domain.RoommateProfile) error {
	query := `
		INSERT INTO roommate_profiles (user_id, budget, move_in_date, duration_months, looking_for_room)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET budget = EXCLUDED.budget,
		    move_in_date = EXCLUDED.move_in_date,
		    duration_months = EXCLUDED.duration_months,
		    looking_for_room = EXCLUDED.looking_for_room,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.Budget, profile.MoveInDate,
		profile.DurationMonths, profile.LookingForRoom,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *roommateRepository) GetByUserID(ctx context.Context, userID int) (*domain.RoommateProfile, error) {
	var profile domain.RoommateProfile
	query := `
		SELECT user_id, budget, move_in_date, duration_months, looking_for_room, created_at, updated_at
		FROM roommate_profiles WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRoommateProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *roommateRepository) List(ctx context.Context, filter repository.RoommateFilter) ([]*domain.Roommate, error) {
	query := `
		SELECT u.id, u.handle, u.password_hash, u.first_name, u.last_name,
		       u.age, u.gender, u.occupation, u.location, u.bio,
		       u.preferences, u.profile_image, u.is_verified, u.completion,
		       u.created_at, u.updated_at,
		       rp.user_id, rp.budget, rp.move_in_date, rp.duration_months,
		       rp.looking_for_room, rp.created_at, rp.updated_at
		FROM roommate_profiles rp
		JOIN users u ON u.id = rp.user_id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if filter.Location != "" {
		query += fmt.Sprintf(" AND u.location ILIKE $%d", argCount)
		args = append(args, likePattern(filter.Location))
		argCount++
	}
	if filter.MinAge != nil {
		query += fmt.Sprintf(" AND u.age >= $%d", argCount)
		args = append(args, *filter.MinAge)
		argCount++
	}
	if filter.MaxAge != nil {
		query += fmt.Sprintf(" AND u.age <= $%d", argCount)
		args = append(args, *filter.MaxAge)
		argCount++
	}
	if filter.Gender != "" {
		query += fmt.Sprintf(" AND lower(u.gender) = lower($%d)", argCount)
		args = append(args, filter.Gender)
		argCount++
	}
	if len(filter.Tags) > 0 {
		// Any-of, case-insensitive, matching the memory backend.
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM unnest(u.preferences) AS p WHERE lower(p) = ANY($%d))",
			argCount)
		args = append(args, pq.Array(lowered(filter.Tags)))
		argCount++
	}
	if filter.VerifiedOnly {
		query += " AND u.is_verified = true"
	}

	query += " ORDER BY u.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Roommate
	for rows.Next() {
		var rm domain.Roommate
		err := rows.Scan(
			&rm.User.ID, &rm.User.Handle, &rm.User.PasswordHash,
			&rm.User.FirstName, &rm.User.LastName, &rm.User.Age,
			&rm.User.Gender, &rm.User.Occupation, &rm.User.Location,
			&rm.User.Bio, pq.Array(&rm.User.Preferences),
			&rm.User.ProfileImage, &rm.User.IsVerified, &rm.User.Completion,
			&rm.User.CreatedAt, &rm.User.UpdatedAt,
			&rm.Profile.UserID, &rm.Profile.Budget, &rm.Profile.MoveInDate,
			&rm.Profile.DurationMonths, &rm.Profile.LookingForRoom,
			&rm.Profile.CreatedAt, &rm.Profile.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, &rm)
	}
	return result, rows.Err()
}
