package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type listingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `
	id, owner_id, title, description, location, price, room_type,
	current_roommates, available_from, amenities, images, is_public,
	is_featured, rating, created_at
`

func scanListing(row interface{ Scan(...interface{}) error }) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Location,
		&l.Price, &l.RoomType, &l.CurrentRoommates, &l.AvailableFrom,
		pq.Array(&l.Amenities), pq.Array(&l.Images), &l.IsPublic,
		&l.IsFeatured, &l.Rating, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings (
			owner_id, title, description, location, price, room_type,
			current_roommates, available_from, amenities, images,
			is_public, is_featured, rating
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		listing.OwnerID, listing.Title, listing.Description,
		listing.Location, listing.Price, listing.RoomType,
		listing.CurrentRoommates, listing.AvailableFrom,
		pq.Array(listing.Amenities), pq.Array(listing.Images),
		listing.IsPublic, listing.IsFeatured, listing.Rating,
	).Scan(&listing.ID, &listing.CreatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id int) (*domain.Listing, error) {
	query := `SELECT` + listingColumns + `FROM listings WHERE id = $1`
	listing, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return listing, nil
}

func (r *listingRepository) List(ctx context.Context, filter repository.ListingFilter, viewerID *int) ([]*domain.Listing, error) {
	query := `SELECT` + listingColumns + `FROM listings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	// Visibility comes before every other predicate.
	if viewerID != nil {
		query += fmt.Sprintf(" AND (is_public = true OR owner_id = $%d)", argCount)
		args = append(args, *viewerID)
		argCount++
	} else {
		query += " AND is_public = true"
	}

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argCount)
		args = append(args, likePattern(filter.Location))
		argCount++
	}
	if filter.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argCount)
		args = append(args, *filter.MinPrice)
		argCount++
	}
	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argCount)
		args = append(args, *filter.MaxPrice)
		argCount++
	}
	if filter.RoomType != "" {
		query += fmt.Sprintf(" AND lower(room_type) = lower($%d)", argCount)
		args = append(args, filter.RoomType)
		argCount++
	}
	if len(filter.Amenities) > 0 {
		// Any-of, case-insensitive, matching the memory backend.
		query += fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM unnest(amenities) AS a WHERE lower(a) = ANY($%d))",
			argCount)
		args = append(args, pq.Array(lowered(filter.Amenities)))
		argCount++
	}
	if filter.AvailableNow {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		query += fmt.Sprintf(" AND available_from <= $%d", argCount)
		args = append(args, now)
		argCount++
	}

	query += " ORDER BY id DESC"

	return r.queryListings(ctx, query, args...)
}

func (r *listingRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Listing, error) {
	query := `SELECT` + listingColumns + `
		FROM listings
		WHERE is_public = true AND is_featured = true
		ORDER BY id DESC
		LIMIT $1
	`
	return r.queryListings(ctx, query, limit)
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]*domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
