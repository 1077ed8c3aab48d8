package repository

import (
	"context"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

// RoommateFilter narrows the roommate pool. Zero-value fields mean "no
// constraint"; the tag filter matches users holding any of the given tags.
type RoommateFilter struct {
	Location     string
	MinAge       *int
	MaxAge       *int
	Gender       string
	Tags         []string
	VerifiedOnly bool
}

// ListingFilter narrows listing queries. Visibility is not part of the
// filter; callers pass the viewer separately so the visibility rule is
// applied before any predicate here.
type ListingFilter struct {
	Location     string
	MinPrice     *int
	MaxPrice     *int
	RoomType     string
	Amenities    []string
	AvailableNow bool
	Now          time.Time
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByHandle(ctx context.Context, handle string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateCompletion(ctx context.Context, userID, completion int) error
	// AwardBadge attaches a badge snapshot to the user. Awarding a badge
	// the user already holds is a no-op.
	AwardBadge(ctx context.Context, userID int, badge domain.UserBadge) error
	GetBadges(ctx context.Context, userID int) ([]domain.UserBadge, error)
}

type RoommateRepository interface {
	Upsert(ctx context.Context, profile *domain.RoommateProfile) error
	GetByUserID(ctx context.Context, userID int) (*domain.RoommateProfile, error)
	List(ctx context.Context, filter RoommateFilter) ([]*domain.Roommate, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int) (*domain.Listing, error)
	List(ctx context.Context, filter ListingFilter, viewerID *int) ([]*domain.Listing, error)
	ListFeatured(ctx context.Context, limit int) ([]*domain.Listing, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// GetBetween returns every message exchanged by the pair, in either
	// direction, ascending by time (ties by id).
	GetBetween(ctx context.Context, userID, otherID int) ([]*domain.Message, error)
	// MarkReadBetween flips the read flag on all unread messages sent by
	// senderID to readerID.
	MarkReadBetween(ctx context.Context, readerID, senderID int) error
	ListForUser(ctx context.Context, userID int) ([]*domain.Message, error)
	GetByIDs(ctx context.Context, ids []int) ([]*domain.Message, error)
}

type BadgeRepository interface {
	// EnsureByName finds the catalog badge with the given name, creating
	// it from the template if absent, and fills in its id.
	EnsureByName(ctx context.Context, badge *domain.Badge) error
	GetByName(ctx context.Context, name string) (*domain.Badge, error)
}

// Store bundles the per-entity repositories of one backend.
type Store struct {
	Users     UserRepository
	Roommates RoommateRepository
	Listings  ListingRepository
	Messages  MessageRepository
	Badges    BadgeRepository
}
