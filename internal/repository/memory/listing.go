package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

type listingStore struct {
	s *Store
}

func (r *listingStore) Create(ctx context.Context, listing *domain.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[listing.OwnerID]; !ok {
		return domain.ErrUserNotFound
	}

	listing.ID = r.s.nextListingID
	r.s.nextListingID++
	listing.CreatedAt = time.Now()
	if listing.Amenities == nil {
		listing.Amenities = []string{}
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	r.s.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *listingStore) GetByID(ctx context.Context, id int) (*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	listing, ok := r.s.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return cloneListing(listing), nil
}

func (r *listingStore) List(ctx context.Context, filter repository.ListingFilter, viewerID *int) ([]*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0, len(r.s.listings))
	for id := range r.s.listings {
		ids = append(ids, id)
	}
	// Newest first.
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	var result []*domain.Listing
	for _, id := range ids {
		listing := r.s.listings[id]
		if !listing.VisibleTo(viewerID) {
			continue
		}
		if !matchesListingFilter(listing, filter) {
			continue
		}
		result = append(result, cloneListing(listing))
	}
	return result, nil
}

func (r *listingStore) ListFeatured(ctx context.Context, limit int) ([]*domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0, len(r.s.listings))
	for id := range r.s.listings {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	var result []*domain.Listing
	for _, id := range ids {
		listing := r.s.listings[id]
		if !listing.IsPublic || !listing.IsFeatured {
			continue
		}
		result = append(result, cloneListing(listing))
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func matchesListingFilter(listing *domain.Listing, filter repository.ListingFilter) bool {
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(listing.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.MinPrice != nil && listing.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && listing.Price > *filter.MaxPrice {
		return false
	}
	if filter.RoomType != "" && !strings.EqualFold(listing.RoomType, filter.RoomType) {
		return false
	}
	if len(filter.Amenities) > 0 && !hasAnyTag(listing.Amenities, filter.Amenities) {
		return false
	}
	if filter.AvailableNow {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		if listing.AvailableFrom.After(now) {
			return false
		}
	}
	return true
}
