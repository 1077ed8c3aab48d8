// Package memory implements the storage contract with in-process maps.
// It is the default backend when no durable store is configured and the
// backend every business test runs against.
package memory

import (
	"sync"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

// Store holds all entity collections behind a single mutex so id
// assignment and map mutation stay atomic under concurrent requests.
type Store struct {
	mu sync.RWMutex

	users   map[int]*domain.User
	handles map[string]int

	roommates map[int]*domain.RoommateProfile

	listings      map[int]*domain.Listing
	nextListingID int

	messages      []*domain.Message
	nextMessageID int

	badges      map[int]*domain.Badge
	badgeNames  map[string]int
	nextBadgeID int

	nextUserID int
}

func NewStore() *repository.Store {
	s := &Store{
		users:         make(map[int]*domain.User),
		handles:       make(map[string]int),
		roommates:     make(map[int]*domain.RoommateProfile),
		listings:      make(map[int]*domain.Listing),
		badges:        make(map[int]*domain.Badge),
		badgeNames:    make(map[string]int),
		nextUserID:    1,
		nextListingID: 1,
		nextMessageID: 1,
		nextBadgeID:   1,
	}
	return &repository.Store{
		Users:     &userStore{s},
		Roommates: &roommateStore{s},
		Listings:  &listingStore{s},
		Messages:  &messageStore{s},
		Badges:    &badgeStore{s},
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Preferences = append([]string(nil), u.Preferences...)
	c.Badges = append([]domain.UserBadge(nil), u.Badges...)
	return &c
}

func cloneListing(l *domain.Listing) *domain.Listing {
	c := *l
	c.Amenities = append([]string(nil), l.Amenities...)
	c.Images = append([]string(nil), l.Images...)
	return &c
}
