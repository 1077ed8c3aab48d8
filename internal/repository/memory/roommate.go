package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

type roommateStore struct {
	s *Store
}

func (r *roommateStore) Upsert(ctx context.Context, profile *domain.RoommateProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[profile.UserID]; !ok {
		return domain.ErrUserNotFound
	}

	now := time.Now()
	if existing, ok := r.s.roommates[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	c := *profile
	r.s.roommates[profile.UserID] = &c
	return nil
}

func (r *roommateStore) GetByUserID(ctx context.Context, userID int) (*domain.RoommateProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	profile, ok := r.s.roommates[userID]
	if !ok {
		return nil, domain.ErrRoommateProfileNotFound
	}
	c := *profile
	return &c, nil
}

func (r *roommateStore) List(ctx context.Context, filter repository.RoommateFilter) ([]*domain.Roommate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]int, 0, len(r.s.roommates))
	for id := range r.s.roommates {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var result []*domain.Roommate
	for _, id := range ids {
		user, ok := r.s.users[id]
		if !ok {
			continue
		}
		if !matchesRoommateFilter(user, filter) {
			continue
		}
		result = append(result, &domain.Roommate{
			User:    *cloneUser(user),
			Profile: *r.s.roommates[id],
		})
	}
	return result, nil
}

func matchesRoommateFilter(user *domain.User, filter repository.RoommateFilter) bool {
	if filter.Location != "" {
		if user.Location == nil ||
			!strings.Contains(strings.ToLower(*user.Location), strings.ToLower(filter.Location)) {
			return false
		}
	}
	if filter.MinAge != nil && (user.Age == nil || *user.Age < *filter.MinAge) {
		return false
	}
	if filter.MaxAge != nil && (user.Age == nil || *user.Age > *filter.MaxAge) {
		return false
	}
	if filter.Gender != "" {
		if user.Gender == nil || !strings.EqualFold(*user.Gender, filter.Gender) {
			return false
		}
	}
	if len(filter.Tags) > 0 && !hasAnyTag(user.Preferences, filter.Tags) {
		return false
	}
	if filter.VerifiedOnly && !user.IsVerified {
		return false
	}
	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}
