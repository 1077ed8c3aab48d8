package memory

import (
	"context"
	"strings"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

type userStore struct {
	s *Store
}

func (r *userStore) Create(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.handles[strings.ToLower(user.Handle)]; ok {
		return domain.ErrDuplicateHandle
	}

	user.ID = r.s.nextUserID
	r.s.nextUserID++

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Preferences == nil {
		user.Preferences = []string{}
	}
	if user.Badges == nil {
		user.Badges = []domain.UserBadge{}
	}

	r.s.users[user.ID] = cloneUser(user)
	r.s.handles[strings.ToLower(user.Handle)] = user.ID
	return nil
}

func (r *userStore) GetByID(ctx context.Context, id int) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *userStore) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.handles[strings.ToLower(handle)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *userStore) Update(ctx context.Context, user *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	// Only profile fields are updatable here. Badges are owned by
	// AwardBadge, completion by UpdateCompletion, and the handle and
	// credential never change through a profile update.
	user.Handle = existing.Handle
	user.PasswordHash = existing.PasswordHash
	user.Completion = existing.Completion
	user.Badges = append([]domain.UserBadge(nil), existing.Badges...)
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userStore) UpdateCompletion(ctx context.Context, userID, completion int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Completion = completion
	user.UpdatedAt = time.Now()
	return nil
}

func (r *userStore) AwardBadge(ctx context.Context, userID int, badge domain.UserBadge) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if user.HasBadge(badge.BadgeID) {
		return nil
	}
	user.Badges = append(user.Badges, badge)
	return nil
}

func (r *userStore) GetBadges(ctx context.Context, userID int) ([]domain.UserBadge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return append([]domain.UserBadge(nil), user.Badges...), nil
}
