package memory

import (
	"context"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

type badgeStore struct {
	s *Store
}

func (r *badgeStore) EnsureByName(ctx context.Context, badge *domain.Badge) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if id, ok := r.s.badgeNames[badge.Name]; ok {
		*badge = *r.s.badges[id]
		return nil
	}

	badge.ID = r.s.nextBadgeID
	r.s.nextBadgeID++
	badge.CreatedAt = time.Now()

	c := *badge
	r.s.badges[badge.ID] = &c
	r.s.badgeNames[badge.Name] = badge.ID
	return nil
}

func (r *badgeStore) GetByName(ctx context.Context, name string) (*domain.Badge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.badgeNames[name]
	if !ok {
		return nil, domain.ErrBadgeNotFound
	}
	c := *r.s.badges[id]
	return &c, nil
}
