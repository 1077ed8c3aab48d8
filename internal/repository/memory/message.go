package memory

import (
	"context"
	"time"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
)

type messageStore struct {
	s *Store
}

func (r *messageStore) Create(ctx context.Context, msg *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[msg.SenderID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := r.s.users[msg.ReceiverID]; !ok {
		return domain.ErrUserNotFound
	}

	msg.ID = r.s.nextMessageID
	r.s.nextMessageID++
	msg.IsRead = false
	msg.CreatedAt = time.Now()

	c := *msg
	r.s.messages = append(r.s.messages, &c)
	return nil
}

// GetBetween returns the pair's messages in insertion order, which is
// ascending by creation time with ties broken by id.
func (r *messageStore) GetBetween(ctx context.Context, userID, otherID int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Message
	for _, msg := range r.s.messages {
		if (msg.SenderID == userID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == userID) {
			c := *msg
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *messageStore) MarkReadBetween(ctx context.Context, readerID, senderID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, msg := range r.s.messages {
		if msg.SenderID == senderID && msg.ReceiverID == readerID {
			msg.IsRead = true
		}
	}
	return nil
}

func (r *messageStore) ListForUser(ctx context.Context, userID int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var result []*domain.Message
	for _, msg := range r.s.messages {
		if msg.Involves(userID) {
			c := *msg
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *messageStore) GetByIDs(ctx context.Context, ids []int) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var result []*domain.Message
	for _, msg := range r.s.messages {
		if want[msg.ID] {
			c := *msg
			result = append(result, &c)
		}
	}
	return result, nil
}
