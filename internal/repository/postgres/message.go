package postgres

import (
	"context"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, false)
		RETURNING id, is_read, created_at
	`
	return r.db.QueryRowContext(ctx, query, msg.SenderID, msg.ReceiverID, msg.Content).
		Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *messageRepository) GetBetween(ctx context.Context, userID, otherID int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at, id
	`
	err := r.db.SelectContext(ctx, &messages, query, userID, otherID)
	return messages, err
}

func (r *messageRepository) MarkReadBetween(ctx context.Context, readerID, senderID int) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE receiver_id = $1 AND sender_id = $2 AND is_read = false
	`
	_, err := r.db.ExecContext(ctx, query, readerID, senderID)
	return err
}

func (r *messageRepository) ListForUser(ctx context.Context, userID int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at, id
	`
	err := r.db.SelectContext(ctx, &messages, query, userID)
	return messages, err
}

func (r *messageRepository) GetByIDs(ctx context.Context, ids []int) ([]*domain.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var messages []*domain.Message
	query := `
		SELECT id, sender_id, receiver_id, content, is_read, created_at
		FROM messages
		WHERE id = ANY($1)
		ORDER BY created_at, id
	`
	err := r.db.SelectContext(ctx, &messages, query, pq.Array(ids))
	return messages, err
}
