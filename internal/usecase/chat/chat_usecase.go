package chat

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/flatmatch/flatmatch-backend/internal/repository"
)

// ConversationCache keeps a per-pair pointer to the latest message. It is
// an optimization only; the message log stays authoritative and every
// cache failure is recoverable by recomputing.
type ConversationCache interface {
	UpsertPair(ctx context.Context, userID, otherID, messageID int) error
	Pointers(ctx context.Context, userID int) (map[int]int, error)
}

type UseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	cache       ConversationCache
}

func NewUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	cache ConversationCache,
) *UseCase {
	return &UseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		cache:       cache,
	}
}

// SendMessage appends to the message log and then refreshes the pair's
// conversation pointer. Only the log write can fail the send; pointer
// maintenance problems are logged and swallowed.
func (uc *UseCase) SendMessage(ctx context.Context, senderID, receiverID int, content string) (*domain.Message, error) {
	if senderID == receiverID {
		return nil, domain.ErrCannotMessageSelf
	}
	if _, err := uc.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.UpsertPair(ctx, senderID, receiverID, msg.ID); err != nil {
			log.Printf("chat: conversation pointer update failed for pair (%d,%d): %v", senderID, receiverID, err)
		}
	}
	return msg, nil
}

// Thread returns the full exchange between the two users, oldest first.
// Fetching a thread is also the read receipt: everything the other user
// sent is marked read before the messages are loaded.
func (uc *UseCase) Thread(ctx context.Context, userID, otherID int) ([]*domain.Message, error) {
	if err := uc.messageRepo.MarkReadBetween(ctx, userID, otherID); err != nil {
		return nil, fmt.Errorf("failed to mark messages read: %w", err)
	}
	return uc.messageRepo.GetBetween(ctx, userID, otherID)
}

// Conversations derives the viewer's inbox, one entry per correspondent,
// newest first. Cached pointers are used when they resolve cleanly;
// anything else falls back to a full recompute from the log.
func (uc *UseCase) Conversations(ctx context.Context, userID int) ([]*domain.Conversation, error) {
	latest := uc.latestFromCache(ctx, userID)
	if latest == nil {
		msgs, err := uc.messageRepo.ListForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		latest = latestPerPartner(msgs, userID)
	}

	entries := make([]*domain.Conversation, 0, len(latest))
	for partnerID, msg := range latest {
		partner, err := uc.userRepo.GetByID(ctx, partnerID)
		if err != nil {
			// A correspondent that cannot be resolved is skipped.
			continue
		}
		entries = append(entries, &domain.Conversation{
			PartnerID:     partnerID,
			PartnerName:   partner.DisplayName(),
			PartnerAvatar: partner.ProfileImage,
			LastMessage:   msg.Content,
			LastMessageAt: msg.CreatedAt,
			IsRead:        msg.SenderID == userID || msg.IsRead,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].LastMessageAt.Equal(entries[j].LastMessageAt) {
			return entries[i].LastMessageAt.After(entries[j].LastMessageAt)
		}
		return latest[entries[i].PartnerID].ID > latest[entries[j].PartnerID].ID
	})
	return entries, nil
}

// latestFromCache resolves cached pointers to messages, returning nil
// whenever the cache is absent, stale or inconsistent.
func (uc *UseCase) latestFromCache(ctx context.Context, userID int) map[int]*domain.Message {
	if uc.cache == nil {
		return nil
	}
	pointers, err := uc.cache.Pointers(ctx, userID)
	if err != nil {
		log.Printf("chat: conversation pointer read failed for user %d: %v", userID, err)
		return nil
	}
	if len(pointers) == 0 {
		return nil
	}

	ids := make([]int, 0, len(pointers))
	for _, id := range pointers {
		ids = append(ids, id)
	}
	msgs, err := uc.messageRepo.GetByIDs(ctx, ids)
	if err != nil || len(msgs) != len(pointers) {
		return nil
	}

	latest := make(map[int]*domain.Message, len(msgs))
	for _, msg := range msgs {
		partnerID, ok := msg.OtherParty(userID)
		if !ok {
			return nil
		}
		latest[partnerID] = msg
	}
	return latest
}

// latestPerPartner picks, for each correspondent, the pair's message with
// the greatest timestamp, ties broken by the higher id.
func latestPerPartner(msgs []*domain.Message, userID int) map[int]*domain.Message {
	latest := make(map[int]*domain.Message)
	for _, msg := range msgs {
		partnerID, ok := msg.OtherParty(userID)
		if !ok {
			continue
		}
		current, exists := latest[partnerID]
		if !exists ||
			msg.CreatedAt.After(current.CreatedAt) ||
			(msg.CreatedAt.Equal(current.CreatedAt) && msg.ID > current.ID) {
			latest[partnerID] = msg
		}
	}
	return latest
}
