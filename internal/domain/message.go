package domain

import "time"

// Message is immutable once created; only the read flag ever changes,
// and only from false to true.
type Message struct {
	ID         int       `json:"id" db:"id"`
	SenderID   int       `json:"sender_id" db:"sender_id"`
	ReceiverID int       `json:"receiver_id" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

func (m *Message) Involves(userID int) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

func (m *Message) OtherParty(userID int) (int, bool) {
	if m.SenderID == userID {
		return m.ReceiverID, true
	}
	if m.ReceiverID == userID {
		return m.SenderID, true
	}
	return 0, false
}

// Conversation is a derived per-correspondent summary of a user's message
// history. The message log is authoritative; any persisted conversation
// record is a cache.
type Conversation struct {
	PartnerID     int       `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	PartnerAvatar *string   `json:"partner_avatar"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	IsRead        bool      `json:"is_read"`
}
