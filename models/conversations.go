package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verisponsor/verisponsor/services/utils"
)

// Conversation is a 1:1 thread between two participants. The pair is stored
// in canonical order (ParticipantAID < ParticipantBID by string comparison)
// so an unordered pair always maps to the same row. LastMessage is a
// denormalized copy of the newest message; UnreadA/UnreadB track unread
// counts per participant so both sides can view the same row without
// ambiguity.
type Conversation struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantAID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"participant_a_id"`
	ParticipantBID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"participant_b_id"`
	LastMessageID  *uuid.UUID `gorm:"type:uuid" json:"-"`
	LastMessage    *Message   `gorm:"foreignKey:LastMessageID" json:"last_message,omitempty"`
	LastMessageAt  *time.Time `gorm:"index" json:"last_message_at,omitempty"`
	UnreadA        int        `gorm:"default:0" json:"-"`
	UnreadB        int        `gorm:"default:0" json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CanonicalPair orders two participant ids so that (a,b) and (b,a) resolve
// to the same conversation key.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if strings.Compare(a.String(), b.String()) > 0 {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantAID == userID || c.ParticipantBID == userID
}

// Other returns the counterpart of userID in this conversation.
func (c *Conversation) Other(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case c.ParticipantAID:
		return c.ParticipantBID, true
	case c.ParticipantBID:
		return c.ParticipantAID, true
	}
	return uuid.Nil, false
}

// UnreadFor returns the unread counter from the viewer's perspective.
func (c *Conversation) UnreadFor(userID uuid.UUID) int {
	switch userID {
	case c.ParticipantAID:
		return c.UnreadA
	case c.ParticipantBID:
		return c.UnreadB
	}
	return 0
}

func (c *Conversation) Participants() []uuid.UUID {
	return []uuid.UUID{c.ParticipantAID, c.ParticipantBID}
}

// ConversationResponse is a conversation viewed from one participant's side.
// LastMessageLabel is the short time label the conversation list renders
// ("14:05", "Yesterday", "Tue", "Apr 3").
type ConversationResponse struct {
	ID               uuid.UUID     `json:"id"`
	Participants     []uuid.UUID   `json:"participants"`
	Counterpart      *UserResponse `json:"counterpart,omitempty"`
	LastMessage      *Message      `json:"last_message,omitempty"`
	LastMessageAt    *time.Time    `json:"last_message_at,omitempty"`
	LastMessageLabel string        `json:"last_message_label,omitempty"`
	UnreadCount      int           `json:"unread_count"`
}

func (c *Conversation) ResponseFor(viewerID uuid.UUID) ConversationResponse {
	resp := ConversationResponse{
		ID:            c.ID,
		Participants:  c.Participants(),
		LastMessage:   c.LastMessage,
		LastMessageAt: c.LastMessageAt,
		UnreadCount:   c.UnreadFor(viewerID),
	}
	if c.LastMessageAt != nil {
		resp.LastMessageLabel = utils.FormatMessageTimeNow(*c.LastMessageAt)
	}
	return resp
}
