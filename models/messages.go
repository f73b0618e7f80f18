package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is append-only: nothing is mutated after creation except Read.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       uuid.UUID `gorm:"type:uuid;not null" json:"sender_id"`
	ReceiverID     uuid.UUID `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Read           bool      `gorm:"default:false" json:"read"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required" conform:"trim"`
}

type StartConversationRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}
