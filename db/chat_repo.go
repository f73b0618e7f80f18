package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

// ChatRepository owns the conversations and messages tables. Conversations
// keep denormalized last-message and per-participant unread columns, so
// every message append runs as a single transaction touching both tables.
type ChatRepository interface {
	CreateConversation(conv *models.Conversation) error
	FindConversationByID(id uuid.UUID) (*models.Conversation, error)
	FindConversationByParticipants(a, b uuid.UUID) (*models.Conversation, error)
	ListConversationsForUser(userID uuid.UUID) ([]models.Conversation, error)
	SaveMessage(msg *models.Message) error
	ListMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error)
	MarkConversationRead(conversationID, viewerID uuid.UUID) error
}

type chatRepo struct {
	DB *gorm.DB
}

func NewChatRepo(db *GormDB) ChatRepository {
	return &chatRepo{db.DB}
}

func (r *chatRepo) CreateConversation(conv *models.Conversation) error {
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	if err := r.DB.Create(conv).Error; err != nil {
		return errors.Wrap(err, "could not create conversation")
	}
	return nil
}

func (r *chatRepo) FindConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.DB.Preload("LastMessage").Where("id = ?", id).First(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepo) FindConversationByParticipants(a, b uuid.UUID) (*models.Conversation, error) {
	first, second := models.CanonicalPair(a, b)
	var conv models.Conversation
	err := r.DB.Preload("LastMessage").
		Where("participant_a_id = ? AND participant_b_id = ?", first, second).
		First(&conv).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *chatRepo) ListConversationsForUser(userID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.DB.Preload("LastMessage").
		Where("participant_a_id = ? OR participant_b_id = ?", userID, userID).
		Order("last_message_at DESC NULLS LAST").
		Order("created_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list conversations")
	}
	return convs, nil
}

// SaveMessage appends the message and updates the parent conversation's
// last-message pointer and the receiver's unread counter in one transaction,
// so readers never observe the index out of step with the message list.
func (r *chatRepo) SaveMessage(msg *models.Message) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		if err := tx.Where("id = ?", msg.ConversationID).First(&conv).Error; err != nil {
			return err
		}

		if err := tx.Create(msg).Error; err != nil {
			return errors.Wrap(err, "could not save message")
		}

		unreadColumn := "unread_a"
		if msg.ReceiverID == conv.ParticipantBID {
			unreadColumn = "unread_b"
		}

		updates := map[string]interface{}{
			"last_message_id": msg.ID,
			"last_message_at": msg.CreatedAt,
			unreadColumn:      gorm.Expr(unreadColumn+" + ?", 1),
		}
		if err := tx.Model(&models.Conversation{}).Where("id = ?", conv.ID).Updates(updates).Error; err != nil {
			return errors.Wrap(err, "could not update conversation index")
		}
		return nil
	})
}

func (r *chatRepo) ListMessagesByConversation(conversationID uuid.UUID) ([]models.Message, error) {
	var msgs []models.Message
	err := r.DB.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list messages")
	}
	return msgs, nil
}

// MarkConversationRead flags every message addressed to the viewer as read
// and zeroes the viewer's unread counter. Calling it again is a no-op.
func (r *chatRepo) MarkConversationRead(conversationID, viewerID uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var conv models.Conversation
		if err := tx.Where("id = ?", conversationID).First(&conv).Error; err != nil {
			return err
		}

		err := tx.Model(&models.Message{}).
			Where("conversation_id = ? AND receiver_id = ? AND read = ?", conversationID, viewerID, false).
			Update("read", true).Error
		if err != nil {
			return errors.Wrap(err, "could not mark messages read")
		}

		unreadColumn := "unread_a"
		if viewerID == conv.ParticipantBID {
			unreadColumn = "unread_b"
		}
		err = tx.Model(&models.Conversation{}).Where("id = ?", conversationID).
			Update(unreadColumn, 0).Error
		if err != nil {
			return errors.Wrap(err, "could not reset unread count")
		}
		return nil
	})
}
