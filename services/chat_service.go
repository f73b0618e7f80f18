package services

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verisponsor/verisponsor/db"
	apiError "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

// MessageNotifier pushes a freshly appended message to the receiver's live
// connection, if any. Satisfied by the websocket hub.
type MessageNotifier interface {
	NotifyNewMessage(receiverID uuid.UUID, msg *models.Message)
}

type ChatService interface {
	StartConversation(userID, otherUserID uuid.UUID) (*models.Conversation, *apiError.Error)
	ListConversations(viewerID uuid.UUID) ([]models.ConversationResponse, *apiError.Error)
	SendMessage(conversationID, senderID uuid.UUID, content string) (*models.Message, *apiError.Error)
	ListMessages(conversationID, viewerID uuid.UUID) ([]models.Message, *apiError.Error)
	OpenConversation(conversationID, viewerID uuid.UUID) ([]models.Message, *apiError.Error)
	MarkConversationRead(conversationID, viewerID uuid.UUID) *apiError.Error
}

type chatService struct {
	chatRepo db.ChatRepository
	authRepo db.AuthRepository
	notifier MessageNotifier
}

// NewChatService instantiates a chatService. notifier may be nil when no
// live delivery is wanted (tests, one-off tooling).
func NewChatService(chatRepo db.ChatRepository, authRepo db.AuthRepository, notifier MessageNotifier) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		authRepo: authRepo,
		notifier: notifier,
	}
}

// StartConversation resolves the conversation for the unordered pair
// (userID, otherUserID), creating it on first contact.
func (s *chatService) StartConversation(userID, otherUserID uuid.UUID) (*models.Conversation, *apiError.Error) {
	if userID == otherUserID || userID == uuid.Nil || otherUserID == uuid.Nil {
		return nil, apiError.ErrInvalidParticipants
	}

	if _, err := s.authRepo.FindUserByID(otherUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("user not found", http.StatusNotFound)
		}
		log.Printf("StartConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	conv, err := s.chatRepo.FindConversationByParticipants(userID, otherUserID)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("StartConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	first, second := models.CanonicalPair(userID, otherUserID)
	conv = &models.Conversation{
		ID:             uuid.New(),
		ParticipantAID: first,
		ParticipantBID: second,
	}
	if err := s.chatRepo.CreateConversation(conv); err != nil {
		log.Printf("StartConversation error creating conversation: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conv, nil
}

// ListConversations returns the viewer's conversations newest-activity
// first, each with the viewer's unread count and the counterpart's public
// profile attached.
func (s *chatService) ListConversations(viewerID uuid.UUID) ([]models.ConversationResponse, *apiError.Error) {
	convs, err := s.chatRepo.ListConversationsForUser(viewerID)
	if err != nil {
		log.Printf("ListConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	responses := make([]models.ConversationResponse, 0, len(convs))
	for i := range convs {
		resp := convs[i].ResponseFor(viewerID)
		if otherID, ok := convs[i].Other(viewerID); ok {
			if other, err := s.authRepo.FindUserByID(otherID); err == nil {
				u := other.Response()
				resp.Counterpart = &u
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// SendMessage appends a message to the conversation. The receiver is always
// the sender's counterpart, and the denormalized conversation metadata is
// updated in the same transaction as the append.
func (s *chatService) SendMessage(conversationID, senderID uuid.UUID, content string) (*models.Message, *apiError.Error) {
	conv, apiErr := s.findConversation(conversationID)
	if apiErr != nil {
		return nil, apiErr
	}

	receiverID, ok := conv.Other(senderID)
	if !ok {
		return nil, apiError.ErrInvalidParticipant
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apiError.ErrEmptyContent
	}

	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.chatRepo.SaveMessage(msg); err != nil {
		log.Printf("SendMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if s.notifier != nil {
		s.notifier.NotifyNewMessage(receiverID, msg)
	}
	return msg, nil
}

// ListMessages returns the conversation's messages in send order.
func (s *chatService) ListMessages(conversationID, viewerID uuid.UUID) ([]models.Message, *apiError.Error) {
	conv, apiErr := s.findConversation(conversationID)
	if apiErr != nil {
		return nil, apiErr
	}
	if !conv.HasParticipant(viewerID) {
		return nil, apiError.ErrInvalidParticipant
	}

	msgs, err := s.chatRepo.ListMessagesByConversation(conversationID)
	if err != nil {
		log.Printf("ListMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return msgs, nil
}

// OpenConversation is what the client calls when the thread is brought on
// screen: it marks everything addressed to the viewer as read and returns
// the full message list.
func (s *chatService) OpenConversation(conversationID, viewerID uuid.UUID) ([]models.Message, *apiError.Error) {
	if apiErr := s.MarkConversationRead(conversationID, viewerID); apiErr != nil {
		return nil, apiErr
	}
	return s.ListMessages(conversationID, viewerID)
}

func (s *chatService) MarkConversationRead(conversationID, viewerID uuid.UUID) *apiError.Error {
	conv, apiErr := s.findConversation(conversationID)
	if apiErr != nil {
		return apiErr
	}
	if !conv.HasParticipant(viewerID) {
		return apiError.ErrInvalidParticipant
	}

	if err := s.chatRepo.MarkConversationRead(conversationID, viewerID); err != nil {
		log.Printf("MarkConversationRead error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *chatService) findConversation(conversationID uuid.UUID) (*models.Conversation, *apiError.Error) {
	conv, err := s.chatRepo.FindConversationByID(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrConversationNotFound
		}
		log.Printf("findConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return conv, nil
}
