package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/server/response"
)

func (s *Server) handleStartConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.StartConversationRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		conv, apiErr := s.ChatService.StartConversation(userID, request.UserID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, conv.ResponseFor(userID), nil)
	}
}

func (s *Server) handleListConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		convs, apiErr := s.ChatService.ListConversations(userID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, convs, nil)
	}
}

// handleOpenConversation returns the full thread and marks everything
// addressed to the viewer as read, matching what happens when the thread is
// brought on screen.
func (s *Server) handleOpenConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		msgs, apiErr := s.ChatService.OpenConversation(conversationID, userID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, msgs, nil)
	}
}

func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.SendMessageRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		msg, apiErr := s.ChatService.SendMessage(conversationID, userID, request.Content)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "message sent", http.StatusCreated, msg, nil)
	}
}

func (s *Server) handleMarkConversationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		conversationID, err := uuid.Parse(c.Param("conversationID"))
		if err != nil {
			response.JSON(c, "invalid conversation id", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.ChatService.MarkConversationRead(conversationID, userID); apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "conversation marked read", http.StatusOK, nil, nil)
	}
}
