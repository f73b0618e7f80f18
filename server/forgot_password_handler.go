package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/server/response"
)

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var request models.ForgotPassword
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.SendEmailForPasswordReset(&request); apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		// same response whether or not the account exists
		response.JSON(c, "if the account exists, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		var request models.ResetPassword
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.AuthService.ResetPassword(&request, token); apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "password reset successful", http.StatusOK, nil, nil)
	}
}
