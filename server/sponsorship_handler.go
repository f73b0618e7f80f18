package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/server/response"
)

func (s *Server) handleCreateSponsorship() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var request models.CreateSponsorshipRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		deal, apiErr := s.SponsorshipService.CreateSponsorship(userID, &request)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "sponsorship created", http.StatusCreated, deal, nil)
	}
}

func (s *Server) handleListSponsorships() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		deals, apiErr := s.SponsorshipService.ListSponsorshipsForUser(userID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, deals, nil)
	}
}

func (s *Server) handleUpdateSponsorshipStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		dealID, err := uuid.Parse(c.Param("sponsorshipID"))
		if err != nil {
			response.JSON(c, "invalid sponsorship id", http.StatusBadRequest, nil, err)
			return
		}

		var request models.UpdateSponsorshipStatusRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		deal, apiErr := s.SponsorshipService.UpdateSponsorshipStatus(dealID, userID, request.Status)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "sponsorship updated", http.StatusOK, deal, nil)
	}
}
