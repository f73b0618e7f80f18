package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/verisponsor/verisponsor/db"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/server/response"
)

func (s *Server) handleSaveYouTuberProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var profile models.YouTuberProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		saved, apiErr := s.ProfileService.SaveYouTuberProfile(userID, &profile)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile saved", http.StatusOK, saved, nil)
	}
}

func (s *Server) handleSaveSponsorProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		var profile models.SponsorProfile
		if err := c.ShouldBindJSON(&profile); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		saved, apiErr := s.ProfileService.SaveSponsorProfile(userID, &profile)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "profile saved", http.StatusOK, saved, nil)
	}
}

func (s *Server) handleGetYouTuberProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userID"))
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.ProfileService.GetYouTuberProfile(userID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

func (s *Server) handleGetSponsorProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.Param("userID"))
		if err != nil {
			response.JSON(c, "invalid user id", http.StatusBadRequest, nil, err)
			return
		}

		profile, apiErr := s.ProfileService.GetSponsorProfile(userID)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, profile, nil)
	}
}

// handleDiscover lists the profiles of the opposite role: sponsors browse
// YouTubers and vice versa.
func (s *Server) handleDiscover() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")

		filter := db.ProfileFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Location: c.Query("location"),
			SortBy:   c.Query("sort"),
		}

		if role == models.RoleSponsor {
			profiles, apiErr := s.ProfileService.DiscoverYouTubers(filter)
			if apiErr != nil {
				response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusOK, profiles, nil)
			return
		}

		profiles, apiErr := s.ProfileService.DiscoverSponsors(filter)
		if apiErr != nil {
			response.JSON(c, apiErr.Message, apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, profiles, nil)
	}
}
