package server

import (
	"errors"
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/server/response"
	"github.com/verisponsor/verisponsor/services/jwt"
	"gorm.io/gorm"
)

// Authorize validates the bearer token, rejects blacklisted tokens and
// loads the account into the request context.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		if s.AuthRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is blacklisted", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		secret := s.Config.JWTSecret
		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, secret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		idStr, ok := accessClaims["id"].(string)
		if !ok {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}
		userID, err := uuid.Parse(idStr)
		if err != nil {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New(err.Error(), http.StatusUnauthorized))
			default:
				respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.New("internal server error", http.StatusInternalServerError))
			}
			return
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("userRole", user.Role)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// getTokenFromHeader returns the token from the Authorization header,
// stripped of the "Bearer" prefix.
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Fields(authHeader)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// currentUserID pulls the authenticated user's id out of the context set by
// Authorize.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func limitRateForAuthRoutes(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
