package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
	authLimiter := limitRateForAuthRoutes(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", authLimiter, s.handleSignup())
	apirouter.POST("/auth/login", authLimiter, s.handleLogin())
	apirouter.POST("/password/forgot", authLimiter, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", authLimiter, s.ResetPassword())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())
	authorized.PUT("/upload", s.handleUpdateUserAvatar())

	authorized.PUT("/profiles/youtuber", s.handleSaveYouTuberProfile())
	authorized.PUT("/profiles/sponsor", s.handleSaveSponsorProfile())
	authorized.GET("/profiles/youtuber/:userID", s.handleGetYouTuberProfile())
	authorized.GET("/profiles/sponsor/:userID", s.handleGetSponsorProfile())
	authorized.GET("/discover", s.handleDiscover())

	authorized.POST("/conversations", s.handleStartConversation())
	authorized.GET("/conversations", s.handleListConversations())
	authorized.GET("/conversations/:conversationID/messages", s.handleOpenConversation())
	authorized.POST("/conversations/:conversationID/messages", s.handleSendMessage())
	authorized.PUT("/conversations/:conversationID/read", s.handleMarkConversationRead())

	authorized.POST("/sponsorships", s.handleCreateSponsorship())
	authorized.GET("/sponsorships", s.handleListSponsorships())
	authorized.PUT("/sponsorships/:sponsorshipID/status", s.handleUpdateSponsorshipStatus())

	authorized.GET("/ws", s.handleWebsocket())
}
