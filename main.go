package main

import (
	"log"

	"github.com/verisponsor/verisponsor/config"
	"github.com/verisponsor/verisponsor/db"
	"github.com/verisponsor/verisponsor/mailingservices"
	"github.com/verisponsor/verisponsor/server"
	"github.com/verisponsor/verisponsor/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init(conf)

	gormDB := db.GetDB(conf)

	authRepo := db.NewAuthRepo(gormDB)
	profileRepo := db.NewProfileRepo(gormDB)
	chatRepo := db.NewChatRepo(gormDB)
	sponsorshipRepo := db.NewSponsorshipRepo(gormDB)

	hub := server.NewHub()

	authService := services.NewAuthService(authRepo, mailgunClient, conf)
	profileService := services.NewProfileService(profileRepo, authRepo)
	chatService := services.NewChatService(chatRepo, authRepo, hub)
	sponsorshipService := services.NewSponsorshipService(sponsorshipRepo, authRepo)

	s := &server.Server{
		Config:             conf,
		Mail:               mailgunClient,
		AuthRepository:     authRepo,
		AuthService:        authService,
		ProfileService:     profileService,
		ChatService:        chatService,
		SponsorshipService: sponsorshipService,
		Hub:                hub,
		DB:                 *gormDB,
	}

	s.Start()
}
