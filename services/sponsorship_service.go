package services

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/verisponsor/verisponsor/db"
	apiError "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

type SponsorshipService interface {
	CreateSponsorship(sponsorID uuid.UUID, request *models.CreateSponsorshipRequest) (*models.Sponsorship, *apiError.Error)
	ListSponsorshipsForUser(userID uuid.UUID) ([]models.Sponsorship, *apiError.Error)
	UpdateSponsorshipStatus(dealID, userID uuid.UUID, target models.SponsorshipStatus) (*models.Sponsorship, *apiError.Error)
}

type sponsorshipService struct {
	sponsorshipRepo db.SponsorshipRepository
	authRepo        db.AuthRepository
}

func NewSponsorshipService(sponsorshipRepo db.SponsorshipRepository, authRepo db.AuthRepository) SponsorshipService {
	return &sponsorshipService{
		sponsorshipRepo: sponsorshipRepo,
		authRepo:        authRepo,
	}
}

// CreateSponsorship opens a pending deal from a sponsor towards a YouTuber.
func (s *sponsorshipService) CreateSponsorship(sponsorID uuid.UUID, request *models.CreateSponsorshipRequest) (*models.Sponsorship, *apiError.Error) {
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	sponsor, err := s.authRepo.FindUserByID(sponsorID)
	if err != nil {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}
	if sponsor.Role != models.RoleSponsor {
		return nil, apiError.New("only sponsors can create sponsorship deals", http.StatusForbidden)
	}

	youtuber, err := s.authRepo.FindUserByID(request.YouTuberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("youtuber not found", http.StatusNotFound)
		}
		log.Printf("CreateSponsorship error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if youtuber.Role != models.RoleYouTuber {
		return nil, apiError.New("deals can only target youtuber accounts", http.StatusBadRequest)
	}

	deal := &models.Sponsorship{
		SponsorID:    sponsorID,
		YouTuberID:   request.YouTuberID,
		Title:        request.Title,
		Description:  request.Description,
		Budget:       request.Budget,
		Requirements: request.Requirements,
		Status:       models.SponsorshipPending,
	}
	if err := s.sponsorshipRepo.CreateSponsorship(deal); err != nil {
		log.Printf("CreateSponsorship error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return deal, nil
}

// ListSponsorshipsForUser returns the dashboard list for either role.
func (s *sponsorshipService) ListSponsorshipsForUser(userID uuid.UUID) ([]models.Sponsorship, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}

	var deals []models.Sponsorship
	if user.Role == models.RoleSponsor {
		deals, err = s.sponsorshipRepo.ListSponsorshipsBySponsor(userID)
	} else {
		deals, err = s.sponsorshipRepo.ListSponsorshipsByYouTuber(userID)
	}
	if err != nil {
		log.Printf("ListSponsorshipsForUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return deals, nil
}

// UpdateSponsorshipStatus applies a status transition. The YouTuber accepts
// or declines a pending deal; either party can complete an active one.
func (s *sponsorshipService) UpdateSponsorshipStatus(dealID, userID uuid.UUID, target models.SponsorshipStatus) (*models.Sponsorship, *apiError.Error) {
	if !models.ValidSponsorshipStatus(target) {
		return nil, apiError.New("unknown sponsorship status", http.StatusBadRequest)
	}

	deal, err := s.sponsorshipRepo.FindSponsorshipByID(dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("sponsorship not found", http.StatusNotFound)
		}
		log.Printf("UpdateSponsorshipStatus error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if deal.SponsorID != userID && deal.YouTuberID != userID {
		return nil, apiError.New("not a party to this sponsorship", http.StatusForbidden)
	}
	if (target == models.SponsorshipActive || target == models.SponsorshipDeclined) && userID != deal.YouTuberID {
		return nil, apiError.New("only the youtuber can accept or decline a deal", http.StatusForbidden)
	}

	if err := deal.Transition(target); err != nil {
		return nil, apiError.New(err.Error(), http.StatusConflict)
	}
	if err := s.sponsorshipRepo.UpdateSponsorship(deal); err != nil {
		log.Printf("UpdateSponsorshipStatus error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return deal, nil
}
