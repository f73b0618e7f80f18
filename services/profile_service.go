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

type ProfileService interface {
	SaveYouTuberProfile(userID uuid.UUID, profile *models.YouTuberProfile) (*models.YouTuberProfile, *apiError.Error)
	SaveSponsorProfile(userID uuid.UUID, profile *models.SponsorProfile) (*models.SponsorProfile, *apiError.Error)
	GetYouTuberProfile(userID uuid.UUID) (*models.YouTuberProfile, *apiError.Error)
	GetSponsorProfile(userID uuid.UUID) (*models.SponsorProfile, *apiError.Error)
	DiscoverYouTubers(filter db.ProfileFilter) ([]models.YouTuberProfile, *apiError.Error)
	DiscoverSponsors(filter db.ProfileFilter) ([]models.SponsorProfile, *apiError.Error)
}

type profileService struct {
	profileRepo db.ProfileRepository
	authRepo    db.AuthRepository
}

func NewProfileService(profileRepo db.ProfileRepository, authRepo db.AuthRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		authRepo:    authRepo,
	}
}

// SaveYouTuberProfile creates or replaces the caller's channel profile. Only
// accounts with the youtuber role carry one.
func (s *profileService) SaveYouTuberProfile(userID uuid.UUID, profile *models.YouTuberProfile) (*models.YouTuberProfile, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}
	if user.Role != models.RoleYouTuber {
		return nil, apiError.New("only youtuber accounts can have a channel profile", http.StatusForbidden)
	}

	if err := models.ConformInput(profile); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	profile.UserID = userID
	if err := s.profileRepo.UpsertYouTuberProfile(profile); err != nil {
		log.Printf("SaveYouTuberProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) SaveSponsorProfile(userID uuid.UUID, profile *models.SponsorProfile) (*models.SponsorProfile, *apiError.Error) {
	user, err := s.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, apiError.New("user not found", http.StatusNotFound)
	}
	if user.Role != models.RoleSponsor {
		return nil, apiError.New("only sponsor accounts can have a company profile", http.StatusForbidden)
	}

	if err := models.ConformInput(profile); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	profile.UserID = userID
	if err := s.profileRepo.UpsertSponsorProfile(profile); err != nil {
		log.Printf("SaveSponsorProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) GetYouTuberProfile(userID uuid.UUID) (*models.YouTuberProfile, *apiError.Error) {
	profile, err := s.profileRepo.FindYouTuberProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("profile not found", http.StatusNotFound)
		}
		log.Printf("GetYouTuberProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) GetSponsorProfile(userID uuid.UUID) (*models.SponsorProfile, *apiError.Error) {
	profile, err := s.profileRepo.FindSponsorProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("profile not found", http.StatusNotFound)
		}
		log.Printf("GetSponsorProfile error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profile, nil
}

func (s *profileService) DiscoverYouTubers(filter db.ProfileFilter) ([]models.YouTuberProfile, *apiError.Error) {
	profiles, err := s.profileRepo.ListYouTuberProfiles(filter)
	if err != nil {
		log.Printf("DiscoverYouTubers error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profiles, nil
}

func (s *profileService) DiscoverSponsors(filter db.ProfileFilter) ([]models.SponsorProfile, *apiError.Error) {
	profiles, err := s.profileRepo.ListSponsorProfiles(filter)
	if err != nil {
		log.Printf("DiscoverSponsors error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return profiles, nil
}
