package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

type SponsorshipRepository interface {
	CreateSponsorship(deal *models.Sponsorship) error
	FindSponsorshipByID(id uuid.UUID) (*models.Sponsorship, error)
	ListSponsorshipsBySponsor(sponsorID uuid.UUID) ([]models.Sponsorship, error)
	ListSponsorshipsByYouTuber(youtuberID uuid.UUID) ([]models.Sponsorship, error)
	UpdateSponsorship(deal *models.Sponsorship) error
}

type sponsorshipRepo struct {
	DB *gorm.DB
}

func NewSponsorshipRepo(db *GormDB) SponsorshipRepository {
	return &sponsorshipRepo{db.DB}
}

func (r *sponsorshipRepo) CreateSponsorship(deal *models.Sponsorship) error {
	if err := r.DB.Create(deal).Error; err != nil {
		return errors.Wrap(err, "could not create sponsorship")
	}
	return nil
}

func (r *sponsorshipRepo) FindSponsorshipByID(id uuid.UUID) (*models.Sponsorship, error) {
	var deal models.Sponsorship
	if err := r.DB.Where("id = ?", id).First(&deal).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *sponsorshipRepo) ListSponsorshipsBySponsor(sponsorID uuid.UUID) ([]models.Sponsorship, error) {
	var deals []models.Sponsorship
	err := r.DB.Where("sponsor_id = ?", sponsorID).Order("updated_at DESC").Find(&deals).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list sponsorships")
	}
	return deals, nil
}

func (r *sponsorshipRepo) ListSponsorshipsByYouTuber(youtuberID uuid.UUID) ([]models.Sponsorship, error) {
	var deals []models.Sponsorship
	err := r.DB.Where("youtuber_id = ?", youtuberID).Order("updated_at DESC").Find(&deals).Error
	if err != nil {
		return nil, errors.Wrap(err, "could not list sponsorships")
	}
	return deals, nil
}

func (r *sponsorshipRepo) UpdateSponsorship(deal *models.Sponsorship) error {
	return r.DB.Save(deal).Error
}
