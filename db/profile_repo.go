package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileFilter narrows the discover listing. Zero values mean "no filter".
type ProfileFilter struct {
	Search   string
	Category string
	Location string
	SortBy   string
}

type ProfileRepository interface {
	UpsertYouTuberProfile(profile *models.YouTuberProfile) error
	UpsertSponsorProfile(profile *models.SponsorProfile) error
	FindYouTuberProfileByUserID(userID uuid.UUID) (*models.YouTuberProfile, error)
	FindSponsorProfileByUserID(userID uuid.UUID) (*models.SponsorProfile, error)
	ListYouTuberProfiles(filter ProfileFilter) ([]models.YouTuberProfile, error)
	ListSponsorProfiles(filter ProfileFilter) ([]models.SponsorProfile, error)
}

type profileRepo struct {
	DB *gorm.DB
}

func NewProfileRepo(db *GormDB) ProfileRepository {
	return &profileRepo{db.DB}
}

func (r *profileRepo) UpsertYouTuberProfile(profile *models.YouTuberProfile) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return errors.Wrap(err, "could not upsert youtuber profile")
	}
	return nil
}

func (r *profileRepo) UpsertSponsorProfile(profile *models.SponsorProfile) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
	if err != nil {
		return errors.Wrap(err, "could not upsert sponsor profile")
	}
	return nil
}

func (r *profileRepo) FindYouTuberProfileByUserID(userID uuid.UUID) (*models.YouTuberProfile, error) {
	var profile models.YouTuberProfile
	if err := r.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) FindSponsorProfileByUserID(userID uuid.UUID) (*models.SponsorProfile, error) {
	var profile models.SponsorProfile
	if err := r.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) ListYouTuberProfiles(filter ProfileFilter) ([]models.YouTuberProfile, error) {
	q := r.DB.Model(&models.YouTuberProfile{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("channel_name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Category != "" {
		q = q.Where("categories::text ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	switch filter.SortBy {
	case "subscribers":
		q = q.Order("subscribers DESC")
	case "engagement":
		q = q.Order("engagement_rate DESC")
	default:
		q = q.Order("channel_name ASC")
	}

	var profiles []models.YouTuberProfile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "could not list youtuber profiles")
	}
	return profiles, nil
}

func (r *profileRepo) ListSponsorProfiles(filter ProfileFilter) ([]models.SponsorProfile, error) {
	q := r.DB.Model(&models.SponsorProfile{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("company_name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Category != "" {
		q = q.Where("industry::text ILIKE ?", "%"+filter.Category+"%")
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	q = q.Order("company_name ASC")

	var profiles []models.SponsorProfile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "could not list sponsor profiles")
	}
	return profiles, nil
}
