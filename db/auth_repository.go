package db

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/verisponsor/verisponsor/models"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateUser(user *models.User) (*models.User, error)
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uuid.UUID) (*models.User, error)
	UpdateUser(user *models.User) error
	UpdatePassword(password string, email string) error
	EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) error
	UpdateUserAvatar(userID uuid.UUID, avatarURL string) error
	SetUserOnline(userID uuid.UUID, online bool) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
	GetAllUsers() ([]models.User, error)
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

func (a *authRepo) CreateUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if err := a.DB.Create(user).Error; err != nil {
		return nil, errors.Wrap(err, "could not create user")
	}
	return user, nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	if err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return errors.New("email already in use")
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := a.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authRepo) UpdateUser(user *models.User) error {
	return a.DB.Save(user).Error
}

func (a *authRepo) UpdatePassword(password string, email string) error {
	result := a.DB.Model(&models.User{}).Where("email = ?", email).Update("hashed_password", password)
	if result.Error != nil {
		return errors.Wrap(result.Error, "could not update password")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (a *authRepo) EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) error {
	updates := map[string]interface{}{}
	if details.Name != "" {
		updates["name"] = details.Name
	}
	if details.AvatarURL != "" {
		updates["avatar_url"] = details.AvatarURL
	}
	if len(updates) == 0 {
		return nil
	}
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (a *authRepo) UpdateUserAvatar(userID uuid.UUID, avatarURL string) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("avatar_url", avatarURL).Error
}

func (a *authRepo) SetUserOnline(userID uuid.UUID, online bool) error {
	return a.DB.Model(&models.User{}).Where("id = ?", userID).Update("online", online).Error
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return a.DB.Create(blacklist).Error
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count)
	return count > 0
}

func (a *authRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := a.DB.Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "could not list users")
	}
	return users, nil
}
