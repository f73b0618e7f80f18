package models

import (
	"errors"

	goval "github.com/go-passwd/validator"
	"github.com/google/uuid"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleYouTuber = "youtuber"
	RoleSponsor  = "sponsor"
)

// User represents a user of the application. Role decides which profile
// type (YouTuberProfile or SponsorProfile) belongs to the account.
type User struct {
	Model
	Name           string `json:"name" binding:"required,min=2" conform:"trim"`
	Email          string `json:"email" gorm:"unique;not null" binding:"required,email" conform:"email"`
	Password       string `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string `json:"-"`
	Role           string `json:"role" gorm:"not null" binding:"required,oneof=youtuber sponsor"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	IsVerified     bool   `json:"is_verified" gorm:"default:false"`
	Online         bool   `json:"online" gorm:"default:false"`
	AccessToken    string `json:"-" gorm:"-"`
}

func ValidRole(role string) bool {
	return role == RoleYouTuber || role == RoleSponsor
}

// VerifyPassword compares the supplied password with the stored hash.
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

// ConformInput trims and normalises the string fields of a request struct.
func ConformInput(data interface{}) error {
	return conform.Strings(data)
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2" conform:"trim"`
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=youtuber sponsor" conform:"trim,lower"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsVerified bool      `json:"is_verified"`
}

func (u *User) Response() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		AvatarURL:  u.AvatarURL,
		IsVerified: u.IsVerified,
	}
}

type LoginResponse struct {
	UserResponse
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type EditProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,min=2" conform:"trim"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url" conform:"trim"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email" conform:"email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}
