package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/verisponsor/verisponsor/config"
	"github.com/verisponsor/verisponsor/db"
	apiError "github.com/verisponsor/verisponsor/errors"
	"github.com/verisponsor/verisponsor/models"
	"github.com/verisponsor/verisponsor/services/jwt"
	"github.com/verisponsor/verisponsor/services/utils"
	"gorm.io/gorm"
)

// Mailer sends transactional mail. Satisfied by mailingservices.Mailgun.
type Mailer interface {
	SendWelcomeMessage(recipient, name string) (string, error)
	SendResetPasswordMessage(recipient, resetLink string) (string, error)
}

type AuthService interface {
	SignupUser(request *models.SignupRequest) (*models.UserResponse, *apiError.Error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	LogoutUser(accessToken, email string) *apiError.Error
	GetUserProfile(userID uuid.UUID) (*models.User, error)
	EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) error
	SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error
	ResetPassword(request *models.ResetPassword, token string) *apiError.Error
}

type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
	mail     Mailer
}

// NewAuthService instantiates an authService.
func NewAuthService(authRepo db.AuthRepository, mail Mailer, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
		mail:     mail,
	}
}

func (s *authService) SignupUser(request *models.SignupRequest) (*models.UserResponse, *apiError.Error) {
	if err := models.ConformInput(request); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}
	if !models.ValidRole(request.Role) {
		return nil, apiError.New("role must be youtuber or sponsor", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	if err := s.authRepo.IsEmailExist(request.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	user := &models.User{
		Name:           request.Name,
		Email:          request.Email,
		HashedPassword: hashedPassword,
		Role:           request.Role,
	}
	user, err = s.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if _, err := s.mail.SendWelcomeMessage(user.Email, user.Name); err != nil {
		// mail failure must not break signup
		log.Printf("error sending welcome email: %v", err)
	}

	resp := user.Response()
	return &resp, nil
}

func (s *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	if err := models.ConformInput(loginRequest); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	user, err := s.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("LoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := user.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.ErrInvalidPassword
	}

	accessToken, refreshToken, err := jwt.GenerateTokenPair(user.Email, s.Config.JWTSecret, user.Role, user.ID.String())
	if err != nil {
		log.Printf("LoginUser error generating tokens: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if err := s.authRepo.SetUserOnline(user.ID, true); err != nil {
		log.Printf("LoginUser error setting online flag: %v", err)
	}

	return &models.LoginResponse{
		UserResponse: user.Response(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) LogoutUser(accessToken, email string) *apiError.Error {
	blacklist := &models.Blacklist{
		Email: email,
		Token: accessToken,
	}
	if err := s.authRepo.AddToBlackList(blacklist); err != nil {
		log.Printf("LogoutUser error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

func (s *authService) GetUserProfile(userID uuid.UUID) (*models.User, error) {
	return s.authRepo.FindUserByID(userID)
}

func (s *authService) EditUserProfile(userID uuid.UUID, details *models.EditProfileRequest) error {
	if err := models.ConformInput(details); err != nil {
		return err
	}
	return s.authRepo.EditUserProfile(userID, details)
}

func (s *authService) SendEmailForPasswordReset(request *models.ForgotPassword) *apiError.Error {
	user, err := s.authRepo.FindUserByEmail(request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// don't leak which emails exist
			return nil
		}
		log.Printf("SendEmailForPasswordReset error: %v", err)
		return apiError.ErrInternalServerError
	}

	resetToken, err := jwt.GeneratePasswordResetToken(user.Email, s.Config.JWTSecret)
	if err != nil {
		log.Printf("SendEmailForPasswordReset error generating token: %v", err)
		return apiError.ErrInternalServerError
	}

	resetLink := fmt.Sprintf("%s/password/reset/%s", s.Config.BaseUrl, resetToken)
	if _, err := s.mail.SendResetPasswordMessage(user.Email, resetLink); err != nil {
		log.Printf("SendEmailForPasswordReset error sending mail: %v", err)
		return apiError.New("could not send password reset email", http.StatusInternalServerError)
	}
	return nil
}

func (s *authService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	if request.Password != request.ConfirmPassword {
		return apiError.New("passwords do not match", http.StatusBadRequest)
	}
	if err := models.ValidatePassword(request.Password); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	email, err := jwt.VerifyResetToken(token, s.Config.JWTSecret)
	if err != nil {
		return apiError.New("invalid or expired reset token", http.StatusUnauthorized)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("ResetPassword error hashing password: %v", err)
		return apiError.ErrInternalServerError
	}

	if err := s.authRepo.UpdatePassword(hashedPassword, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("ResetPassword error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
