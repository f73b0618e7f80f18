package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/verisponsor/verisponsor/config"
	"github.com/verisponsor/verisponsor/models"
)

type fakeMailer struct {
	welcomeTo []string
	resetTo   []string
}

func (f *fakeMailer) SendWelcomeMessage(recipient, name string) (string, error) {
	f.welcomeTo = append(f.welcomeTo, recipient)
	return "mail-id", nil
}

func (f *fakeMailer) SendResetPasswordMessage(recipient, resetLink string) (string, error) {
	f.resetTo = append(f.resetTo, recipient)
	return "mail-id", nil
}

func newAuthFixture(t *testing.T) (AuthService, *fakeAuthRepo, *fakeMailer) {
	t.Helper()
	authRepo := newFakeAuthRepo()
	mailer := &fakeMailer{}
	conf := &config.Config{JWTSecret: "test-secret", BaseUrl: "http://localhost:8080"}
	return NewAuthService(authRepo, mailer, conf), authRepo, mailer
}

func TestSignupUser(t *testing.T) {
	t.Run("creates user and sends welcome mail", func(t *testing.T) {
		svc, authRepo, mailer := newAuthFixture(t)

		resp, apiErr := svc.SignupUser(&models.SignupRequest{
			Name:     "Gaming Legends",
			Email:    "creator@example.com",
			Password: "s3cret-pass",
			Role:     models.RoleYouTuber,
		})
		require.Nil(t, apiErr)
		assert.Equal(t, models.RoleYouTuber, resp.Role)
		assert.Equal(t, []string{"creator@example.com"}, mailer.welcomeTo)

		stored, err := authRepo.FindUserByEmail("creator@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NoError(t, stored.VerifyPassword("s3cret-pass"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, apiErr := svc.SignupUser(&models.SignupRequest{
			Name:     "x y",
			Email:    "short@example.com",
			Password: "abc",
			Role:     models.RoleSponsor,
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, apiErr := svc.SignupUser(&models.SignupRequest{
			Name:     "x y",
			Email:    "role@example.com",
			Password: "s3cret-pass",
			Role:     "admin",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	})
}

func TestLoginUser(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, apiErr := svc.SignupUser(&models.SignupRequest{
		Name:     "Tech Innovations",
		Email:    "sponsor@example.com",
		Password: "s3cret-pass",
		Role:     models.RoleSponsor,
	})
	require.Nil(t, apiErr)

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		resp, apiErr := svc.LoginUser(&models.LoginRequest{
			Email:    "sponsor@example.com",
			Password: "s3cret-pass",
		})
		require.Nil(t, apiErr)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, models.RoleSponsor, resp.Role)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, apiErr := svc.LoginUser(&models.LoginRequest{
			Email:    "sponsor@example.com",
			Password: "wrong-pass",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		_, apiErr := svc.LoginUser(&models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})
}
