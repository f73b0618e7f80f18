package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenValidity  = time.Hour * 24
	RefreshTokenValidity = time.Hour * 24 * 7
)

// GenerateTokenPair returns a signed access and refresh token for the user.
func GenerateTokenPair(email, secret, role, id string) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("JWT secret key is missing")
	}

	accessClaims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"role":  role,
		"type":  "access_token",
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":   id,
		"type": "refresh_token",
		"exp":  time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses the token and returns its claims if the
// signature and expiry check out.
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GeneratePasswordResetToken creates a short-lived token bound to the
// user's email.
func GeneratePasswordResetToken(email, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret key is missing")
	}

	resetClaims := jwt.MapClaims{
		"email": email,
		"type":  "password_reset_token",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, resetClaims).SignedString([]byte(secret))
}

// VerifyResetToken returns the email a valid reset token was issued for.
func VerifyResetToken(tokenString, secret string) (string, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return "", err
	}
	if claims["type"] != "password_reset_token" {
		return "", errors.New("not a password reset token")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("invalid token claims")
	}
	return email, nil
}
