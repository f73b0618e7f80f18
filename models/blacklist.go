package models

// Blacklist holds access tokens revoked before their expiry (logout).
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token" gorm:"index"`
}
