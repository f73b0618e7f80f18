package models

import "github.com/google/uuid"

type SponsorProfile struct {
	Model
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	CompanyName    string    `json:"company_name" binding:"required" conform:"trim"`
	Website        string    `json:"website" binding:"omitempty,url" conform:"trim"`
	Description    string    `json:"description" conform:"trim"`
	Industry       []string  `gorm:"serializer:json" json:"industry"`
	Location       string    `json:"location" conform:"trim"`
	Budget         string    `json:"budget" conform:"trim"`
	TargetAudience []string  `gorm:"serializer:json" json:"target_audience"`
	PastCampaigns  []string  `gorm:"serializer:json" json:"past_campaigns"`
}
