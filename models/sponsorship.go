package models

import (
	"fmt"

	"github.com/google/uuid"
)

type SponsorshipStatus string

const (
	SponsorshipPending   SponsorshipStatus = "pending"
	SponsorshipActive    SponsorshipStatus = "active"
	SponsorshipCompleted SponsorshipStatus = "completed"
	SponsorshipDeclined  SponsorshipStatus = "declined"
)

// Sponsorship is a deal offered by a sponsor to a YouTuber. It starts
// pending; the YouTuber accepts (active) or declines it, and an active deal
// can be closed out as completed.
type Sponsorship struct {
	Model
	SponsorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"sponsor_id"`
	Sponsor      User              `gorm:"foreignKey:SponsorID" json:"-"`
	YouTuberID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"youtuber_id"`
	YouTuber     User              `gorm:"foreignKey:YouTuberID" json:"-"`
	Title        string            `json:"title" binding:"required" conform:"trim"`
	Description  string            `json:"description" conform:"trim"`
	Budget       string            `json:"budget" conform:"trim"`
	Requirements string            `json:"requirements" conform:"trim"`
	Status       SponsorshipStatus `gorm:"default:'pending'" json:"status"`
}

func ValidSponsorshipStatus(s SponsorshipStatus) bool {
	switch s {
	case SponsorshipPending, SponsorshipActive, SponsorshipCompleted, SponsorshipDeclined:
		return true
	}
	return false
}

// CanTransition reports whether a deal may move from its current status to
// the target one.
func (s *Sponsorship) CanTransition(target SponsorshipStatus) bool {
	switch s.Status {
	case SponsorshipPending:
		return target == SponsorshipActive || target == SponsorshipDeclined
	case SponsorshipActive:
		return target == SponsorshipCompleted
	}
	return false
}

func (s *Sponsorship) Transition(target SponsorshipStatus) error {
	if !s.CanTransition(target) {
		return fmt.Errorf("cannot move sponsorship from %s to %s", s.Status, target)
	}
	s.Status = target
	return nil
}

type CreateSponsorshipRequest struct {
	YouTuberID   uuid.UUID `json:"youtuber_id" binding:"required"`
	Title        string    `json:"title" binding:"required" conform:"trim"`
	Description  string    `json:"description" conform:"trim"`
	Budget       string    `json:"budget" conform:"trim"`
	Requirements string    `json:"requirements" conform:"trim"`
}

type UpdateSponsorshipStatusRequest struct {
	Status SponsorshipStatus `json:"status" binding:"required"`
}
