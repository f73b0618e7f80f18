package models

import "github.com/google/uuid"

// YouTuberStats are the channel metrics sponsors browse on the discover page.
type YouTuberStats struct {
	Subscribers    int64   `json:"subscribers"`
	AverageViews   int64   `json:"average_views"`
	TotalVideos    int     `json:"total_videos"`
	EngagementRate float64 `json:"engagement_rate"`
}

type YouTuberProfile struct {
	Model
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	ChannelName    string    `json:"channel_name" binding:"required" conform:"trim"`
	ChannelURL     string    `json:"channel_url" binding:"omitempty,url" conform:"trim"`
	Description    string    `json:"description" conform:"trim"`
	Categories     []string  `gorm:"serializer:json" json:"categories"`
	Location       string    `json:"location" conform:"trim"`
	Subscribers    int64     `json:"subscribers"`
	AverageViews   int64     `json:"average_views"`
	TotalVideos    int       `json:"total_videos"`
	EngagementRate float64   `json:"engagement_rate"`
	PastBrands     []string  `gorm:"serializer:json" json:"past_brands"`
	ContentSamples []string  `gorm:"serializer:json" json:"content_samples"`
	PriceRange     string    `json:"price_range" conform:"trim"`
}

func (p *YouTuberProfile) Stats() YouTuberStats {
	return YouTuberStats{
		Subscribers:    p.Subscribers,
		AverageViews:   p.AverageViews,
		TotalVideos:    p.TotalVideos,
		EngagementRate: p.EngagementRate,
	}
}
