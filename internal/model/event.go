package model

import "time"

type Event struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	CommunityID     *uint64   `gorm:"index" json:"community_id,omitempty"`
	Title           string    `gorm:"size:64;not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	EventDate       time.Time `gorm:"not null" json:"event_date"`
	// No default tag here: gorm drops zero-valued fields that carry one
	// on insert, which would force private events public.
	IsPublic        bool      `gorm:"not null" json:"is_public"`
	Price           float64   `gorm:"not null;default:0" json:"price"`
	MinParticipants int       `gorm:"not null;default:0" json:"min_participants"`
	MaxParticipants int       `gorm:"not null;default:0" json:"max_participants"`
	Location        string    `gorm:"size:255" json:"location,omitempty"`
	ImageURL        string    `gorm:"size:255" json:"image_url,omitempty"`
	CreatorID       uint64    `gorm:"not null;index" json:"creator_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EventInvite grants a user access to a private event. Created by the event
// creator via add-user.
type EventInvite struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventID   uint64    `gorm:"not null;index;uniqueIndex:uk_event_user" json:"event_id"`
	UserID    uint64    `gorm:"not null;index;uniqueIndex:uk_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
