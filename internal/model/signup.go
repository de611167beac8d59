package model

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PresenceStatus string

const (
	PresencePending   PresenceStatus = "pending"
	PresenceConfirmed PresenceStatus = "confirmed"
	PresenceRejected  PresenceStatus = "rejected"
)

type Signup struct {
	ID             uint64         `gorm:"primaryKey" json:"id"`
	UserID         uint64         `gorm:"not null;index;uniqueIndex:uk_user_event" json:"user_id"`
	EventID        uint64         `gorm:"not null;index;uniqueIndex:uk_user_event" json:"event_id"`
	SignupDate     time.Time      `gorm:"autoCreateTime" json:"signup_date"`
	PaymentStatus  PaymentStatus  `gorm:"size:16;not null;default:pending" json:"payment_status"`
	PresenceStatus PresenceStatus `gorm:"size:16;not null;default:pending" json:"presence_status"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// SignupWithEvent joins a signup row with a summary of its event, for the
// caller's signup listing.
type SignupWithEvent struct {
	Signup
	EventTitle string    `json:"event_title"`
	EventDate  time.Time `json:"event_date"`
	Location   string    `json:"location,omitempty"`
	Price      float64   `json:"price"`
}

// SignupStats aggregates presence counts for one event.
type SignupStats struct {
	SignupCount    int64 `json:"signup_count"`
	ConfirmedCount int64 `json:"confirmed_count"`
	RejectedCount  int64 `json:"rejected_count"`
}

func (p PaymentStatus) Valid() bool {
	return p == PaymentPending || p == PaymentCompleted || p == PaymentFailed
}

func (p PresenceStatus) Valid() bool {
	return p == PresencePending || p == PresenceConfirmed || p == PresenceRejected
}
