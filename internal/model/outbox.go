package model

import "time"

// Outbox event types.
const (
	EventSignupCreated   = "signup.created"
	EventSignupCancelled = "signup.cancelled"
	EventMemberJoined    = "member.joined"
	EventMemberLeft      = "member.left"
)

// Outbox delivery states.
const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// Outbox records a domain event in the same transaction as the write that
// produced it. A background relayer publishes pending rows.
type Outbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"`
	UserID    uint64 `gorm:"not null"`
	SubjectID uint64 `gorm:"not null"` // event or community id
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;index"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Outbox) TableName() string { return "outbox" }
