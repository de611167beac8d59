package model

import (
	"regexp"
	"time"
)

// Community and event names share the same format rule: 3-50 characters,
// letters, digits and spaces.
var nameRe = regexp.MustCompile(`^[a-zA-Z0-9 ]{3,50}$`)

type MemberRole string

const (
	RoleMember MemberRole = "member"
	RoleAdmin  MemberRole = "admin"
)

type MemberStatus string

const (
	MemberPending  MemberStatus = "pending"
	MemberAccepted MemberStatus = "accepted"
	MemberRejected MemberStatus = "rejected"
)

type Community struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatorID   uint64    `gorm:"not null;index" json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CommunityMember struct {
	ID          uint64       `gorm:"primaryKey" json:"id"`
	CommunityID uint64       `gorm:"not null;index;uniqueIndex:uk_community_user" json:"community_id"`
	UserID      uint64       `gorm:"not null;index;uniqueIndex:uk_community_user" json:"user_id"`
	Role        MemberRole   `gorm:"size:16;not null;default:member" json:"role"`
	Status      MemberStatus `gorm:"size:16;not null;default:pending" json:"status"`
	JoinedAt    time.Time    `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ValidName reports whether s satisfies the shared community/event name rule.
func ValidName(s string) bool {
	return nameRe.MatchString(s)
}

func (r MemberRole) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

func (s MemberStatus) Valid() bool {
	return s == MemberPending || s == MemberAccepted || s == MemberRejected
}
