package model

import (
	"regexp"
	"time"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)

type Profile struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Username  string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	FullName  string    `gorm:"size:64" json:"full_name,omitempty"`
	Avatar    string    `gorm:"size:255" json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidUsername reports whether s is 3-20 alphanumeric characters.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}
