package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated storefront account.
type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex" json:"email"`
	PasswordHash string   `json:"-"`
	Profile      *Profile `json:"profile,omitempty"`
}

// Profile carries the public-facing identity for a user. Username is the
// display identity stamped onto payment records; an empty username means
// the profile is incomplete and checkout must be refused. The partial
// index keeps non-empty usernames unique while letting any number of
// incomplete profiles coexist.
type Profile struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Username    string    `gorm:"index:idx_profiles_username,unique,where:username <> ''" json:"username"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Website     string    `json:"website"`
	MemberSince time.Time `json:"member_since"`
}
