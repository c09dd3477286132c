package models

import (
	"time"

	"github.com/google/uuid"
)

// LibraryEntry is the entitlement: its presence is the source of truth for
// "does this user own this game". The composite unique index backs the
// idempotent-grant rule — a duplicate insert is treated as already owned.
type LibraryEntry struct {
	BaseModel
	UserID          uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_library_user_game" json:"user_id"`
	GameID          uuid.UUID  `gorm:"type:uuid;uniqueIndex:idx_library_user_game" json:"game_id"`
	Game            *Game      `json:"game,omitempty"`
	PaymentID       *uuid.UUID `gorm:"type:uuid" json:"payment_id"`
	PurchaseDate    time.Time  `json:"purchase_date"`
	IsInstalled     bool       `json:"is_installed"`
	LastPlayed      *time.Time `json:"last_played"`
	PlaytimeMinutes int        `json:"playtime_minutes"`
}

func (LibraryEntry) TableName() string {
	return "user_library"
}
