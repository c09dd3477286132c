package models

import (
	"github.com/google/uuid"
)

// Activity types recorded against a user's history feed.
const (
	ActivityPurchase  = "purchase"
	ActivityInstall   = "install"
	ActivityUninstall = "uninstall"
	ActivityPlay      = "play"
	ActivityWishlist  = "wishlist"
)

// UserActivity is one entry in the profile activity feed.
type UserActivity struct {
	BaseModel
	UserID         uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	GameID         uuid.UUID  `gorm:"type:uuid;index" json:"game_id"`
	Game           *Game      `json:"game,omitempty"`
	LibraryEntryID *uuid.UUID `gorm:"type:uuid" json:"library_entry_id"`
	ActivityType   string     `json:"activity_type"`
	Details        []byte     `gorm:"type:jsonb" json:"details"`
}
