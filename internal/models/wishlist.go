package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is a saved-for-later game, independent of the cart.
type WishlistItem struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_wishlist_user_game" json:"user_id"`
	GameID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_wishlist_user_game" json:"game_id"`
	Game     *Game     `json:"game,omitempty"`
	AddedAt  time.Time `json:"added_at"`
	Priority int       `json:"priority"`
}

func (WishlistItem) TableName() string {
	return "wishlist"
}
