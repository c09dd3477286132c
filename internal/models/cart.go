package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a pending, unpurchased game selection tied to a user.
// The composite unique index guarantees at most one line per (user, game).
type CartItem struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_cart_user_game" json:"user_id"`
	GameID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_user_game" json:"game_id"`
	Game     *Game     `json:"game,omitempty"`
	AddedAt  time.Time `json:"added_at"`
	Quantity int       `gorm:"default:1" json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart"
}
