package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/models"
)

// EntitlementService answers ownership and presence queries used to prevent
// duplicate adds and to drive storefront button state. Ownership is always
// read from the store, never cached, because it can change out of band.
type EntitlementService struct {
	db *gorm.DB
}

// NewEntitlementService constructs EntitlementService.
func NewEntitlementService(db *gorm.DB) *EntitlementService {
	return &EntitlementService{db: db}
}

// IsInCart reports whether a cart line exists for (user, game).
func (s *EntitlementService) IsInCart(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

// IsOwned reports whether a library entry exists for (user, game).
func (s *EntitlementService) IsOwned(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}

// IsWishlisted reports whether a wishlist entry exists for (user, game).
func (s *EntitlementService) IsWishlisted(ctx context.Context, userID, gameID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Count(&count).Error
	return count > 0, err
}
