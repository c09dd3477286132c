package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/models"
)

// CartService maintains the authenticated user's current selection set.
type CartService struct {
	db           *gorm.DB
	entitlements *EntitlementService
}

// NewCartService constructs CartService.
func NewCartService(db *gorm.DB, entitlements *EntitlementService) *CartService {
	return &CartService{db: db, entitlements: entitlements}
}

// Items returns the user's cart lines with games preloaded, in the order
// they were added. The checkout grant loop relies on this ordering being
// deterministic.
func (s *CartService) Items(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID).
		Order("added_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add puts a game into the user's cart. Fails with ErrAlreadyInCart if a
// line already exists and ErrAlreadyOwned if the game is in the library.
func (s *CartService) Add(ctx context.Context, userID, gameID uuid.UUID) (*models.CartItem, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, "id = ?", gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	inCart, err := s.entitlements.IsInCart(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if inCart {
		return nil, ErrAlreadyInCart
	}

	owned, err := s.entitlements.IsOwned(ctx, userID, gameID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, ErrAlreadyOwned
	}

	item := models.CartItem{
		UserID:   userID,
		GameID:   gameID,
		AddedAt:  time.Now(),
		Quantity: 1,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		// The unique index backstops concurrent adds of the same game.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}

	item.Game = &game
	return &item, nil
}

// Remove deletes the cart line for (user, game) if present. Removing an
// absent line is not an error.
func (s *CartService) Remove(ctx context.Context, userID, gameID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.CartItem{}).Error
}

// Clear deletes all cart lines for the user. Called after a successful
// checkout and exposed as an explicit UI action.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// Count returns the number of lines in the user's cart.
func (s *CartService) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
