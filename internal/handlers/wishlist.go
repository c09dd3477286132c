package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/middleware"
	"github.com/example/gamevault/internal/models"
	"github.com/example/gamevault/internal/services"
)

// WishlistHandler manages wishlist endpoints. Wishlist state is independent
// of the cart and never touched by checkout.
type WishlistHandler struct {
	db           *gorm.DB
	entitlements *services.EntitlementService
	activity     *services.ActivityService
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(db *gorm.DB, entitlements *services.EntitlementService, activity *services.ActivityService) *WishlistHandler {
	return &WishlistHandler{db: db, entitlements: entitlements, activity: activity}
}

// ListWishlist returns the user's wishlist with games preloaded, highest
// priority first.
func (h *WishlistHandler) ListWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.WishlistItem
	if err := h.db.Preload("Game").
		Where("user_id = ?", userID).
		Order("priority desc, added_at asc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

type addToWishlistRequest struct {
	GameID   string `json:"game_id"`
	Priority int    `json:"priority"`
}

// AddToWishlist saves a game for later.
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addToWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game_id")
	}

	var game models.Game
	if err := h.db.First(&game, "id = ?", gameID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "game not found")
		}
		return err
	}

	wishlisted, err := h.entitlements.IsWishlisted(c.Context(), userID, gameID)
	if err != nil {
		return err
	}
	if wishlisted {
		return mapServiceError(services.ErrAlreadyWishlisted)
	}

	item := models.WishlistItem{
		UserID:   userID,
		GameID:   gameID,
		AddedAt:  time.Now(),
		Priority: req.Priority,
	}

	if err := h.db.Create(&item).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return mapServiceError(services.ErrAlreadyWishlisted)
		}
		return err
	}

	// The feed is best effort.
	if err := h.activity.Record(c.Context(), userID, gameID, nil, models.ActivityWishlist, nil); err != nil {
		log.Printf("[Wishlist] failed to record activity: %v", err)
	}

	item.Game = &game
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// RemoveFromWishlist deletes one game from the wishlist.
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	gameID, err := uuid.Parse(c.Params("gameId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game id")
	}

	if err := h.db.Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.WishlistItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed"})
}
