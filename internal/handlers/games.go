package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/middleware"
	"github.com/example/gamevault/internal/models"
	"github.com/example/gamevault/internal/services"
	"github.com/example/gamevault/internal/utils"
)

// GameHandler serves catalog read endpoints.
type GameHandler struct {
	db           *gorm.DB
	entitlements *services.EntitlementService
}

// NewGameHandler constructs GameHandler.
func NewGameHandler(db *gorm.DB, entitlements *services.EntitlementService) *GameHandler {
	return &GameHandler{db: db, entitlements: entitlements}
}

// ListGames returns catalog entries with optional search and genre filters.
func (h *GameHandler) ListGames(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Game{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if genre := c.Query("genre"); genre != "" {
		query = query.Where("genre = ?", genre)
	}
	if c.Query("free") == "true" {
		query = query.Where("is_free = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var games []models.Game
	if err := query.Order("title asc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&games).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    games,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetGame returns a single game. When the request carries a valid bearer
// token the response also includes the viewer's in_cart/owned/wishlisted
// flags, which drive the storefront button state.
func (h *GameHandler) GetGame(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var game models.Game
	if err := h.db.First(&game, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "game not found")
		}
		return err
	}

	payload := fiber.Map{"game": game}

	if userID, ok := middleware.GetCurrentUserID(c); ok {
		inCart, err := h.entitlements.IsInCart(c.Context(), userID, game.ID)
		if err != nil {
			return err
		}
		owned, err := h.entitlements.IsOwned(c.Context(), userID, game.ID)
		if err != nil {
			return err
		}
		wishlisted, err := h.entitlements.IsWishlisted(c.Context(), userID, game.ID)
		if err != nil {
			return err
		}

		payload["in_cart"] = inCart
		payload["owned"] = owned
		payload["wishlisted"] = wishlisted
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}
