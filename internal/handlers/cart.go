package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/gamevault/internal/middleware"
	"github.com/example/gamevault/internal/services"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	cart *services.CartService
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// GetCart returns the user's cart lines and priced totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.cart.Items(c.Context(), userID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":  items,
			"count":  len(items),
			"totals": services.ComputeTotals(items),
		},
	})
}

type addToCartRequest struct {
	GameID string `json:"game_id"`
}

// AddToCart puts a game into the user's cart.
func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game_id")
	}

	item, err := h.cart.Add(c.Context(), userID, gameID)
	if err != nil {
		return mapServiceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// RemoveFromCart deletes one game from the cart. Absent lines are a no-op.
func (h *CartHandler) RemoveFromCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	gameID, err := uuid.Parse(c.Params("gameId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid game id")
	}

	if err := h.cart.Remove(c.Context(), userID, gameID); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed"})
}

// ClearCart empties the user's cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.cart.Clear(c.Context(), userID); err != nil {
		return mapServiceError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}
