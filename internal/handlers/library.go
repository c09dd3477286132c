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

// LibraryHandler manages the user's game library and its install/play state.
type LibraryHandler struct {
	db       *gorm.DB
	activity *services.ActivityService
}

// NewLibraryHandler constructs LibraryHandler.
func NewLibraryHandler(db *gorm.DB, activity *services.ActivityService) *LibraryHandler {
	return &LibraryHandler{db: db, activity: activity}
}

// ListLibrary returns the user's library entries with games preloaded.
// The installed filter mirrors the storefront's library tabs.
func (h *LibraryHandler) ListLibrary(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	query := h.db.Preload("Game").Where("user_id = ?", userID)

	switch c.Query("installed") {
	case "true":
		query = query.Where("is_installed = ?", true)
	case "false":
		query = query.Where("is_installed = ?", false)
	}

	var entries []models.LibraryEntry
	if err := query.Order("purchase_date desc").Find(&entries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": entries})
}

// Install marks a library entry as installed.
func (h *LibraryHandler) Install(c *fiber.Ctx) error {
	return h.setInstalled(c, true, models.ActivityInstall)
}

// Uninstall marks a library entry as not installed.
func (h *LibraryHandler) Uninstall(c *fiber.Ctx) error {
	return h.setInstalled(c, false, models.ActivityUninstall)
}

func (h *LibraryHandler) setInstalled(c *fiber.Ctx, installed bool, activityType string) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := h.findEntry(c, userID)
	if err != nil {
		return err
	}

	if err := h.db.Model(&models.LibraryEntry{}).
		Where("id = ?", entry.ID).
		Update("is_installed", installed).Error; err != nil {
		return err
	}

	// The feed is best effort.
	if err := h.activity.Record(c.Context(), userID, entry.GameID, &entry.ID, activityType, nil); err != nil {
		log.Printf("[Library] failed to record %s activity: %v", activityType, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "library entry updated"})
}

type playRequest struct {
	Minutes int `json:"minutes"`
}

// Play stamps last_played and accumulates playtime for a library entry.
func (h *LibraryHandler) Play(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	entry, err := h.findEntry(c, userID)
	if err != nil {
		return err
	}

	var req playRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Minutes < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "minutes must not be negative")
	}

	updates := map[string]interface{}{
		"last_played":      time.Now(),
		"playtime_minutes": gorm.Expr("playtime_minutes + ?", req.Minutes),
	}

	if err := h.db.Model(&models.LibraryEntry{}).
		Where("id = ?", entry.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	if err := h.activity.Record(c.Context(), userID, entry.GameID, &entry.ID, models.ActivityPlay, map[string]any{
		"minutes": req.Minutes,
	}); err != nil {
		log.Printf("[Library] failed to record play activity: %v", err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "playtime recorded"})
}

func (h *LibraryHandler) findEntry(c *fiber.Ctx, userID uuid.UUID) (*models.LibraryEntry, error) {
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var entry models.LibraryEntry
	if err := h.db.First(&entry, "id = ? AND user_id = ?", entryID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "library entry not found")
		}
		return nil, err
	}

	return &entry, nil
}
