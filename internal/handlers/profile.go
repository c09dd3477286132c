package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/middleware"
	"github.com/example/gamevault/internal/models"
	"github.com/example/gamevault/internal/services"
	"github.com/example/gamevault/internal/utils"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	db       *gorm.DB
	activity *services.ActivityService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB, activity *services.ActivityService) *ProfileHandler {
	return &ProfileHandler{db: db, activity: activity}
}

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	payload := fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	}
	if user.Profile != nil {
		payload["username"] = user.Profile.Username
		payload["avatar_url"] = user.Profile.AvatarURL
		payload["bio"] = user.Profile.Bio
		payload["location"] = user.Profile.Location
		payload["website"] = user.Profile.Website
		payload["member_since"] = user.Profile.MemberSince
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
	Location  *string `json:"location"`
	Website   *string `json:"website"`
}

// UpdateProfile updates profile fields. An empty username is rejected
// because checkout stamps the username onto every payment record.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username must not be blank")
		}
		updates["username"] = username
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}

	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	result := h.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		if result.Error == gorm.ErrDuplicatedKey {
			return fiber.NewError(fiber.StatusConflict, "username already taken")
		}
		return result.Error
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

// ListActivity returns the user's recent activity feed.
func (h *ProfileHandler) ListActivity(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)

	activities, err := h.activity.List(c.Context(), userID, pg.Limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": activities})
}
