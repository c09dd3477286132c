package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/models"
)

// ActivityService records entries for the profile activity feed.
type ActivityService struct {
	db *gorm.DB
}

// NewActivityService constructs ActivityService.
func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record inserts one activity entry. Details may be nil.
func (s *ActivityService) Record(ctx context.Context, userID, gameID uuid.UUID, libraryEntryID *uuid.UUID, activityType string, details map[string]any) error {
	activity := models.UserActivity{
		UserID:         userID,
		GameID:         gameID,
		LibraryEntryID: libraryEntryID,
		ActivityType:   activityType,
	}

	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		activity.Details = payload
	}

	return s.db.WithContext(ctx).Create(&activity).Error
}

// List returns the user's most recent activity entries.
func (s *ActivityService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 50
	}

	var activities []models.UserActivity
	if err := s.db.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
