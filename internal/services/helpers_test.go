package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/gamevault/internal/database"
	"github.com/example/gamevault/internal/models"
)

// newTestDB opens an isolated sqlite database with the full schema. The
// sqlite driver translates unique violations to gorm.ErrDuplicatedKey the
// same way the postgres driver does, which the grant loop relies on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "gamevault.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	profile := models.Profile{
		UserID:      user.ID,
		Username:    username,
		MemberSince: time.Now(),
	}
	require.NoError(t, db.Create(&profile).Error)

	return &user
}

func seedGame(t *testing.T, db *gorm.DB, title string, price float64, free bool) *models.Game {
	t.Helper()

	game := models.Game{
		Title:  title,
		IsFree: free,
	}
	if !free {
		game.Price = &price
	}
	require.NoError(t, db.Create(&game).Error)

	return &game
}

func newServices(db *gorm.DB) (*CartService, *EntitlementService, *CheckoutService) {
	entitlements := NewEntitlementService(db)
	cart := NewCartService(db, entitlements)
	activity := NewActivityService(db)
	checkout := NewCheckoutService(db, cart, &SimulatedCharger{}, activity)
	return cart, entitlements, checkout
}
