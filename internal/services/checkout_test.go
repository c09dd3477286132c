package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/models"
)

type failingCharger struct{}

func (failingCharger) Authorize(ctx context.Context, method string, amount float64) error {
	return errors.New("gateway unavailable")
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&count).Error)
	return count
}

func TestCheckoutSingleItemCreditCard(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	elden := seedGame(t, db, "Elden Ring", 59.99, false)

	_, err := cart.Add(ctx, user.ID, elden.ID)
	require.NoError(t, err)

	result, err := checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	require.NoError(t, err)

	assert.Equal(t, StateComplete, result.State)
	assert.Equal(t, 59.99, result.Totals.Subtotal)
	assert.Equal(t, 6.00, result.Totals.Discount)
	assert.Equal(t, 53.99, result.Totals.Total)
	require.Len(t, result.Lines, 1)
	assert.False(t, result.Lines[0].AlreadyOwned)
	assert.Equal(t, "Elden Ring", result.Lines[0].Title)

	var payment models.Payment
	require.NoError(t, db.First(&payment, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, models.PaymentTypeCreditCard, payment.PaymentType)
	assert.Equal(t, "alice", payment.Username)
	assert.Equal(t, elden.ID, payment.GameID)

	assert.EqualValues(t, 1, countRows(t, db, &models.CreditCardPayment{}, "payment_id = ?", payment.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.LibraryEntry{}, "user_id = ? AND game_id = ?", user.ID, elden.ID))

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutMultipleItemsRecordCounts(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	for _, title := range []string{"Hades", "Celeste", "Portal 2"} {
		game := seedGame(t, db, title, 19.99, false)
		_, err := cart.Add(ctx, user.ID, game.ID)
		require.NoError(t, err)
	}

	result, err := checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeDebitCard,
	})
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	assert.EqualValues(t, 3, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 3, countRows(t, db, &models.DebitCardPayment{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 3, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))
	assert.Zero(t, countRows(t, db, &models.CreditCardPayment{}, "user_id = ?", user.ID))
}

func TestCheckoutUPICreatesMethodRecord(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	game := seedGame(t, db, "Stardew Valley", 14.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeUPI,
		UPIID:         "alice@upi",
	})
	require.NoError(t, err)

	var record models.UPIPayment
	require.NoError(t, db.First(&record, "user_id = ?", user.ID).Error)
	assert.Equal(t, "alice@upi", record.UPIID)
	assert.Equal(t, "alice", record.Username)
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	db := newTestDB(t)
	_, _, checkout := newServices(db)

	user := seedUser(t, db, "alice")

	_, err := checkout.Checkout(context.Background(), user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutBlankUPIIDFails(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	apex := seedGame(t, db, "Apex Legends", 0, true)

	_, err := cart.Add(ctx, user.ID, apex.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeUPI,
		UPIID:         "   ",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentDetails)

	// No record of any kind written, cart untouched.
	assert.Zero(t, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.Zero(t, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutUnknownMethodFails(t *testing.T) {
	db := newTestDB(t)
	_, _, checkout := newServices(db)

	user := seedUser(t, db, "alice")

	_, err := checkout.Checkout(context.Background(), user.ID, CheckoutInput{
		PaymentMethod: "paypal",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentDetails)
}

func TestCheckoutMissingUsernameFails(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "")
	game := seedGame(t, db, "Hades", 24.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	assert.Zero(t, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.Zero(t, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutMissingProfileFails(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := models.User{Email: "ghost@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	game := seedGame(t, db, "Hades", 24.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestCheckoutFailedChargeLeavesCartIntact(t *testing.T) {
	db := newTestDB(t)
	entitlements := NewEntitlementService(db)
	cart := NewCartService(db, entitlements)
	checkout := NewCheckoutService(db, cart, failingCharger{}, NewActivityService(db))
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	game := seedGame(t, db, "Hades", 24.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	require.Error(t, err)

	assert.Zero(t, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.Zero(t, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCheckoutStorageErrorMidGrantKeepsCart(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	hades := seedGame(t, db, "Hades", 24.99, false)
	celeste := seedGame(t, db, "Celeste", 19.99, false)

	_, err := cart.Add(ctx, user.ID, hades.ID)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = cart.Add(ctx, user.ID, celeste.ID)
	require.NoError(t, err)

	// Storage starts failing between the first and second line's grant.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("second_line_outage", func(tx *gorm.DB) {
		if p, ok := tx.Statement.Dest.(*models.Payment); ok && p.GameID == celeste.ID {
			tx.AddError(errors.New("storage offline"))
		}
	}))

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, gorm.ErrDuplicatedKey)

	// The first line's records stay committed (no rollback), the second
	// line wrote nothing, and the cart still holds both items.
	assert.EqualValues(t, 1, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.CreditCardPayment{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.Payment{}, "game_id = ?", hades.ID))

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestCheckoutAlreadyOwnedGameIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	portal := seedGame(t, db, "Portal 2", 9.99, false)

	entry := models.LibraryEntry{
		UserID:       user.ID,
		GameID:       portal.ID,
		PurchaseDate: time.Now(),
	}
	require.NoError(t, db.Create(&entry).Error)

	// Bypass CartService.Add, which refuses owned games; a stale tab or a
	// race can still leave an owned game sitting in the cart.
	line := models.CartItem{
		UserID:   user.ID,
		GameID:   portal.ID,
		AddedAt:  time.Now(),
		Quantity: 1,
	}
	require.NoError(t, db.Create(&line).Error)

	result, err := checkout.Checkout(ctx, user.ID, CheckoutInput{
		PaymentMethod: models.PaymentTypeCreditCard,
	})
	require.NoError(t, err)

	require.Len(t, result.Lines, 1)
	assert.True(t, result.Lines[0].AlreadyOwned)

	// A fresh payment exists for audit, but still exactly one entitlement.
	assert.EqualValues(t, 1, countRows(t, db, &models.Payment{}, "user_id = ? AND game_id = ?", user.ID, portal.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.LibraryEntry{}, "user_id = ? AND game_id = ?", user.ID, portal.ID))

	var existing models.LibraryEntry
	require.NoError(t, db.First(&existing, "user_id = ? AND game_id = ?", user.ID, portal.ID).Error)
	assert.Equal(t, entry.ID, existing.ID)

	count, err := cart.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCheckoutTwiceGrantsOneEntitlement(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	game := seedGame(t, db, "Hades", 24.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{PaymentMethod: models.PaymentTypeCreditCard})
	require.NoError(t, err)

	// A retried request re-populates the cart line directly and submits again.
	line := models.CartItem{UserID: user.ID, GameID: game.ID, AddedAt: time.Now(), Quantity: 1}
	require.NoError(t, db.Create(&line).Error)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{PaymentMethod: models.PaymentTypeCreditCard})
	require.NoError(t, err)

	assert.EqualValues(t, 2, countRows(t, db, &models.Payment{}, "user_id = ?", user.ID))
	assert.EqualValues(t, 1, countRows(t, db, &models.LibraryEntry{}, "user_id = ?", user.ID))
}

func TestCheckoutRecordsPurchaseActivity(t *testing.T) {
	db := newTestDB(t)
	cart, _, checkout := newServices(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice")
	game := seedGame(t, db, "Hades", 24.99, false)

	_, err := cart.Add(ctx, user.ID, game.ID)
	require.NoError(t, err)

	_, err = checkout.Checkout(ctx, user.ID, CheckoutInput{PaymentMethod: models.PaymentTypeCreditCard})
	require.NoError(t, err)

	assert.EqualValues(t, 1, countRows(t, db, &models.UserActivity{},
		"user_id = ? AND activity_type = ?", user.ID, models.ActivityPurchase))
}
