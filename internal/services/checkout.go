package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/models"
)

// Checkout pipeline states. An attempt moves strictly forward through
// these; any failure lands in StateFailed with the cart left intact.
const (
	StateValidating = "validating"
	StateCharging   = "charging"
	StateGranting   = "granting"
	StateClearing   = "clearing"
	StateComplete   = "complete"
	StateFailed     = "failed"
)

// CheckoutInput is the user's checkout submission.
type CheckoutInput struct {
	PaymentMethod string `json:"payment_method"`
	UPIID         string `json:"upi_id"`
}

// LineResult reports the outcome of one cart line's grant.
type LineResult struct {
	GameID       uuid.UUID `json:"game_id"`
	Title        string    `json:"title"`
	PaymentID    uuid.UUID `json:"payment_id"`
	AlreadyOwned bool      `json:"already_owned"`
}

// CheckoutResult is the terminal summary of a successful attempt.
type CheckoutResult struct {
	State  string       `json:"state"`
	Totals Totals       `json:"totals"`
	Lines  []LineResult `json:"lines"`
}

// CheckoutService converts a populated cart, a payment method, and (for
// UPI) a payment identifier into library entitlements with an auditable
// payment trail, then clears the cart.
type CheckoutService struct {
	db       *gorm.DB
	cart     *CartService
	charger  Charger
	activity *ActivityService
}

// NewCheckoutService constructs CheckoutService.
func NewCheckoutService(db *gorm.DB, cart *CartService, charger Charger, activity *ActivityService) *CheckoutService {
	return &CheckoutService{db: db, cart: cart, charger: charger, activity: activity}
}

// Checkout runs a single attempt for the user. Validation failures return
// before any record is written. A storage failure mid-loop aborts without
// rolling back records already written for earlier lines; the cart is only
// cleared once every line has been processed.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*CheckoutResult, error) {
	log.Printf("[Checkout] %s attempt started for user %s", StateValidating, userID)

	if !models.ValidPaymentType(input.PaymentMethod) {
		return nil, ErrInvalidPaymentDetails
	}

	items, err := s.cart.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if input.PaymentMethod == models.PaymentTypeUPI && strings.TrimSpace(input.UPIID) == "" {
		return nil, ErrInvalidPaymentDetails
	}

	username, err := s.resolveUsername(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := ComputeTotals(items)

	log.Printf("[Checkout] %s %d items, total %.2f via %s", StateCharging, len(items), totals.Total, input.PaymentMethod)
	if err := s.charger.Authorize(ctx, input.PaymentMethod, totals.Total); err != nil {
		return nil, err
	}

	log.Printf("[Checkout] %s entitlements for %d items", StateGranting, len(items))
	lines := make([]LineResult, 0, len(items))
	for _, item := range items {
		line, err := s.grantItem(ctx, userID, username, item, input)
		if err != nil {
			log.Printf("[Checkout] %s grant failed for game %s: %v", StateFailed, item.GameID, err)
			return nil, err
		}
		lines = append(lines, *line)
	}

	log.Printf("[Checkout] %s cart for user %s", StateClearing, userID)
	if err := s.cart.Clear(ctx, userID); err != nil {
		return nil, err
	}

	log.Printf("[Checkout] %s %d games granted to user %s", StateComplete, len(lines), userID)
	return &CheckoutResult{
		State:  StateComplete,
		Totals: totals,
		Lines:  lines,
	}, nil
}

// grantItem writes the payment record, the method-specific audit row, and
// the library entitlement for one cart line. A duplicate library entry is
// benign: the user already owns the game, the payment rows stay for audit,
// and no second entitlement is created.
func (s *CheckoutService) grantItem(ctx context.Context, userID uuid.UUID, username string, item models.CartItem, input CheckoutInput) (*LineResult, error) {
	payment := models.Payment{
		UserID:      userID,
		Username:    username,
		GameID:      item.GameID,
		PaymentType: input.PaymentMethod,
		Status:      models.PaymentStatusCompleted,
	}

	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, err
	}

	if err := s.createMethodRecord(ctx, payment, input); err != nil {
		return nil, err
	}

	entry := models.LibraryEntry{
		UserID:       userID,
		GameID:       item.GameID,
		PaymentID:    &payment.ID,
		PurchaseDate: time.Now(),
	}

	line := LineResult{GameID: item.GameID, PaymentID: payment.ID}
	if item.Game != nil {
		line.Title = item.Game.Title
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		log.Printf("[Checkout] user %s already owns game %s, keeping existing entry", userID, item.GameID)
		line.AlreadyOwned = true
		return &line, nil
	}

	// Best effort; a failed feed entry never fails the purchase.
	if err := s.activity.Record(ctx, userID, item.GameID, &entry.ID, models.ActivityPurchase, map[string]any{
		"payment_id":   payment.ID,
		"payment_type": input.PaymentMethod,
	}); err != nil {
		log.Printf("[Checkout] failed to record purchase activity: %v", err)
	}

	return &line, nil
}

func (s *CheckoutService) createMethodRecord(ctx context.Context, payment models.Payment, input CheckoutInput) error {
	switch payment.PaymentType {
	case models.PaymentTypeCreditCard:
		record := models.CreditCardPayment{
			PaymentID: payment.ID,
			UserID:    payment.UserID,
			Username:  payment.Username,
		}
		return s.db.WithContext(ctx).Create(&record).Error
	case models.PaymentTypeDebitCard:
		record := models.DebitCardPayment{
			PaymentID: payment.ID,
			UserID:    payment.UserID,
			Username:  payment.Username,
		}
		return s.db.WithContext(ctx).Create(&record).Error
	case models.PaymentTypeUPI:
		record := models.UPIPayment{
			PaymentID: payment.ID,
			UserID:    payment.UserID,
			Username:  payment.Username,
			UPIID:     strings.TrimSpace(input.UPIID),
		}
		return s.db.WithContext(ctx).Create(&record).Error
	}
	return ErrInvalidPaymentDetails
}

func (s *CheckoutService) resolveUsername(ctx context.Context, userID uuid.UUID) (string, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileIncomplete
		}
		return "", err
	}

	if strings.TrimSpace(profile.Username) == "" {
		return "", ErrProfileIncomplete
	}

	return profile.Username, nil
}
