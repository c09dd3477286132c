package services

import (
	"github.com/shopspring/decimal"

	"github.com/example/gamevault/internal/models"
)

// Flat promotional discount applied to every order.
var discountRate = decimal.NewFromFloat(0.10)

// Totals is the priced summary of a cart. Values are rounded to cents.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// ComputeTotals prices a set of cart lines. Free games and games without a
// price contribute zero. Pure and deterministic; an empty cart prices to
// all zeros.
func ComputeTotals(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Game == nil || item.Game.IsFree || item.Game.Price == nil {
			continue
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(*item.Game.Price))
	}

	subtotal = subtotal.Round(2)
	discount := subtotal.Mul(discountRate).Round(2)
	total := subtotal.Sub(discount)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Discount: discount.InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
