package services

import "errors"

// Failure taxonomy for the cart and checkout services. Handlers map these
// to HTTP statuses; anything not listed here is a storage failure and
// surfaces as a generic 500.
var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidPaymentDetails  = errors.New("invalid payment details")
	ErrProfileIncomplete      = errors.New("profile has no username")
	ErrAlreadyInCart          = errors.New("game already in cart")
	ErrAlreadyOwned           = errors.New("game already in library")
	ErrAlreadyWishlisted      = errors.New("game already in wishlist")
	ErrGameNotFound           = errors.New("game not found")
	ErrNotInLibrary           = errors.New("game not in library")
)
