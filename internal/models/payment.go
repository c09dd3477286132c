package models

import (
	"github.com/google/uuid"
)

// Payment types accepted at checkout. The type selects which method
// sub-table receives the companion audit row.
const (
	PaymentTypeCreditCard = "creditcard"
	PaymentTypeDebitCard  = "debitcard"
	PaymentTypeUPI        = "upi"
)

// Payment statuses. The pipeline writes a terminal status at creation
// time and never updates the row afterwards.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment is the immutable audit record for one checkout line.
type Payment struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Username    string    `json:"username"`
	GameID      uuid.UUID `gorm:"type:uuid;index" json:"game_id"`
	Game        *Game     `json:"game,omitempty"`
	PaymentType string    `json:"payment_type"`
	Status      string    `json:"status"`
}

// CreditCardPayment links a payment to the creditcard method table.
type CreditCardPayment struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"type:uuid;index" json:"payment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Username  string    `json:"username"`
}

// DebitCardPayment links a payment to the debitcard method table.
type DebitCardPayment struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"type:uuid;index" json:"payment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Username  string    `json:"username"`
}

// UPIPayment links a payment to the upi method table and keeps the
// payer-supplied UPI identifier.
type UPIPayment struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"type:uuid;index" json:"payment_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Username  string    `json:"username"`
	UPIID     string    `gorm:"column:upi_id" json:"upi_id"`
}

func (CreditCardPayment) TableName() string { return "creditcard_payments" }
func (DebitCardPayment) TableName() string  { return "debitcard_payments" }
func (UPIPayment) TableName() string        { return "upi_payments" }

// ValidPaymentType reports whether t names a supported payment method.
func ValidPaymentType(t string) bool {
	switch t {
	case PaymentTypeCreditCard, PaymentTypeDebitCard, PaymentTypeUPI:
		return true
	}
	return false
}
