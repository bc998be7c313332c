package domain

import (
	"time" // Transaction timestamps

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
)

// Transaction statuses
const (
	StatusCompleted = "completed" // Settled successfully
	StatusPending   = "pending"   // Awaiting settlement
	StatusFailed    = "failed"    // Settlement failed
	StatusCancelled = "cancelled" // Cancelled before settlement
)

// Statuses lists every valid transaction status, in display order.
var Statuses = []string{StatusCompleted, StatusPending, StatusFailed, StatusCancelled}

// ValidStatus reports whether s is one of the known transaction statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true // Found a match
		}
	}
	return false // Unknown status
}

// Transaction Model
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`                // Primary key
	Username        string          `gorm:"index;not null" json:"username"`      // Owning user
	CustomerID      uint            `gorm:"index" json:"customer_id"`            // Foreign key to Customer
	ProductID       uint            `gorm:"index" json:"product_id"`             // Foreign key to Product
	PaymentMethodID uint            `json:"payment_method_id"`                   // Foreign key to PaymentMethod
	Amount          decimal.Decimal `gorm:"type:numeric;not null" json:"amount"` // Gross amount
	Fees            decimal.Decimal `gorm:"type:numeric;not null" json:"fees"`   // Processing fees
	Total           decimal.Decimal `gorm:"type:numeric;not null" json:"total"`  // Net total (amount - fees)
	TransactionDate time.Time       `gorm:"index" json:"transaction_date"`       // When the transaction happened
	Status          string          `gorm:"index;not null" json:"status"`        // One of the Status* constants
}
