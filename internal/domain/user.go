package domain

import "github.com/shopspring/decimal" // Exact decimal arithmetic for money

// User Model
type User struct {
	Username     string          `gorm:"primaryKey" json:"username"`           // Unique username (primary key)
	Password     string          `gorm:"not null" json:"-"`                    // Plaintext password (demo-only)
	Balance      decimal.Decimal `gorm:"type:numeric;not null" json:"balance"` // Account balance
	FullName     string          `json:"full_name"`                            // Full display name
	Email        string          `json:"email"`                                // Contact email
	BusinessName string          `json:"business_name"`                        // Business name shown on the dashboard
	Role         string          `gorm:"default:user" json:"role"`             // Role: user or admin
	Products     []Product       `gorm:"foreignKey:Username" json:"-"`         // Products owned by this user
	Transactions []Transaction   `gorm:"foreignKey:Username" json:"-"`         // Transactions owned by this user
}
