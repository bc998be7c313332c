package domain

import "github.com/shopspring/decimal" // Exact decimal arithmetic for money

// Product Model
type Product struct {
	ID       uint            `gorm:"primaryKey" json:"id"`               // Primary key
	Name     string          `gorm:"not null" json:"name"`               // Product name
	Price    decimal.Decimal `gorm:"type:numeric;not null" json:"price"` // Unit price
	Username string          `gorm:"index" json:"username"`              // Owning user
}
