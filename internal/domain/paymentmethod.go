package domain

// PaymentMethod Model
type PaymentMethod struct {
	ID   uint   `gorm:"primaryKey" json:"id"` // Primary key
	Name string `gorm:"not null" json:"name"` // Display name (e.g. Visa)
	Type string `json:"type"`                 // Method type: balance, card, bank
}
