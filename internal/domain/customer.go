package domain

// Customer Model
type Customer struct {
	ID    uint   `gorm:"primaryKey" json:"id"` // Primary key
	Name  string `gorm:"not null" json:"name"` // Customer name
	Email string `json:"email"`                // Customer email
}
