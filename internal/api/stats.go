package api

import (
	"paydash/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"gorm.io/gorm"                  // GORM ORM library
)

// BusinessStats aggregates a user's stored business figures. It feeds both
// the analytics summary endpoint and the chat assistant's context prompt.
type BusinessStats struct {
	TotalSales       decimal.Decimal  `json:"total_sales"`       // Sum of completed transaction totals
	TotalFees        decimal.Decimal  `json:"total_fees"`        // Sum of completed transaction fees
	TransactionCount int64            `json:"transaction_count"` // All transactions regardless of status
	StatusCounts     map[string]int64 `json:"status_counts"`     // Transactions per status
	CustomerCount    int64            `json:"customer_count"`    // Customers on record
	ProductCount     int64            `json:"product_count"`     // Products owned by the user
}

// loadBusinessStats computes the aggregates for one user from the local store.
func loadBusinessStats(db *gorm.DB, username string) (BusinessStats, error) {
	stats := BusinessStats{StatusCounts: make(map[string]int64)}
	var txs []domain.Transaction // All of the user's transactions
	if err := db.Where("username = ?", username).Find(&txs).Error; err != nil {
		return stats, err // Query failed
	}
	// Decimal sums keep the money figures exact
	for _, t := range txs {
		stats.TransactionCount++
		stats.StatusCounts[t.Status]++
		if t.Status == domain.StatusCompleted {
			stats.TotalSales = stats.TotalSales.Add(t.Total) // Only settled sales count as revenue
			stats.TotalFees = stats.TotalFees.Add(t.Fees)
		}
	}
	// Customer and product counts round out the dashboard summary
	if err := db.Model(&domain.Customer{}).Count(&stats.CustomerCount).Error; err != nil {
		return stats, err // Counting customers failed
	}
	if err := db.Model(&domain.Product{}).Where("username = ?", username).Count(&stats.ProductCount).Error; err != nil {
		return stats, err // Counting products failed
	}
	return stats, nil
}
