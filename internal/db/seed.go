package db

import (
	"time" // Transaction dates relative to now

	"paydash/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library
)

// dec builds a decimal from a two-digit string literal.
func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s) // Literals below are always valid
	return d
}

// seedUsers are the hard-coded demo accounts.
var seedUsers = []domain.User{
	{Username: "pypl", Password: "pypl", Balance: dec("8250.50"), FullName: "Alex Morgan", Email: "alex@pypl.demo", BusinessName: "PYPL Demo Store", Role: "admin"},
	{Username: "merchant", Password: "merchant", Balance: dec("1930.25"), FullName: "Jamie Rivera", Email: "jamie@pypl.demo", BusinessName: "Rivera Imports", Role: "user"},
}

// seedCustomers are the demo customers shown in the transaction editor.
var seedCustomers = []domain.Customer{
	{ID: 1, Name: "Olivia Bennett", Email: "olivia@example.com"},
	{ID: 2, Name: "Noah Castillo", Email: "noah@example.com"},
	{ID: 3, Name: "Emma Fischer", Email: "emma@example.com"},
	{ID: 4, Name: "Liam Okafor", Email: "liam@example.com"},
	{ID: 5, Name: "Sophia Nakamura", Email: "sophia@example.com"},
	{ID: 6, Name: "Mason Laurent", Email: "mason@example.com"},
}

// seedProducts are the demo products, all owned by the pypl account.
var seedProducts = []domain.Product{
	{ID: 1, Name: "Starter Plan", Price: dec("9.99"), Username: "pypl"},
	{ID: 2, Name: "Business Plan", Price: dec("29.99"), Username: "pypl"},
	{ID: 3, Name: "Enterprise Plan", Price: dec("99.99"), Username: "pypl"},
	{ID: 4, Name: "Gift Card", Price: dec("50.00"), Username: "pypl"},
	{ID: 5, Name: "Consulting Hour", Price: dec("120.00"), Username: "pypl"},
}

// seedPaymentMethods are the demo payment instruments.
var seedPaymentMethods = []domain.PaymentMethod{
	{ID: 1, Name: "PayPal Balance", Type: "balance"},
	{ID: 2, Name: "Visa", Type: "card"},
	{ID: 3, Name: "Mastercard", Type: "card"},
	{ID: 4, Name: "Bank Transfer", Type: "bank"},
}

// seedTransaction describes one demo transaction row with a relative date.
type seedTransaction struct {
	id         uint   // Fixed primary key so re-seeding is a no-op
	customer   uint   // Customer foreign key
	product    uint   // Product foreign key
	method     uint   // Payment method foreign key
	amount     string // Gross amount
	fees       string // Processing fees
	monthsAgo  int    // Months before now
	daysOffset int    // Day-of-month offset within that month
	status     string // Transaction status
}

// seedTransactions spreads demo transactions across the last six months so
// the monthly analytics chart has data in every bucket.
var seedTransactions = []seedTransaction{
	{1, 1, 2, 2, "29.99", "1.17", 0, 2, domain.StatusCompleted},
	{2, 2, 1, 1, "9.99", "0.59", 0, 4, domain.StatusCompleted},
	{3, 3, 3, 4, "99.99", "3.20", 0, 6, domain.StatusPending},
	{4, 4, 4, 3, "50.00", "1.75", 0, 8, domain.StatusFailed},
	{5, 5, 5, 2, "120.00", "3.78", 1, 3, domain.StatusCompleted},
	{6, 6, 2, 1, "29.99", "1.17", 1, 7, domain.StatusCompleted},
	{7, 1, 1, 2, "9.99", "0.59", 1, 12, domain.StatusCancelled},
	{8, 2, 3, 4, "99.99", "3.20", 2, 5, domain.StatusCompleted},
	{9, 3, 4, 3, "50.00", "1.75", 2, 9, domain.StatusCompleted},
	{10, 4, 5, 2, "120.00", "3.78", 2, 14, domain.StatusPending},
	{11, 5, 2, 1, "29.99", "1.17", 3, 4, domain.StatusCompleted},
	{12, 6, 1, 2, "9.99", "0.59", 3, 11, domain.StatusFailed},
	{13, 1, 3, 4, "99.99", "3.20", 4, 6, domain.StatusCompleted},
	{14, 2, 5, 3, "120.00", "3.78", 4, 13, domain.StatusCompleted},
	{15, 3, 2, 2, "29.99", "1.17", 5, 8, domain.StatusCompleted},
	{16, 4, 4, 1, "50.00", "1.75", 5, 15, domain.StatusCancelled},
}

// Seed populates the database with the demo dataset. Every row is written
// with FirstOrCreate keyed on its primary key, so running Seed repeatedly
// leaves existing rows untouched.
func Seed(db *gorm.DB) error {
	for _, u := range seedUsers {
		if err := db.Where(domain.User{Username: u.Username}).FirstOrCreate(&u).Error; err != nil {
			return err // Seeding a user failed
		}
	}
	for _, c := range seedCustomers {
		if err := db.Where(domain.Customer{ID: c.ID}).FirstOrCreate(&c).Error; err != nil {
			return err // Seeding a customer failed
		}
	}
	for _, p := range seedProducts {
		if err := db.Where(domain.Product{ID: p.ID}).FirstOrCreate(&p).Error; err != nil {
			return err // Seeding a product failed
		}
	}
	for _, m := range seedPaymentMethods {
		if err := db.Where(domain.PaymentMethod{ID: m.ID}).FirstOrCreate(&m).Error; err != nil {
			return err // Seeding a payment method failed
		}
	}
	now := time.Now()
	for _, s := range seedTransactions {
		amount := dec(s.amount)
		fees := dec(s.fees)
		t := domain.Transaction{
			ID:              s.id,
			Username:        "pypl", // All demo transactions belong to the demo account
			CustomerID:      s.customer,
			ProductID:       s.product,
			PaymentMethodID: s.method,
			Amount:          amount,
			Fees:            fees,
			Total:           amount.Sub(fees),
			TransactionDate: now.AddDate(0, -s.monthsAgo, 0).AddDate(0, 0, -s.daysOffset),
			Status:          s.status,
		}
		if err := db.Where(domain.Transaction{ID: t.ID}).FirstOrCreate(&t).Error; err != nil {
			return err // Seeding a transaction failed
		}
	}
	logrus.Info("Seed completed.") // Log successful seeding
	return nil
}
