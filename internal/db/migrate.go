package db

import (
	"paydash/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(
		&domain.User{},          // Dashboard accounts
		&domain.Customer{},      // Paying customers
		&domain.Product{},       // Products sold
		&domain.PaymentMethod{}, // Payment instruments
		&domain.Transaction{},   // Payment records
	)
	if err != nil {
		return err // Migration failed
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
