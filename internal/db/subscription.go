package db

import (
	"time"

	"gorm.io/gorm"
)

// Subscription mirrors the Stripe subscription state for one user. Rows are
// only written by the Stripe webhook handler.
type Subscription struct {
	gorm.Model
	UserID           uint   `gorm:"index"`
	CustomerID       string `gorm:"index"`
	SubscriptionID   string `gorm:"uniqueIndex"`
	Status           string
	Plan             string
	CurrentPeriodEnd time.Time
}
