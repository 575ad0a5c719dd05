package models

import "time"

type Subscription struct {
	SubscriptionID uint      `gorm:"primaryKey"`
	UserID         int       `gorm:"not null"`
	Plan           string    `gorm:"not null"` // basic or premium
	Amount         float64   `gorm:"not null"`
	PaymentStatus  string    `gorm:"not null"`
	StartsAt       time.Time `json:"starts_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

type RazorPay struct {
	RazorPaymentID  string  `json:"razorpaymentID" gorm:"primaryKey"`
	RazorPayorderID string  `json:"razorpayorderID"`
	SubscriptionID  uint    `json:"subscription_id"`
	AmountPaid      float64 `json:"amount_paid"`
}
