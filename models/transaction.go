package models

import (
	"time"
)

const (
	TransactionCredit = "credit"
	TransactionDebit  = "debit"
)

// Transaction is a wallet ledger entry. Refunds credit the customer's wallet
// through one of these rather than mutating the balance silently.
type Transaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Type        string    `json:"type" gorm:"not null"` // credit, debit
	Description string    `json:"description"`
	ReferenceID string    `json:"reference_id"`
	Status      string    `json:"status" gorm:"default:completed"`
	CreatedAt   time.Time `json:"created_at"`
}
