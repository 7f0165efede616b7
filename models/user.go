package models

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" validate:"required"`
	Email         string    `json:"email" gorm:"unique" validate:"required,email"`
	Password      string    `json:"password,omitempty" validate:"required,min=6"`
	Phone         string    `json:"phone"`
	Role          Role      `json:"role" gorm:"default:customer"`
	WalletBalance float64   `json:"wallet_balance" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	ProviderProfile *Provider `json:"provider_profile,omitempty" gorm:"foreignKey:UserID"`
	Bookings        []Booking `json:"bookings,omitempty" gorm:"foreignKey:CustomerID"`
}
