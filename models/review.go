package models

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BookingID  uint     `json:"booking_id" gorm:"unique;not null"`
	Booking    Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	ProviderID uint     `json:"provider_id" gorm:"not null"`
	Provider   Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	CustomerID uint     `json:"customer_id" gorm:"not null"`
	Customer   User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`

	Rating    float64   `json:"rating" gorm:"not null" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.Rating < 1.0 {
		r.Rating = 1.0
	} else if r.Rating > 5.0 {
		r.Rating = 5.0
	}
	return nil
}
