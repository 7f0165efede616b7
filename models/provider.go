package models

import (
	"time"
)

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityBusy      AvailabilityStatus = "busy"
	AvailabilityOffline   AvailabilityStatus = "offline"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

type Provider struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	UserID          uint   `json:"user_id" gorm:"unique;not null"`
	User            User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ServiceType     string `json:"service_type" gorm:"not null"`
	ExperienceYears int    `json:"experience_years" gorm:"default:0"`
	HourlyRate      float64 `json:"hourly_rate" gorm:"not null"`
	Location        string `json:"location"`
	Address         string `json:"address"`
	Bio             string `json:"bio"`
	ProfilePicture  string `json:"profile_picture"`

	Rating             float64            `json:"rating" gorm:"default:0"`
	TotalBookings      int                `json:"total_bookings" gorm:"default:0"`
	Earnings           float64            `json:"earnings" gorm:"default:0"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status" gorm:"default:available"`
	BackgroundVerified VerificationStatus `json:"background_verified" gorm:"default:pending"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ProviderID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:ProviderID"`
}
