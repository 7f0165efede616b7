package models

import (
	"time"
)

type ComplaintStatus string

const (
	ComplaintPending       ComplaintStatus = "pending"
	ComplaintInvestigating ComplaintStatus = "investigating"
	ComplaintResolved      ComplaintStatus = "resolved"
	ComplaintRefunded      ComplaintStatus = "refunded"
	ComplaintWarned        ComplaintStatus = "warned"
)

type Complaint struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	BookingID  uint    `json:"booking_id" gorm:"not null"`
	Booking    Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	CustomerID uint    `json:"customer_id" gorm:"not null"`

	Subject     string          `json:"subject" gorm:"not null" validate:"required"`
	Description string          `json:"description" gorm:"not null" validate:"required"`
	Status      ComplaintStatus `json:"status" gorm:"default:pending"`
	Resolution  string          `json:"resolution"`
	AdminNotes  string          `json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
