package models

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusRescheduleRequested BookingStatus = "reschedule_requested"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelled           BookingStatus = "cancelled"
)

// CommissionRate is the platform's cut of a completed booking.
const CommissionRate = 0.15

type Booking struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CustomerID uint     `json:"customer_id" gorm:"not null"`
	Customer   User     `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID uint     `json:"provider_id" gorm:"not null"`
	Provider   Provider `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`

	ServiceName   string  `json:"service_name" gorm:"not null" validate:"required"`
	BookingDate   string  `json:"booking_date" gorm:"not null" validate:"required"` // "YYYY-MM-DD"
	BookingTime   string  `json:"booking_time" gorm:"not null" validate:"required"` // "HH:MM" 24h
	DurationHours int     `json:"duration_hours" gorm:"default:1" validate:"required,min=1"`
	TotalAmount   float64 `json:"total_amount"`
	Address       string  `json:"address"`
	Notes         string  `json:"notes"`

	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"payment_status" gorm:"default:unpaid"`
	RefundStatus  string        `json:"refund_status"` // "", "processed", "rejected"

	SuggestedDate string `json:"suggested_date"`
	SuggestedTime string `json:"suggested_time"`

	CommissionAmount float64 `json:"commission_amount" gorm:"default:0"`
	ProviderAmount   float64 `json:"provider_amount" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// IsTerminal reports whether the booking can no longer change state.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// MarkCompleted settles the booking: it splits the total into commission and
// provider payout and accrues the payout onto the provider's earnings. The
// settlement is a conditional update keyed on the current status, so two
// racing completions working from stale copies settle at most once.
func (b *Booking) MarkCompleted(tx *gorm.DB) error {
	commission := round2(b.TotalAmount * CommissionRate)
	payout := round2(b.TotalAmount - commission)

	res := tx.Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":            StatusCompleted,
			"commission_amount": commission,
			"provider_amount":   payout,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Someone else settled this booking first, nothing to accrue
		return nil
	}

	b.Status = StatusCompleted
	b.CommissionAmount = commission
	b.ProviderAmount = payout

	return tx.Model(&Provider{}).
		Where("id = ?", b.ProviderID).
		Update("earnings", gorm.Expr("earnings + ?", payout)).Error
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
