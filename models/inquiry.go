package models

import (
	"time"
)

type InquiryStatus string

const (
	InquiryNew     InquiryStatus = "new"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
)

// Inquiry is a standalone contact-form record, not tied to any user account.
type Inquiry struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null" validate:"required"`
	Email     string        `json:"email" gorm:"not null" validate:"required,email"`
	Phone     string        `json:"phone"`
	Subject   string        `json:"subject" gorm:"not null" validate:"required"`
	Message   string        `json:"message" gorm:"not null" validate:"required"`
	Status    InquiryStatus `json:"status" gorm:"default:new"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
