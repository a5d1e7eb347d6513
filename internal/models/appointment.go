package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index:idx_appointment_business_start" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index:idx_appointment_business_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status        string `gorm:"size:20;default:'scheduled'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	PaidAt      *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
