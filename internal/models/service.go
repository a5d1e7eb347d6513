package models

import "time"

// Service is something a business sells by the slot. DurationMin sets the
// length of the appointment and of every slot offered for it.
type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
