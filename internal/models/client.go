package models

import "time"

// Client has no login; it belongs to one business and is matched by phone.
type Client struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index:idx_client_business_phone" json:"business_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;index:idx_client_business_phone" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
