package dto

import "time"

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	ClientID      uint      `json:"client_id"`
	ClientName    string    `json:"client_name"`
	ClientPhone   string    `json:"client_phone"`
	ServiceID     uint      `json:"service_id"`
	ServiceName   string    `json:"service_name"`
	Notes         string    `json:"notes"`
}
