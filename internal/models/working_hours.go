package models

import (
	"time"

	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
)

// WorkingHours is one weekday row of a business. Weekday follows
// time.Weekday, so Sunday is 0.
type WorkingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"uniqueIndex:idx_working_hours_business_weekday" json:"business_id"`

	Weekday int `gorm:"uniqueIndex:idx_working_hours_business_weekday" json:"weekday"`

	IsOpen   bool   `json:"is_open"`
	OpenFrom string `gorm:"size:5" json:"open_from"`
	OpenTo   string `gorm:"size:5" json:"open_to"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToAvailability folds weekday rows into the map keyed by weekday name.
// Rows with an out of range weekday are skipped.
func ToAvailability(rows []WorkingHours) availability.WorkingHours {
	out := make(availability.WorkingHours, len(rows))
	for _, r := range rows {
		name := availability.WeekdayName(time.Weekday(r.Weekday))
		if name == "" {
			continue
		}
		out[name] = availability.DayHours{
			IsOpen: r.IsOpen,
			From:   r.OpenFrom,
			To:     r.OpenTo,
		}
	}
	return out
}

// FromAvailability expands hours into seven rows for businessID.
func FromAvailability(businessID uint, hours availability.WorkingHours) []WorkingHours {
	normalized := hours.Normalize()

	rows := make([]WorkingHours, 0, len(normalized))
	for d := time.Sunday; d <= time.Saturday; d++ {
		day := normalized[availability.WeekdayName(d)]
		rows = append(rows, WorkingHours{
			BusinessID: businessID,
			Weekday:    int(d),
			IsOpen:     day.IsOpen,
			OpenFrom:   day.From,
			OpenTo:     day.To,
		})
	}
	return rows
}
