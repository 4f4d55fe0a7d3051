package dto

import (
	"time"

	domainbooking "staybook/internal/domain/booking"
	domainproperty "staybook/internal/domain/property"
)

type BookingPropertySnapshot struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Location string `json:"location"`
	ImageURL string `json:"image_url,omitempty"`
}

type BookingSummary struct {
	ID              string                  `json:"id"`
	Property        BookingPropertySnapshot `json:"property"`
	ClientID        string                  `json:"client_id"`
	StartDate       time.Time               `json:"start_date"`
	EndDate         time.Time               `json:"end_date"`
	TotalPriceCents int64                   `json:"total_price_cents"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapBookingSummary(booking *domainbooking.Booking, property *domainproperty.Property) BookingSummary {
	snapshot := BookingPropertySnapshot{
		ID: string(booking.PropertyID),
	}
	if property != nil {
		snapshot.Title = property.Title
		snapshot.Location = property.Location
		snapshot.ImageURL = property.ImageURL
	}
	return BookingSummary{
		ID:              string(booking.ID),
		Property:        snapshot,
		ClientID:        booking.ClientID,
		StartDate:       booking.Range.Start,
		EndDate:         booking.Range.End,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}
}
