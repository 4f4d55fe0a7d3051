package booking

import (
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

type BookingRequested struct {
	BookingID       BookingID
	PropertyID      property.PropertyID
	ClientID        string
	Range           daterange.DateRange
	TotalPriceCents int64
	At              time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingAccepted struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	ClientID   string
	Range      daterange.DateRange
	At         time.Time
}

func (e BookingAccepted) EventName() string     { return "booking.accepted" }
func (e BookingAccepted) AggregateID() string   { return string(e.BookingID) }
func (e BookingAccepted) OccurredAt() time.Time { return e.At }

type BookingRejected struct {
	BookingID  BookingID
	PropertyID property.PropertyID
	ClientID   string
	At         time.Time
}

func (e BookingRejected) EventName() string     { return "booking.rejected" }
func (e BookingRejected) AggregateID() string   { return string(e.BookingID) }
func (e BookingRejected) OccurredAt() time.Time { return e.At }
