package booking

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/domain/shared/events"
)

var (
	ErrNotFound        = errors.New("booking: not found")
	ErrClientRequired  = errors.New("booking: client id is required")
	ErrInvalidTotal    = errors.New("booking: total price must be positive")
	ErrAlreadyResolved = errors.New("booking: already resolved")
)

type BookingID string

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Booking is created pending by a client and resolved exactly once by the
// owning host. Only accepted bookings occupy their date range.
type Booking struct {
	ID              BookingID
	PropertyID      property.PropertyID
	ClientID        string
	Range           daterange.DateRange
	TotalPriceCents int64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByClient(ctx context.Context, clientID string) ([]*Booking, error)
	ListByProperty(ctx context.Context, propertyID property.PropertyID) ([]*Booking, error)
	// AcceptedOverlapping returns accepted bookings on the property whose
	// closed date range overlaps dr (both endpoints inclusive).
	AcceptedOverlapping(ctx context.Context, propertyID property.PropertyID, dr daterange.DateRange) ([]*Booking, error)
}

type CreateParams struct {
	ID              BookingID
	PropertyID      property.PropertyID
	ClientID        string
	Range           daterange.DateRange
	TotalPriceCents int64
	CreatedAt       time.Time
}

// NewBooking builds a pending booking. There is no way to create a booking
// in any other status: acceptance is the host's move, never the caller's.
func NewBooking(params CreateParams) (*Booking, error) {
	if params.ClientID == "" {
		return nil, ErrClientRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.TotalPriceCents <= 0 {
		return nil, ErrInvalidTotal
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		PropertyID:      params.PropertyID,
		ClientID:        params.ClientID,
		Range:           params.Range,
		TotalPriceCents: params.TotalPriceCents,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.Record(BookingRequested{BookingID: b.ID, PropertyID: b.PropertyID, ClientID: b.ClientID, Range: b.Range, TotalPriceCents: b.TotalPriceCents, At: now})
	return b, nil
}

func (b *Booking) Accept(now time.Time) error {
	if b.Status != StatusPending {
		return ErrAlreadyResolved
	}
	b.Status = StatusAccepted
	b.UpdatedAt = now.UTC()
	b.Record(BookingAccepted{BookingID: b.ID, PropertyID: b.PropertyID, ClientID: b.ClientID, Range: b.Range, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Reject(now time.Time) error {
	if b.Status != StatusPending {
		return ErrAlreadyResolved
	}
	b.Status = StatusRejected
	b.UpdatedAt = now.UTC()
	b.Record(BookingRejected{BookingID: b.ID, PropertyID: b.PropertyID, ClientID: b.ClientID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Resolved() bool {
	return b.Status != StatusPending
}
