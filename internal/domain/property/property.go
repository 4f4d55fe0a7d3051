package property

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("property: not found")
	ErrHostRequired  = errors.New("property: host id is required")
	ErrTitleRequired = errors.New("property: title is required")
	ErrInvalidPrice  = errors.New("property: nightly price must be positive")
)

type PropertyID string

// Property is a host-owned listing. Availability is a single flag the host
// toggles; it gates new booking submissions but never touches existing
// bookings.
type Property struct {
	ID                 PropertyID
	HostID             string
	Title              string
	Description        string
	PricePerNightCents int64
	Location           string
	ImageURL           string
	Available          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, property *Property) error
	ListAvailable(ctx context.Context) ([]*Property, error)
	ListByHost(ctx context.Context, hostID string) ([]*Property, error)
}

type CreateParams struct {
	ID                 PropertyID
	HostID             string
	Title              string
	Description        string
	PricePerNightCents int64
	Location           string
	ImageURL           string
	CreatedAt          time.Time
}

func NewProperty(params CreateParams) (*Property, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, errors.New("property: id is required")
	}
	if strings.TrimSpace(params.HostID) == "" {
		return nil, ErrHostRequired
	}
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if params.PricePerNightCents <= 0 {
		return nil, ErrInvalidPrice
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	return &Property{
		ID:                 params.ID,
		HostID:             params.HostID,
		Title:              title,
		Description:        strings.TrimSpace(params.Description),
		PricePerNightCents: params.PricePerNightCents,
		Location:           strings.TrimSpace(params.Location),
		ImageURL:           strings.TrimSpace(params.ImageURL),
		Available:          true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// SetAvailable overwrites the availability flag. A direct field mutation:
// the flag carries no lifecycle rules of its own.
func (p *Property) SetAvailable(available bool, now time.Time) {
	p.Available = available
	p.UpdatedAt = now.UTC()
}

func (p *Property) OwnedBy(hostID string) bool {
	return p.HostID == hostID
}
