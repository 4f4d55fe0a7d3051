package booking

import (
	"errors"
	"strings"

	"staybook/internal/domain/shared/daterange"
)

var (
	// ErrMissingFields is returned before any store round-trip when a
	// required submission field is absent.
	ErrMissingFields = errors.New("booking: required fields missing")
	// ErrClientNotAuthorized covers both an unknown client profile and a
	// profile whose role is not client.
	ErrClientNotAuthorized = errors.New("booking: client not found or not authorized")
	// ErrPropertyUnavailable covers a missing property and one whose
	// availability flag is off; callers cannot tell the two apart.
	ErrPropertyUnavailable = errors.New("booking: property not found or not available")
	// ErrSelfBooking rejects a host booking their own property.
	ErrSelfBooking = errors.New("booking: cannot book your own property")
	// ErrDateConflict is the sentinel behind ConflictError.
	ErrDateConflict = errors.New("booking: property already reserved for the requested period")
	// ErrNotPropertyOwner rejects status resolution by anyone but the
	// host owning the booking's property.
	ErrNotPropertyOwner = errors.New("booking: not owned by acting host")
	// ErrInvalidTargetStatus rejects resolution targets outside accepted/rejected.
	ErrInvalidTargetStatus = errors.New("booking: target status must be accepted or rejected")
)

// ConflictError carries the accepted ranges that block a request so the
// caller sees which dates collide.
type ConflictError struct {
	Ranges []daterange.DateRange
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Ranges))
	for _, r := range e.Ranges {
		parts = append(parts, r.String())
	}
	return ErrDateConflict.Error() + "; conflicts with: " + strings.Join(parts, ", ")
}

func (e *ConflictError) Unwrap() error {
	return ErrDateConflict
}
