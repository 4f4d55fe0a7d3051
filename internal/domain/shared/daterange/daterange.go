package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end date must be after start date")
)

// DateRange represents a closed interval [Start, End] of calendar days.
// Both endpoints participate in overlap checks, so a stay ending on day D
// conflicts with a stay starting on day D.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return int(dr.End.Sub(dr.Start).Hours() / 24)
}

// Overlaps reports whether both ranges claim at least one common day.
// The comparison is inclusive on both endpoints: ranges that merely touch,
// one ending the day the other starts, still conflict.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !other.Start.After(dr.End)
}

// ContainsDate reports whether t falls within [Start, End].
func (dr DateRange) ContainsDate(t time.Time) bool {
	t = truncateToDay(t)
	return !t.Before(dr.Start) && !t.After(dr.End)
}

// String renders the range for user-facing messages such as conflict errors.
func (dr DateRange) String() string {
	return dr.Start.Format("2006-01-02") + " to " + dr.End.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
