package daterange

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	dr, err := New(start, end)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", start, end, err)
	}
	return dr
}

func TestNewRejectsInvertedAndEqualDates(t *testing.T) {
	if _, err := New(day(2026, 3, 10), day(2026, 3, 10)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("equal dates: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(day(2026, 3, 10), day(2026, 3, 5)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("inverted dates: got %v, want ErrInvalidRange", err)
	}
	if _, err := New(time.Time{}, day(2026, 3, 5)); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("zero start: got %v, want ErrInvalidRange", err)
	}
}

func TestNewTruncatesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("plus3", 3*3600)
	start := time.Date(2026, 3, 10, 14, 30, 0, 0, loc)
	dr := mustRange(t, start, start.Add(72*time.Hour))
	if dr.Start.Hour() != 0 || dr.Start.Location() != time.UTC {
		t.Fatalf("start not truncated: %v", dr.Start)
	}
}

func TestOverlapsIsInclusiveOnBothEndpoints(t *testing.T) {
	existing := mustRange(t, day(2026, 6, 10), day(2026, 6, 15))

	cases := []struct {
		name    string
		other   DateRange
		overlap bool
	}{
		{"identical", mustRange(t, day(2026, 6, 10), day(2026, 6, 15)), true},
		{"contained", mustRange(t, day(2026, 6, 11), day(2026, 6, 14)), true},
		{"containing", mustRange(t, day(2026, 6, 1), day(2026, 6, 30)), true},
		{"starts on existing end", mustRange(t, day(2026, 6, 15), day(2026, 6, 20)), true},
		{"ends on existing start", mustRange(t, day(2026, 6, 5), day(2026, 6, 10)), true},
		{"day after existing end", mustRange(t, day(2026, 6, 16), day(2026, 6, 20)), false},
		{"day before existing start", mustRange(t, day(2026, 6, 1), day(2026, 6, 9)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := existing.Overlaps(tc.other); got != tc.overlap {
				t.Fatalf("Overlaps(%s) = %v, want %v", tc.other, got, tc.overlap)
			}
			if got := tc.other.Overlaps(existing); got != tc.overlap {
				t.Fatalf("symmetric Overlaps(%s) = %v, want %v", tc.other, got, tc.overlap)
			}
		})
	}
}

func TestNights(t *testing.T) {
	dr := mustRange(t, day(2026, 6, 10), day(2026, 6, 15))
	if n := dr.Nights(); n != 5 {
		t.Fatalf("Nights() = %d, want 5", n)
	}
}

func TestContainsDate(t *testing.T) {
	dr := mustRange(t, day(2026, 6, 10), day(2026, 6, 15))
	if !dr.ContainsDate(day(2026, 6, 10)) || !dr.ContainsDate(day(2026, 6, 15)) {
		t.Fatal("endpoints must be contained")
	}
	if dr.ContainsDate(day(2026, 6, 16)) {
		t.Fatal("day after end must not be contained")
	}
}

func TestStringFormat(t *testing.T) {
	dr := mustRange(t, day(2026, 6, 10), day(2026, 6, 15))
	if got := dr.String(); got != "2026-06-10 to 2026-06-15" {
		t.Fatalf("String() = %q", got)
	}
}
