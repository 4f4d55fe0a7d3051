package booking

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	domainbooking "staybook/internal/domain/booking"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra/storage/memory"
)

func memoryFixture(t *testing.T) *memory.Factory {
	t.Helper()
	return memory.NewFactory()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, startDay, endDay int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(day(startDay), day(endDay))
	if err != nil {
		t.Fatal(err)
	}
	return dr
}

func seedProfile(t *testing.T, f *memory.Factory, id string, role domainprofile.Role) {
	t.Helper()
	p, err := domainprofile.NewProfile(domainprofile.CreateParams{
		ID:        id,
		Email:     id + "@example.com",
		Name:      "User " + id,
		Role:      role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.ProfileRepo.Insert(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

func seedProperty(t *testing.T, f *memory.Factory, id, hostID string, available bool) {
	t.Helper()
	p, err := domainproperty.NewProperty(domainproperty.CreateParams{
		ID:                 domainproperty.PropertyID(id),
		HostID:             hostID,
		Title:              "Property " + id,
		PricePerNightCents: 10000,
		CreatedAt:          time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !available {
		p.SetAvailable(false, time.Now())
	}
	if err := f.PropertyRepo.Save(context.Background(), p); err != nil {
		t.Fatal(err)
	}
}

func seedBooking(t *testing.T, f *memory.Factory, id, propertyID, clientID string, dr daterange.DateRange, status domainbooking.Status) *domainbooking.Booking {
	t.Helper()
	b, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:              domainbooking.BookingID(id),
		PropertyID:      domainproperty.PropertyID(propertyID),
		ClientID:        clientID,
		Range:           dr,
		TotalPriceCents: 40000,
		CreatedAt:       time.Now(),
	})
	if err != nil {
		t.Fatal(err)
	}
	b.ClearEvents()
	switch status {
	case domainbooking.StatusAccepted:
		if err := b.Accept(time.Now()); err != nil {
			t.Fatal(err)
		}
		b.ClearEvents()
	case domainbooking.StatusRejected:
		if err := b.Reject(time.Now()); err != nil {
			t.Fatal(err)
		}
		b.ClearEvents()
	}
	if err := f.BookingRepo.Save(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	return b
}

type sentMessage struct {
	UserID  string
	Message string
}

type notifierStub struct {
	sent []sentMessage
	err  error
}

func (n *notifierStub) Send(_ context.Context, userID string, message string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{UserID: userID, Message: message})
	return nil
}
