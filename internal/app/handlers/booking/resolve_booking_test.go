package booking

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	"staybook/internal/infra/storage/memory"
)

func newResolveFixture(t *testing.T) (*ResolveBookingHandler, *memory.Factory, *notifierStub, *memory.Outbox) {
	t.Helper()
	factory := memory.NewFactory()
	notifier := &notifierStub{}
	box := memory.NewOutbox()
	handler := &ResolveBookingHandler{
		Notifier: notifier,
		Outbox:   box,
		Logger:   discardLogger(),
	}
	return handler, factory, notifier, box
}

func unitContext(t *testing.T, factory *memory.Factory) context.Context {
	t.Helper()
	unit, err := factory.Begin(context.Background(), uow.TxOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return uow.ContextWithUnitOfWork(context.Background(), unit)
}

func TestResolveBookingRequiresUnitOfWork(t *testing.T) {
	handler, _, _, _ := newResolveFixture(t)
	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-1", Target: domainbooking.StatusAccepted}
	if _, err := handler.Handle(context.Background(), cmd); !errors.Is(err, uow.ErrUnitOfWorkMissing) {
		t.Fatalf("got %v, want ErrUnitOfWorkMissing", err)
	}
}

func TestResolveBookingRejectsInvalidTarget(t *testing.T) {
	handler, factory, _, _ := newResolveFixture(t)
	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-1", Target: domainbooking.StatusPending}
	if _, err := handler.Handle(unitContext(t, factory), cmd); !errors.Is(err, ErrInvalidTargetStatus) {
		t.Fatalf("got %v, want ErrInvalidTargetStatus", err)
	}
}

func TestResolveBookingUnknownBooking(t *testing.T) {
	handler, factory, _, _ := newResolveFixture(t)
	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "missing", Target: domainbooking.StatusAccepted}
	if _, err := handler.Handle(unitContext(t, factory), cmd); !errors.Is(err, domainbooking.ErrNotFound) {
		t.Fatalf("got %v, want booking ErrNotFound", err)
	}
}

func TestResolveBookingRejectsForeignHost(t *testing.T) {
	handler, factory, notifier, _ := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-1", "prop-1", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "intruder", BookingID: "bk-1", Target: domainbooking.StatusAccepted}
	if _, err := handler.Handle(unitContext(t, factory), cmd); !errors.Is(err, ErrNotPropertyOwner) {
		t.Fatalf("got %v, want ErrNotPropertyOwner", err)
	}

	stored, err := factory.BookingRepo.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domainbooking.StatusPending {
		t.Fatalf("booking touched by foreign host: %s", stored.Status)
	}
	if len(notifier.sent) != 0 {
		t.Fatal("no notification expected")
	}
}

func TestResolveBookingAcceptNotifiesClient(t *testing.T) {
	handler, factory, notifier, box := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-1", "prop-1", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-1", Target: domainbooking.StatusAccepted}
	result, err := handler.Handle(unitContext(t, factory), cmd)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != string(domainbooking.StatusAccepted) {
		t.Fatalf("status = %s", result.Status)
	}

	stored, err := factory.BookingRepo.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domainbooking.StatusAccepted {
		t.Fatalf("stored status = %s", stored.Status)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].UserID != "client-1" || notifier.sent[0].Message != clientAcceptedMessage {
		t.Fatalf("client notification = %+v", notifier.sent)
	}
	records := box.Records()
	if len(records) != 1 || records[0].Name != "booking.accepted" {
		t.Fatalf("outbox records = %+v", records)
	}
}

func TestResolveBookingRejectNotifiesClient(t *testing.T) {
	handler, factory, notifier, box := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-1", "prop-1", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-1", Target: domainbooking.StatusRejected}
	result, err := handler.Handle(unitContext(t, factory), cmd)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != string(domainbooking.StatusRejected) {
		t.Fatalf("status = %s", result.Status)
	}
	if len(notifier.sent) != 1 || notifier.sent[0].Message != clientRejectedMessage {
		t.Fatalf("client notification = %+v", notifier.sent)
	}
	if records := box.Records(); len(records) != 1 || records[0].Name != "booking.rejected" {
		t.Fatalf("outbox records = %+v", records)
	}
}

func TestResolveBookingAcceptBlockedByAcceptedOverlap(t *testing.T) {
	handler, factory, _, _ := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-accepted", "prop-1", "client-a", mustRange(t, 12, 18), domainbooking.StatusAccepted)
	seedBooking(t, factory, "bk-pending", "prop-1", "client-b", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-pending", Target: domainbooking.StatusAccepted}
	_, err := handler.Handle(unitContext(t, factory), cmd)
	if !errors.Is(err, ErrDateConflict) {
		t.Fatalf("got %v, want ErrDateConflict", err)
	}

	stored, err := factory.BookingRepo.ByID(context.Background(), "bk-pending")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domainbooking.StatusPending {
		t.Fatalf("blocked booking flipped anyway: %s", stored.Status)
	}
}

func TestResolveBookingRejectionIgnoresOverlap(t *testing.T) {
	handler, factory, _, _ := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-accepted", "prop-1", "client-a", mustRange(t, 12, 18), domainbooking.StatusAccepted)
	seedBooking(t, factory, "bk-pending", "prop-1", "client-b", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-pending", Target: domainbooking.StatusRejected}
	if _, err := handler.Handle(unitContext(t, factory), cmd); err != nil {
		t.Fatalf("rejection must not run the overlap check: %v", err)
	}
}

func TestResolveBookingTwiceFails(t *testing.T) {
	handler, factory, _, _ := newResolveFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-1", "prop-1", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)

	cmd := ResolveBookingCommand{HostID: "host-1", BookingID: "bk-1", Target: domainbooking.StatusRejected}
	if _, err := handler.Handle(unitContext(t, factory), cmd); err != nil {
		t.Fatal(err)
	}
	cmd.Target = domainbooking.StatusAccepted
	if _, err := handler.Handle(unitContext(t, factory), cmd); !errors.Is(err, domainbooking.ErrAlreadyResolved) {
		t.Fatalf("got %v, want ErrAlreadyResolved", err)
	}
}
