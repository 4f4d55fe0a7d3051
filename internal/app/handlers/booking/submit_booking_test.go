package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	domainbooking "staybook/internal/domain/booking"
	domainprofile "staybook/internal/domain/profile"
	"staybook/internal/infra/security"
	"staybook/internal/infra/storage/memory"
)

func newSubmitFixture(t *testing.T) (*SubmitBookingHandler, *memory.Factory, *notifierStub, *memory.Outbox) {
	t.Helper()
	factory := memory.NewFactory()
	notifier := &notifierStub{}
	box := memory.NewOutbox()
	handler := &SubmitBookingHandler{
		UoWFactory: factory,
		Notifier:   notifier,
		Outbox:     box,
		Credential: "service-key",
		Logger:     discardLogger(),
	}
	return handler, factory, notifier, box
}

func submitCommand(id string) SubmitBookingCommand {
	return SubmitBookingCommand{
		CommandID:       id,
		PropertyID:      "prop-1",
		ClientID:        "client-1",
		StartDate:       day(10),
		EndDate:         day(15),
		TotalPriceCents: 50000,
	}
}

func TestSubmitBookingRequiresServiceCredential(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	handler.Credential = ""
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "host-1", true)

	_, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if !errors.Is(err, security.ErrServiceCredentialMissing) {
		t.Fatalf("got %v, want ErrServiceCredentialMissing", err)
	}
}

func TestSubmitBookingRejectsMissingFields(t *testing.T) {
	handler, _, _, _ := newSubmitFixture(t)
	cmd := submitCommand("bk-1")
	cmd.PropertyID = ""
	if _, err := handler.Handle(context.Background(), cmd); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing property: got %v", err)
	}
	cmd = submitCommand("bk-1")
	cmd.StartDate = time.Time{}
	if _, err := handler.Handle(context.Background(), cmd); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("missing start date: got %v", err)
	}
	cmd = submitCommand("bk-1")
	cmd.TotalPriceCents = 0
	if _, err := handler.Handle(context.Background(), cmd); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("zero total: got %v", err)
	}
}

func TestSubmitBookingRejectsUnknownClient(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)

	_, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if !errors.Is(err, ErrClientNotAuthorized) {
		t.Fatalf("got %v, want ErrClientNotAuthorized", err)
	}
}

func TestSubmitBookingRejectsHostRoleProfile(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleHost)
	seedProperty(t, factory, "prop-1", "host-1", true)

	_, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if !errors.Is(err, ErrClientNotAuthorized) {
		t.Fatalf("got %v, want ErrClientNotAuthorized", err)
	}
}

func TestSubmitBookingRejectsMissingOrUnavailableProperty(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)

	if _, err := handler.Handle(context.Background(), submitCommand("bk-1")); !errors.Is(err, ErrPropertyUnavailable) {
		t.Fatalf("missing property: got %v", err)
	}

	seedProperty(t, factory, "prop-1", "host-1", false)
	if _, err := handler.Handle(context.Background(), submitCommand("bk-2")); !errors.Is(err, ErrPropertyUnavailable) {
		t.Fatalf("unavailable property: got %v", err)
	}
}

func TestSubmitBookingRejectsOwnProperty(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "client-1", true)

	_, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if !errors.Is(err, ErrSelfBooking) {
		t.Fatalf("got %v, want ErrSelfBooking", err)
	}
}

func TestSubmitBookingRejectsOverlapWithAcceptedBooking(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-existing", "prop-1", "other-client", mustRange(t, 5, 10), domainbooking.StatusAccepted)

	// Requested stay starts the day the accepted one ends: same-day turnover
	// still conflicts.
	_, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if !errors.Is(err, ErrDateConflict) {
		t.Fatalf("got %v, want ErrDateConflict", err)
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) || len(conflict.Ranges) != 1 {
		t.Fatalf("conflict detail missing: %v", err)
	}
	if _, err := factory.BookingRepo.ByID(context.Background(), "bk-1"); !errors.Is(err, domainbooking.ErrNotFound) {
		t.Fatal("conflicting booking must not be persisted")
	}
}

func TestSubmitBookingIgnoresPendingAndRejectedOverlaps(t *testing.T) {
	handler, factory, _, _ := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-pending", "prop-1", "other-client", mustRange(t, 10, 15), domainbooking.StatusPending)
	seedBooking(t, factory, "bk-rejected", "prop-1", "other-client", mustRange(t, 10, 15), domainbooking.StatusRejected)

	result, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if err != nil {
		t.Fatalf("overlapping pending/rejected must not block: %v", err)
	}
	if result.Status != string(domainbooking.StatusPending) {
		t.Fatalf("status = %s, want pending", result.Status)
	}
}

func TestSubmitBookingPersistsPendingAndNotifiesHost(t *testing.T) {
	handler, factory, notifier, box := newSubmitFixture(t)
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "host-1", true)

	result, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if err != nil {
		t.Fatal(err)
	}
	if result.BookingID != "bk-1" || result.Status != string(domainbooking.StatusPending) {
		t.Fatalf("result = %+v", result)
	}

	stored, err := factory.BookingRepo.ByID(context.Background(), "bk-1")
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != domainbooking.StatusPending {
		t.Fatalf("stored status = %s, want pending", stored.Status)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].UserID != "host-1" {
		t.Fatalf("host notification = %+v", notifier.sent)
	}

	records := box.Records()
	if len(records) != 1 || records[0].Name != "booking.requested" {
		t.Fatalf("outbox records = %+v", records)
	}
}

func TestSubmitBookingSwallowsNotifierFailure(t *testing.T) {
	handler, factory, notifier, _ := newSubmitFixture(t)
	notifier.err = errors.New("inbox down")
	seedProfile(t, factory, "client-1", domainprofile.RoleClient)
	seedProperty(t, factory, "prop-1", "host-1", true)

	result, err := handler.Handle(context.Background(), submitCommand("bk-1"))
	if err != nil {
		t.Fatalf("notification failure must not fail the booking: %v", err)
	}
	if _, err := factory.BookingRepo.ByID(context.Background(), domainbooking.BookingID(result.BookingID)); err != nil {
		t.Fatalf("booking must survive notifier failure: %v", err)
	}
}
