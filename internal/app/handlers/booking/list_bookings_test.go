package booking

import (
	"context"
	"testing"

	domainbooking "staybook/internal/domain/booking"
)

func TestListClientBookingsIncludesPropertySnapshot(t *testing.T) {
	factory := memoryFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedBooking(t, factory, "bk-1", "prop-1", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)
	seedBooking(t, factory, "bk-other", "prop-1", "client-2", mustRange(t, 20, 25), domainbooking.StatusPending)

	handler := &ListClientBookingsHandler{UoWFactory: factory}
	result, err := handler.Handle(context.Background(), ListClientBookingsQuery{ClientID: "client-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	item := result.Items[0]
	if item.ID != "bk-1" || item.Property.Title != "Property prop-1" {
		t.Fatalf("item = %+v", item)
	}
}

func TestListClientBookingsToleratesDeletedProperty(t *testing.T) {
	factory := memoryFixture(t)
	seedBooking(t, factory, "bk-1", "prop-gone", "client-1", mustRange(t, 10, 15), domainbooking.StatusPending)

	handler := &ListClientBookingsHandler{UoWFactory: factory}
	result, err := handler.Handle(context.Background(), ListClientBookingsQuery{ClientID: "client-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(result.Items))
	}
	if result.Items[0].Property.ID != "prop-gone" || result.Items[0].Property.Title != "" {
		t.Fatalf("snapshot = %+v", result.Items[0].Property)
	}
}

func TestListHostBookingsFiltersByStatus(t *testing.T) {
	factory := memoryFixture(t)
	seedProperty(t, factory, "prop-1", "host-1", true)
	seedProperty(t, factory, "prop-other", "host-2", true)
	seedBooking(t, factory, "bk-pending", "prop-1", "client-1", mustRange(t, 1, 5), domainbooking.StatusPending)
	seedBooking(t, factory, "bk-accepted", "prop-1", "client-2", mustRange(t, 6, 9), domainbooking.StatusAccepted)
	seedBooking(t, factory, "bk-foreign", "prop-other", "client-3", mustRange(t, 1, 5), domainbooking.StatusPending)

	handler := &ListHostBookingsHandler{UoWFactory: factory, Logger: discardLogger()}

	all, err := handler.Handle(context.Background(), ListHostBookingsQuery{HostID: "host-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("all items = %d, want 2", len(all.Items))
	}
	for _, item := range all.Items {
		if item.ID == "bk-foreign" {
			t.Fatal("foreign host booking leaked")
		}
	}

	pending, err := handler.Handle(context.Background(), ListHostBookingsQuery{HostID: "host-1", Status: "Pending"})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending.Items) != 1 || pending.Items[0].ID != "bk-pending" {
		t.Fatalf("pending items = %+v", pending.Items)
	}
}
