package property

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"staybook/internal/app/uow"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/infra/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func unitContext(t *testing.T, factory *memory.Factory) context.Context {
	t.Helper()
	unit, err := factory.Begin(context.Background(), uow.TxOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return uow.ContextWithUnitOfWork(context.Background(), unit)
}

func createProperty(t *testing.T, factory *memory.Factory, id, hostID string) {
	t.Helper()
	handler := &CreatePropertyHandler{Logger: discardLogger()}
	_, err := handler.Handle(unitContext(t, factory), CreatePropertyCommand{
		CommandID:          id,
		HostID:             hostID,
		Title:              "Loft " + id,
		PricePerNightCents: 12000,
		Location:           "Lisbon",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCreatePropertyDefaultsToAvailable(t *testing.T) {
	factory := memory.NewFactory()
	createProperty(t, factory, "prop-1", "host-1")

	stored, err := factory.PropertyRepo.ByID(context.Background(), "prop-1")
	if err != nil {
		t.Fatal(err)
	}
	if !stored.Available {
		t.Fatal("new property must be available")
	}
	if stored.HostID != "host-1" {
		t.Fatalf("host = %s", stored.HostID)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	factory := memory.NewFactory()
	handler := &CreatePropertyHandler{}

	_, err := handler.Handle(unitContext(t, factory), CreatePropertyCommand{CommandID: "p", HostID: "h", PricePerNightCents: 100})
	if !errors.Is(err, domainproperty.ErrTitleRequired) {
		t.Fatalf("missing title: got %v", err)
	}
	_, err = handler.Handle(unitContext(t, factory), CreatePropertyCommand{CommandID: "p", HostID: "h", Title: "T", PricePerNightCents: 0})
	if !errors.Is(err, domainproperty.ErrInvalidPrice) {
		t.Fatalf("zero price: got %v", err)
	}
}

func TestToggleAvailabilityHidesFromCatalog(t *testing.T) {
	factory := memory.NewFactory()
	createProperty(t, factory, "prop-1", "host-1")
	createProperty(t, factory, "prop-2", "host-1")

	toggle := &ToggleAvailabilityHandler{Logger: discardLogger()}
	result, err := toggle.Handle(unitContext(t, factory), ToggleAvailabilityCommand{PropertyID: "prop-1", Available: false})
	if err != nil {
		t.Fatal(err)
	}
	if result.Available {
		t.Fatal("toggle off did not stick")
	}

	catalog := &ListAvailablePropertiesHandler{UoWFactory: factory}
	listing, err := catalog.Handle(context.Background(), ListAvailablePropertiesQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Items) != 1 || listing.Items[0].ID != "prop-2" {
		t.Fatalf("catalog = %+v", listing.Items)
	}

	// Toggling back on restores visibility.
	if _, err := toggle.Handle(unitContext(t, factory), ToggleAvailabilityCommand{PropertyID: "prop-1", Available: true}); err != nil {
		t.Fatal(err)
	}
	listing, err = catalog.Handle(context.Background(), ListAvailablePropertiesQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(listing.Items) != 2 {
		t.Fatalf("catalog after re-enable = %d items", len(listing.Items))
	}
}

func TestToggleAvailabilityUnknownProperty(t *testing.T) {
	factory := memory.NewFactory()
	toggle := &ToggleAvailabilityHandler{}
	_, err := toggle.Handle(unitContext(t, factory), ToggleAvailabilityCommand{PropertyID: "ghost", Available: false})
	if !errors.Is(err, domainproperty.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListHostProperties(t *testing.T) {
	factory := memory.NewFactory()
	createProperty(t, factory, "prop-1", "host-1")
	createProperty(t, factory, "prop-2", "host-2")

	handler := &ListHostPropertiesHandler{UoWFactory: factory}
	result, err := handler.Handle(context.Background(), ListHostPropertiesQuery{HostID: "host-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != "prop-1" {
		t.Fatalf("items = %+v", result.Items)
	}
}

func TestGetProperty(t *testing.T) {
	factory := memory.NewFactory()
	createProperty(t, factory, "prop-1", "host-1")

	handler := &GetPropertyHandler{UoWFactory: factory}
	summary, err := handler.Handle(context.Background(), GetPropertyQuery{PropertyID: "prop-1"})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Title != "Loft prop-1" {
		t.Fatalf("summary = %+v", summary)
	}
	if _, err := handler.Handle(context.Background(), GetPropertyQuery{PropertyID: "ghost"}); !errors.Is(err, domainproperty.ErrNotFound) {
		t.Fatalf("unknown property: got %v", err)
	}
}
