package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/app/uow"
	domainnotification "staybook/internal/domain/notification"
	"staybook/internal/infra/security"
	"staybook/internal/infra/storage/memory"
)

func unitContext(t *testing.T, factory *memory.Factory) context.Context {
	t.Helper()
	unit, err := factory.Begin(context.Background(), uow.TxOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return uow.ContextWithUnitOfWork(context.Background(), unit)
}

func seedNotification(t *testing.T, factory *memory.Factory, id, userID string, createdAt time.Time) {
	t.Helper()
	n, err := domainnotification.New(id, userID, "message "+id, createdAt)
	if err != nil {
		t.Fatal(err)
	}
	if err := factory.NotificationRepo.Insert(context.Background(), n); err != nil {
		t.Fatal(err)
	}
}

func TestSendNotificationRequiresServiceCredential(t *testing.T) {
	factory := memory.NewFactory()
	handler := &SendNotificationHandler{Credential: ""}

	_, err := handler.Handle(unitContext(t, factory), SendNotificationCommand{UserID: "user-1", Message: "hi"})
	if !errors.Is(err, security.ErrServiceCredentialMissing) {
		t.Fatalf("got %v, want ErrServiceCredentialMissing", err)
	}
}

func TestSendNotificationStoresUnreadEntry(t *testing.T) {
	factory := memory.NewFactory()
	handler := &SendNotificationHandler{Credential: "service-key"}

	view, err := handler.Handle(unitContext(t, factory), SendNotificationCommand{UserID: "user-1", Message: "Your booking was accepted."})
	if err != nil {
		t.Fatal(err)
	}
	if view.UserID != "user-1" || view.Read {
		t.Fatalf("view = %+v", view)
	}

	stored, err := factory.NotificationRepo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Message != "Your booking was accepted." {
		t.Fatalf("stored = %+v", stored)
	}
}

func TestSendNotificationValidation(t *testing.T) {
	factory := memory.NewFactory()
	handler := &SendNotificationHandler{Credential: "service-key"}

	if _, err := handler.Handle(unitContext(t, factory), SendNotificationCommand{Message: "hi"}); !errors.Is(err, domainnotification.ErrRecipientRequired) {
		t.Fatalf("missing recipient: got %v", err)
	}
	if _, err := handler.Handle(unitContext(t, factory), SendNotificationCommand{UserID: "user-1", Message: "  "}); !errors.Is(err, domainnotification.ErrMessageRequired) {
		t.Fatalf("blank message: got %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	factory := memory.NewFactory()
	seedNotification(t, factory, "n-1", "user-1", time.Now())
	handler := &MarkReadHandler{}

	if _, err := handler.Handle(unitContext(t, factory), MarkReadCommand{NotificationID: "n-1"}); err != nil {
		t.Fatal(err)
	}
	stored, err := factory.NotificationRepo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if !stored[0].Read {
		t.Fatal("notification not marked read")
	}

	if _, err := handler.Handle(unitContext(t, factory), MarkReadCommand{NotificationID: "ghost"}); !errors.Is(err, domainnotification.ErrNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
}

func TestMarkAllReadCountsFlips(t *testing.T) {
	factory := memory.NewFactory()
	now := time.Now()
	seedNotification(t, factory, "n-1", "user-1", now)
	seedNotification(t, factory, "n-2", "user-1", now)
	seedNotification(t, factory, "n-other", "user-2", now)
	handler := &MarkAllReadHandler{}

	result, err := handler.Handle(unitContext(t, factory), MarkAllReadCommand{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 2 {
		t.Fatalf("updated = %d, want 2", result.Updated)
	}

	// A second pass has nothing left to flip.
	result, err = handler.Handle(unitContext(t, factory), MarkAllReadCommand{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if result.Updated != 0 {
		t.Fatalf("second pass updated = %d, want 0", result.Updated)
	}
}

func TestListNotificationsNewestFirst(t *testing.T) {
	factory := memory.NewFactory()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedNotification(t, factory, "n-old", "user-1", base)
	seedNotification(t, factory, "n-new", "user-1", base.Add(time.Hour))
	seedNotification(t, factory, "n-foreign", "user-2", base)
	handler := &ListNotificationsHandler{UoWFactory: factory}

	result, err := handler.Handle(context.Background(), ListNotificationsQuery{UserID: "user-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	if result.Items[0].ID != "n-new" || result.Items[1].ID != "n-old" {
		t.Fatalf("order = %s, %s", result.Items[0].ID, result.Items[1].ID)
	}
}
