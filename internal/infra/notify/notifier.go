package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/policies"
	domainnotification "staybook/internal/domain/notification"
)

// StoreNotifier appends inbox rows through a repository bound to the
// service credential, outside any request transaction: a failed dispatch
// must never drag the booking write down with it, and a rolled-back
// booking at worst leaves a stray inbox entry.
type StoreNotifier struct {
	Repo domainnotification.Repository
}

func (n StoreNotifier) Send(ctx context.Context, userID string, message string) error {
	if n.Repo == nil {
		return fmt.Errorf("notify: repository not configured")
	}
	entry, err := domainnotification.New(uuid.NewString(), userID, message, time.Now())
	if err != nil {
		return err
	}
	if err := n.Repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("notify: insert failed: %w", err)
	}
	return nil
}

var _ policies.Notifier = StoreNotifier{}
