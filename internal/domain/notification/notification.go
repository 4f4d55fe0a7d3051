package notification

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("notification: not found")
	ErrRecipientRequired = errors.New("notification: recipient id is required")
	ErrMessageRequired   = errors.New("notification: message is required")
)

// Notification is an append-only inbox entry. Nothing updates it after
// insertion except the read flag.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type Repository interface {
	Insert(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id string) error
	// MarkAllRead flips every unread notification for the user and returns
	// how many were flipped.
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

func New(id, userID, message string, now time.Time) (*Notification, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("notification: id is required")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, ErrRecipientRequired
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrMessageRequired
	}
	return &Notification{
		ID:        id,
		UserID:    userID,
		Message:   message,
		Read:      false,
		CreatedAt: now.UTC(),
	}, nil
}
