package policies

import "context"

// Notifier appends a message to a user's inbox. Implementations write with
// the elevated store credential because the recipient is never the caller.
// Dispatch is fire and forget: callers log failures and move on.
type Notifier interface {
	Send(ctx context.Context, userID string, message string) error
}
