package notification

import (
	"context"
	"errors"
	"strings"

	"staybook/internal/app/commands"
	"staybook/internal/app/uow"
)

const (
	markReadKey    = "notification.mark_read"
	markAllReadKey = "notification.mark_all_read"
)

type MarkReadCommand struct {
	NotificationID string
}

func (c MarkReadCommand) Key() string { return markReadKey }

type MarkReadResult struct {
	NotificationID string `json:"notification_id"`
}

type MarkReadHandler struct{}

func (h *MarkReadHandler) Handle(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error) {
	id := strings.TrimSpace(cmd.NotificationID)
	if id == "" {
		return nil, errors.New("notification: id is required")
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	if err := unit.Notifications().MarkRead(ctx, id); err != nil {
		return nil, err
	}
	return &MarkReadResult{NotificationID: id}, nil
}

type MarkAllReadCommand struct {
	UserID string
}

func (c MarkAllReadCommand) Key() string { return markAllReadKey }

type MarkAllReadResult struct {
	Updated int64 `json:"updated"`
}

type MarkAllReadHandler struct{}

func (h *MarkAllReadHandler) Handle(ctx context.Context, cmd MarkAllReadCommand) (*MarkAllReadResult, error) {
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		return nil, errors.New("notification: user id is required")
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	updated, err := unit.Notifications().MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResult{Updated: updated}, nil
}

var _ commands.Handler[MarkReadCommand, *MarkReadResult] = (*MarkReadHandler)(nil)
var _ commands.Handler[MarkAllReadCommand, *MarkAllReadResult] = (*MarkAllReadHandler)(nil)
