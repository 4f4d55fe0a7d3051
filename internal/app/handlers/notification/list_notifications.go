package notification

import (
	"context"
	"errors"
	"sort"
	"strings"

	"staybook/internal/app/dto"
	handlersupport "staybook/internal/app/handlers/support"
	"staybook/internal/app/queries"
	"staybook/internal/app/uow"
)

const listNotificationsKey = "notification.list"

type ListNotificationsQuery struct {
	UserID string
}

func (q ListNotificationsQuery) Key() string { return listNotificationsKey }

type ListNotificationsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) (dto.NotificationCollection, error) {
	userID := strings.TrimSpace(q.UserID)
	if userID == "" {
		return dto.NotificationCollection{}, errors.New("notification: user id is required")
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.NotificationCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	notifications, err := unit.Notifications().ListByUser(execCtx, userID)
	if err != nil {
		return dto.NotificationCollection{}, err
	}
	items := make([]dto.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.MapNotificationView(n))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return dto.NotificationCollection{Items: items}, nil
}

var _ queries.Handler[ListNotificationsQuery, dto.NotificationCollection] = (*ListNotificationsHandler)(nil)
