package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	"staybook/internal/app/uow"
	domainnotification "staybook/internal/domain/notification"
	"staybook/internal/infra/security"
)

const sendNotificationKey = "notification.send"

type SendNotificationCommand struct {
	UserID  string
	Message string
}

func (c SendNotificationCommand) Key() string { return sendNotificationKey }

// SendNotificationHandler appends a message to another user's inbox, which
// is exactly the write the elevated credential exists for.
type SendNotificationHandler struct {
	Credential security.ServiceCredential
	Logger     *slog.Logger
}

func (h *SendNotificationHandler) Handle(ctx context.Context, cmd SendNotificationCommand) (dto.NotificationView, error) {
	if err := h.Credential.Check(); err != nil {
		return dto.NotificationView{}, err
	}
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return dto.NotificationView{}, uow.ErrUnitOfWorkMissing
	}
	n, err := domainnotification.New(uuid.NewString(), cmd.UserID, cmd.Message, time.Now())
	if err != nil {
		return dto.NotificationView{}, err
	}
	if err := unit.Notifications().Insert(ctx, n); err != nil {
		return dto.NotificationView{}, err
	}
	if h.Logger != nil {
		h.Logger.Debug("notification stored", "notification_id", n.ID, "user_id", n.UserID)
	}
	return dto.MapNotificationView(n), nil
}

var _ commands.Handler[SendNotificationCommand, dto.NotificationView] = (*SendNotificationHandler)(nil)
