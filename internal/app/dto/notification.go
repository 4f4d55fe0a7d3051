package dto

import (
	"time"

	domainnotification "staybook/internal/domain/notification"
)

type NotificationView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationCollection struct {
	Items []NotificationView `json:"items"`
}

func MapNotificationView(n *domainnotification.Notification) NotificationView {
	return NotificationView{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
