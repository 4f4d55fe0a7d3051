package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	notificationapp "staybook/internal/app/handlers/notification"
)

type NotificationHandler struct {
	Commands commands.Bus
}

type sendNotificationRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// Send appends an inbox entry for an arbitrary user. The application handler
// refuses to run without the service credential configured.
func (h NotificationHandler) Send(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	var req sendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	cmd := notificationapp.SendNotificationCommand{
		UserID:  req.UserID,
		Message: req.Message,
	}
	result, err := commands.Dispatch[notificationapp.SendNotificationCommand, dto.NotificationView](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

func (h NotificationHandler) MarkRead(c *gin.Context) {
	if _, ok := requireRole(c, ""); !ok {
		return
	}
	cmd := notificationapp.MarkReadCommand{NotificationID: c.Param("id")}
	result, err := commands.Dispatch[notificationapp.MarkReadCommand, *notificationapp.MarkReadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
