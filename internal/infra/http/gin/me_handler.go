package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	notificationapp "staybook/internal/app/handlers/notification"
	profileapp "staybook/internal/app/handlers/profile"
	"staybook/internal/app/queries"
)

// MeHandler serves the authenticated user's own profile and inbox.
type MeHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
	Role      *string `json:"role"`
}

func (h MeHandler) GetProfile(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	q := profileapp.GetProfileQuery{ProfileID: user.ID}
	result, err := queries.Ask[profileapp.GetProfileQuery, dto.ProfileView](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h MeHandler) UpdateProfile(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	cmd := profileapp.UpdateProfileCommand{
		ProfileID: user.ID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Role:      req.Role,
	}
	result, err := commands.Dispatch[profileapp.UpdateProfileCommand, dto.ProfileView](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h MeHandler) ListNotifications(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	q := notificationapp.ListNotificationsQuery{UserID: user.ID}
	result, err := queries.Ask[notificationapp.ListNotificationsQuery, dto.NotificationCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h MeHandler) MarkAllNotificationsRead(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	cmd := notificationapp.MarkAllReadCommand{UserID: user.ID}
	result, err := commands.Dispatch[notificationapp.MarkAllReadCommand, *notificationapp.MarkAllReadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
