package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	bookingapp "staybook/internal/app/handlers/booking"
	"staybook/internal/app/queries"
	domainbooking "staybook/internal/domain/booking"
)

type HostBookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h HostBookingHandler) List(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	q := bookingapp.ListHostBookingsQuery{HostID: user.ID, Status: c.Query("status")}
	result, err := queries.Ask[bookingapp.ListHostBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h HostBookingHandler) Accept(c *gin.Context) {
	h.resolve(c, domainbooking.StatusAccepted)
}

func (h HostBookingHandler) Reject(c *gin.Context) {
	h.resolve(c, domainbooking.StatusRejected)
}

func (h HostBookingHandler) resolve(c *gin.Context, target domainbooking.Status) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	cmd := bookingapp.ResolveBookingCommand{
		HostID:    user.ID,
		BookingID: c.Param("id"),
		Target:    target,
	}
	result, err := commands.Dispatch[bookingapp.ResolveBookingCommand, *bookingapp.ResolveBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
