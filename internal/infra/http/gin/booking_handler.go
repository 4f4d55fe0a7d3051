package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	bookingapp "staybook/internal/app/handlers/booking"
	"staybook/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type submitBookingRequest struct {
	PropertyID      string    `json:"property_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
}

func (h BookingHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	cmd := bookingapp.SubmitBookingCommand{
		CommandID:       generateCommandID(),
		PropertyID:      req.PropertyID,
		ClientID:        user.ID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		TotalPriceCents: req.TotalPriceCents,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.SubmitBookingCommand, *bookingapp.SubmitBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

func (h BookingHandler) ListMine(c *gin.Context) {
	user, ok := requireRole(c, "")
	if !ok {
		return
	}
	q := bookingapp.ListClientBookingsQuery{ClientID: user.ID}
	result, err := queries.Ask[bookingapp.ListClientBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}
