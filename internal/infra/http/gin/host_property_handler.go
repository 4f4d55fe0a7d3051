package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	propertyapp "staybook/internal/app/handlers/property"
	"staybook/internal/app/queries"
)

type HostPropertyHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createPropertyRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	PricePerNightCents int64  `json:"price_per_night_cents"`
	Location           string `json:"location"`
	ImageURL           string `json:"image_url"`
}

type toggleAvailabilityRequest struct {
	Available *bool `json:"available"`
}

func (h HostPropertyHandler) List(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	q := propertyapp.ListHostPropertiesQuery{HostID: user.ID}
	result, err := queries.Ask[propertyapp.ListHostPropertiesQuery, dto.PropertyCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h HostPropertyHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	cmd := propertyapp.CreatePropertyCommand{
		CommandID:          generateCommandID(),
		HostID:             user.ID,
		Title:              req.Title,
		Description:        req.Description,
		PricePerNightCents: req.PricePerNightCents,
		Location:           req.Location,
		ImageURL:           req.ImageURL,
	}
	result, err := commands.Dispatch[propertyapp.CreatePropertyCommand, *propertyapp.CreatePropertyResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, result)
}

func (h HostPropertyHandler) Toggle(c *gin.Context) {
	if _, ok := requireRole(c, "host"); !ok {
		return
	}
	var req toggleAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Available == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "available flag is required"})
		return
	}
	cmd := propertyapp.ToggleAvailabilityCommand{
		PropertyID: c.Param("id"),
		Available:  *req.Available,
	}
	result, err := commands.Dispatch[propertyapp.ToggleAvailabilityCommand, *propertyapp.ToggleAvailabilityResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
