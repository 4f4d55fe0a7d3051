package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/dto"
	propertyapp "staybook/internal/app/handlers/property"
	"staybook/internal/app/queries"
)

// PropertyHandler serves the public catalog: anyone may browse available
// properties without authenticating.
type PropertyHandler struct {
	Queries queries.Bus
}

func (h PropertyHandler) Catalog(c *gin.Context) {
	result, err := queries.Ask[propertyapp.ListAvailablePropertiesQuery, dto.PropertyCollection](c.Request.Context(), h.Queries, propertyapp.ListAvailablePropertiesQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (h PropertyHandler) Get(c *gin.Context) {
	q := propertyapp.GetPropertyQuery{PropertyID: c.Param("id")}
	result, err := queries.Ask[propertyapp.GetPropertyQuery, dto.PropertySummary](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, result)
}
