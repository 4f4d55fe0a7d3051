package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingapp "staybook/internal/app/handlers/booking"
	"staybook/internal/app/uow"
	domainbooking "staybook/internal/domain/booking"
	domainnotification "staybook/internal/domain/notification"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
	"staybook/internal/infra/security"
)

// Every endpoint answers with the same envelope: {"success":true,"data":...}
// on the happy path, {"success":false,"error":...} otherwise.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"success": false, "error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, security.ErrServiceCredentialMissing),
		errors.Is(err, uow.ErrUnitOfWorkMissing):
		return http.StatusInternalServerError
	case errors.Is(err, bookingapp.ErrDateConflict),
		errors.Is(err, domainbooking.ErrAlreadyResolved),
		errors.Is(err, domainprofile.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, bookingapp.ErrPropertyUnavailable),
		errors.Is(err, domainbooking.ErrNotFound),
		errors.Is(err, domainproperty.ErrNotFound),
		errors.Is(err, domainprofile.ErrNotFound),
		errors.Is(err, domainnotification.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, bookingapp.ErrClientNotAuthorized),
		errors.Is(err, bookingapp.ErrNotPropertyOwner):
		return http.StatusForbidden
	case errors.Is(err, bookingapp.ErrMissingFields),
		errors.Is(err, bookingapp.ErrSelfBooking),
		errors.Is(err, bookingapp.ErrInvalidTargetStatus),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrInvalidTotal),
		errors.Is(err, domainbooking.ErrClientRequired),
		errors.Is(err, domainproperty.ErrTitleRequired),
		errors.Is(err, domainproperty.ErrInvalidPrice),
		errors.Is(err, domainproperty.ErrHostRequired),
		errors.Is(err, domainprofile.ErrNameRequired),
		errors.Is(err, domainprofile.ErrInvalidRole),
		errors.Is(err, domainprofile.ErrIDRequired),
		errors.Is(err, domainnotification.ErrRecipientRequired),
		errors.Is(err, domainnotification.ErrMessageRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
