package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic-booking-server/internal/scheduling"
	"clinic-booking-server/internal/utils"
)

// respondSchedulingError translates an engine error kind into the
// matching HTTP response. Unrecognized errors surface as 500s.
func respondSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrUnauthenticated):
		utils.Unauthorized(c, err.Error())
	case errors.Is(err, scheduling.ErrAccessDenied):
		utils.Forbidden(c, err.Error())
	case errors.Is(err, scheduling.ErrDoctorNotFound),
		errors.Is(err, scheduling.ErrPatientNotFound),
		errors.Is(err, scheduling.ErrAppointmentNotFound),
		errors.Is(err, scheduling.ErrWorkingHoursNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, scheduling.ErrConflict):
		utils.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, scheduling.ErrInvalidSlot),
		errors.Is(err, scheduling.ErrOutsideHours),
		errors.Is(err, scheduling.ErrInvalidOffset),
		errors.Is(err, scheduling.ErrNotPatient),
		errors.Is(err, scheduling.ErrAlreadyCancelled):
		utils.BadRequest(c, err.Error())
	default:
		utils.Logger.Error("Unexpected scheduling error",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.InternalServerError(c, err.Error())
	}
}

// parseDateTime accepts the minute-precision timestamp format used
// throughout the API, with or without seconds.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse(scheduling.ViewTimeLayout, s)
}
