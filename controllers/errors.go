package controllers

import (
	"errors"
	"net/http"

	"snapbook-backend/services"
	"snapbook-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps a manager error onto a status and an error body.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var terr *services.TransitionError
	switch {
	case errors.As(err, &terr):
		utils.RespondWithError(c, http.StatusUnprocessableEntity, terr.Error())
	case errors.Is(err, services.ErrBookedSlot):
		utils.RespondWithError(c, http.StatusConflict, "Booked time slots cannot be changed")
	case errors.Is(err, services.ErrNoDraft), errors.Is(err, services.ErrNotEditing):
		utils.RespondWithError(c, http.StatusConflict, capitalize(err.Error()))
	case errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrImageNotFound),
		errors.Is(err, services.ErrPackageNotFound),
		errors.Is(err, services.ErrPhotographerNotFound):
		utils.RespondWithError(c, http.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidSlotStatus),
		errors.Is(err, services.ErrNoFiles),
		errors.Is(err, services.ErrUnsupportedImage):
		utils.RespondWithError(c, http.StatusBadRequest, capitalize(err.Error()))
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save changes")
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
