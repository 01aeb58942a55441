package handlers

import (
	"errors"
	"net/http"

	"stayledger/database"
	"stayledger/services/billing"
	"stayledger/services/booking"
	"stayledger/services/payment"
	"stayledger/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *booking.ValidationError
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrRoomOccupied),
		errors.Is(err, database.ErrDuplicate),
		errors.Is(err, billing.ErrDuplicateBill),
		errors.Is(err, asynq.ErrDuplicateTask),
		errors.Is(err, asynq.ErrTaskIDConflict):
		return http.StatusConflict
	case errors.Is(err, payment.ErrInvalidSignature),
		errors.Is(err, payment.ErrNothingToPay),
		errors.Is(err, billing.ErrMissingStayDates):
		return http.StatusBadRequest
	case errors.Is(err, billing.ErrUnknownTrigger):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// respondError writes err with the matching status. Internal errors hide their detail.
func respondError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(message, zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Message: message})
		return
	}
	utils.JSONError(c, status, message, err.Error())
}

func badRequest(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
}
