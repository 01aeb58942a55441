package handlers

import (
	"net/http"

	"stayledger/models"
	"stayledger/services/booking"
	"stayledger/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes room bookings over HTTP.
type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// bookingInput carries stay dates as YYYY-MM-DD strings.
type bookingInput struct {
	TenantID   string `json:"tenantId" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
	BillID     string `json:"billId"`
	CheckIn    string `json:"checkIn" binding:"required"`
	CheckOut   string `json:"checkOut"`
}

func (in bookingInput) request() (models.BookingRequest, error) {
	req := models.BookingRequest{
		TenantID:   in.TenantID,
		RoomNumber: in.RoomNumber,
		BillID:     in.BillID,
	}
	checkIn, err := utils.ParseDate(in.CheckIn)
	if err != nil {
		return req, &booking.ValidationError{Field: "checkIn", Message: "must be YYYY-MM-DD"}
	}
	req.CheckIn = checkIn
	if in.CheckOut != "" {
		checkOut, err := utils.ParseDate(in.CheckOut)
		if err != nil {
			return req, &booking.ValidationError{Field: "checkOut", Message: "must be YYYY-MM-DD"}
		}
		req.CheckOut = &checkOut
	}
	return req, nil
}

// CreateBookingHandler books a room for a tenant.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input bookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	req, err := input.request()
	if err != nil {
		respondError(c, "invalid input", err)
		return
	}

	b, err := h.BookingService.RoomBook(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Booking failed", err)
		return
	}
	getLogger(c).Info("room booked", zap.String("bookingId", b.ID), zap.String("room", b.RoomNumber))
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.BookingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to fetch booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	b, err := h.BookingService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to cancel booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateCheckOutHandler moves the check-out date of a booking.
func (h *BookingHandler) UpdateCheckOutHandler(c *gin.Context) {
	var input struct {
		CheckOut string `json:"checkOut" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	checkOut, err := utils.ParseDate(input.CheckOut)
	if err != nil {
		respondError(c, "invalid input", &booking.ValidationError{Field: "checkOut", Message: "must be YYYY-MM-DD"})
		return
	}

	b, err := h.BookingService.UpdateCheckOut(c.Request.Context(), c.Param("id"), checkOut)
	if err != nil {
		respondError(c, "Failed to update check-out", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
