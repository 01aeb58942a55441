package booking

import (
	"context"
	"time"

	"stayledger/models"
)

// BookingService manages room bookings.
type BookingService interface {
	RoomBook(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) (*models.Booking, error)
	UpdateCheckOut(ctx context.Context, id string, checkOut time.Time) (*models.Booking, error)
}
