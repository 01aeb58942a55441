package bookingRepo

import (
	"context"
	"time"

	"stayledger/models"
)

// BookingRepository is the booking store.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	// FindActive returns every booking in state ACTIVE.
	FindActive(ctx context.Context) ([]models.Booking, error)
	// FindByCheckOutDate returns bookings checking out on date, whatever their state.
	FindByCheckOutDate(ctx context.Context, date time.Time) ([]models.Booking, error)
}
