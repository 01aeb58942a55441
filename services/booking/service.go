package booking

import (
	"context"
	"fmt"
	"time"

	bookingRepo "stayledger/database/repository/booking"
	roomRepo "stayledger/database/repository/room"
	userRepo "stayledger/database/repository/user"
	"stayledger/models"
	"stayledger/utils"

	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Rooms  roomRepo.RoomRepository
	Users  userRepo.UserRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

func (s *DefaultBookingService) today() time.Time {
	if s.Clock == nil {
		return utils.DateOf(time.Now())
	}
	return utils.Today(s.Clock)
}

// RoomBook books an available room for the requested stay and marks the room occupied.
func (s *DefaultBookingService) RoomBook(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if req.CheckOut == nil {
		return nil, newValidationError("checkOut", "check-out date is required")
	}
	checkIn := utils.DateOf(req.CheckIn)
	checkOut := utils.DateOf(*req.CheckOut)
	today := s.today()

	if checkIn.Before(today) {
		return nil, newValidationError("checkIn", "check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return nil, newValidationError("checkOut", "check-out date must be after check-in date")
	}

	if _, err := s.Users.GetByID(ctx, req.TenantID); err != nil {
		return nil, fmt.Errorf("tenant %s: %w", req.TenantID, err)
	}
	room, err := s.Rooms.GetByNumber(ctx, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	if room.Status == models.RoomOccupied {
		return nil, fmt.Errorf("room %s: %w", room.RoomNumber, ErrRoomOccupied)
	}

	booking := &models.Booking{
		TenantID:   req.TenantID,
		RoomNumber: room.RoomNumber,
		BillID:     req.BillID,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		State:      stateFor(checkOut, today),
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.Rooms.SetStatus(ctx, room.RoomNumber, models.RoomOccupied); err != nil {
		return nil, fmt.Errorf("booking %s created but room %s not marked occupied: %w", booking.ID, room.RoomNumber, err)
	}

	utils.OrNop(s.Logger).Info("room booked",
		zap.String("bookingId", booking.ID),
		zap.String("room", room.RoomNumber),
		zap.String("tenantId", req.TenantID))
	return booking, nil
}

// stateFor is ACTIVE while the check-out date has not passed.
func stateFor(checkOut, today time.Time) models.BookingState {
	if checkOut.Before(today) {
		return models.BookingInactive
	}
	return models.BookingActive
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

// Cancel flags the booking cancelled and takes it out of recurring billing.
// Bills already generated are kept. Cancelling twice is a no-op.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Cancelled {
		return booking, nil
	}

	booking.Cancelled = true
	booking.State = models.BookingInactive
	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	utils.OrNop(s.Logger).Info("booking cancelled", zap.String("bookingId", id))
	return booking, nil
}

// UpdateCheckOut moves the check-out date and reactivates the booking.
func (s *DefaultBookingService) UpdateCheckOut(ctx context.Context, id string, checkOut time.Time) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Cancelled {
		return nil, newValidationError("booking", "cancelled bookings cannot be changed")
	}

	checkOut = utils.DateOf(checkOut)
	if booking.CheckIn != nil && !checkOut.After(*booking.CheckIn) {
		return nil, newValidationError("checkOut", "check-out date must be after check-in date")
	}
	if checkOut.Before(s.today()) {
		return nil, newValidationError("checkOut", "check-out date cannot be in the past")
	}

	booking.CheckOut = &checkOut
	booking.State = models.BookingActive
	if err := s.Repo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}
