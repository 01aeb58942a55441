package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayledger/database"
	billRepo "stayledger/database/repository/bill"
	bookingRepo "stayledger/database/repository/booking"
	generatedBillRepo "stayledger/database/repository/generatedbill"
	roomRepo "stayledger/database/repository/room"
	userRepo "stayledger/database/repository/user"
	"stayledger/models"
	"stayledger/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBillingService implements BillingService and the scheduled triggers.
type DefaultBillingService struct {
	Bookings       bookingRepo.BookingRepository
	Rooms          roomRepo.RoomRepository
	UtilityBills   billRepo.UtilityBillRepository
	Users          userRepo.UserRepository
	GeneratedBills generatedBillRepo.GeneratedBillRepository
	Clock          utils.Clock
	Logger         *zap.Logger
}

func (s *DefaultBillingService) log() *zap.Logger {
	return utils.OrNop(s.Logger)
}

func (s *DefaultBillingService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *DefaultBillingService) GenerateRecurringBill(ctx context.Context, snap BookingSnapshot, today time.Time) (*models.GeneratedBill, error) {
	b := snap.Booking
	if !b.HasStay() {
		return nil, fmt.Errorf("booking %s: %w", b.ID, ErrMissingStayDates)
	}
	if StayDays(*b.CheckIn, *b.CheckOut) < MinRecurringStayDays {
		return nil, nil
	}

	total := MidCycleAmount(*b.CheckIn, *b.CheckOut, snap.Room.Rent, snap.Electricity(), today)
	return s.persist(ctx, snap, models.BillRecurring, MonthKey(today), total)
}

func (s *DefaultBillingService) GenerateCheckoutBill(snap BookingSnapshot) (decimal.Decimal, error) {
	b := snap.Booking
	if !b.HasStay() {
		return decimal.Zero, fmt.Errorf("booking %s: %w", b.ID, ErrMissingStayDates)
	}
	return CheckOutAmount(*b.CheckIn, *b.CheckOut, snap.Room.Rent, snap.Electricity()), nil
}

func (s *DefaultBillingService) SaveCheckoutBill(ctx context.Context, snap BookingSnapshot) (*models.GeneratedBill, error) {
	total, err := s.GenerateCheckoutBill(snap)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, snap, models.BillCheckout, MonthKey(*snap.Booking.CheckOut), total)
}

// persist stores one generated bill unless the booking already has one of
// the same kind for month.
func (s *DefaultBillingService) persist(ctx context.Context, snap BookingSnapshot, kind models.BillKind, month string, total decimal.Decimal) (*models.GeneratedBill, error) {
	exists, err := s.GeneratedBills.ExistsForPeriod(ctx, snap.Booking.ID, month, kind)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("booking %s %s %s: %w", snap.Booking.ID, kind, month, ErrDuplicateBill)
	}

	bill := newGeneratedBill(snap, kind, month, total, s.now())
	if err := s.GeneratedBills.Save(ctx, bill); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fmt.Errorf("booking %s %s %s: %w", snap.Booking.ID, kind, month, ErrDuplicateBill)
		}
		return nil, err
	}

	s.log().Info("generated bill",
		zap.String("billId", bill.ID),
		zap.String("bookingId", snap.Booking.ID),
		zap.String("kind", string(kind)),
		zap.String("month", month),
		zap.String("total", total.StringFixed(2)),
	)
	return bill, nil
}

// newGeneratedBill copies the snapshot into value summaries so later edits
// to the live records do not reach the bill.
func newGeneratedBill(snap BookingSnapshot, kind models.BillKind, month string, total decimal.Decimal, now time.Time) *models.GeneratedBill {
	bill := &models.GeneratedBill{
		ID:   uuid.New().String(),
		Kind: kind,
		Room: models.RoomSummary{
			RoomNumber: snap.Room.RoomNumber,
			Rent:       snap.Room.Rent,
			Sharing:    snap.Room.Sharing,
			Capacity:   snap.Room.Capacity,
		},
		Tenant: models.TenantSummary{
			ID:    snap.Tenant.ID,
			Name:  snap.Tenant.Name,
			Email: snap.Tenant.Email,
		},
		Booking: models.BookingSummary{
			ID:       snap.Booking.ID,
			CheckIn:  utils.DateOf(*snap.Booking.CheckIn),
			CheckOut: utils.DateOf(*snap.Booking.CheckOut),
		},
		Month:             month,
		Total:             total,
		DeliveryStatus:    models.DeliveryNotSent,
		ComputationStatus: models.Calculated,
		CreatedAt:         now,
	}
	if u := snap.Utility; u != nil {
		bill.Bill = models.BillSnapshot{
			ID:               u.ID,
			ElectricityUnits: u.ElectricityUnits,
			UnitPrice:        u.UnitPrice,
			RentPerDay:       u.RentPerDay,
		}
	}
	return bill
}

func (s *DefaultBillingService) GetBill(ctx context.Context, id string) (*models.GeneratedBill, error) {
	return s.GeneratedBills.GetByID(ctx, id)
}

func (s *DefaultBillingService) ListBills(ctx context.Context, month string) ([]models.GeneratedBill, error) {
	if month != "" {
		if _, err := ParseMonthKey(month); err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", month, err)
		}
	}
	return s.GeneratedBills.List(ctx, month)
}

func (s *DefaultBillingService) ListTenantBills(ctx context.Context, tenantID string) ([]models.GeneratedBill, error) {
	return s.GeneratedBills.ListByTenant(ctx, tenantID)
}
