package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayledger/database"
	"stayledger/models"
	"stayledger/utils"

	"go.uber.org/zap"
)

// RunReport summarizes one trigger run.
type RunReport struct {
	Trigger    string    `json:"trigger"`
	Date       time.Time `json:"date"`
	Candidates int       `json:"candidates"`
	Succeeded  int       `json:"succeeded"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

const (
	TriggerRecurring   = "recurring"
	TriggerCheckout    = "checkout"
	TriggerRoomRelease = "room-release"
)

// snapshotLoader reads the records around a booking. Rooms are cached so a
// run sees one rent figure per room however many bookings share it.
type snapshotLoader struct {
	svc   *DefaultBillingService
	rooms map[string]*models.Room
}

func (s *DefaultBillingService) newLoader() *snapshotLoader {
	return &snapshotLoader{svc: s, rooms: map[string]*models.Room{}}
}

func (l *snapshotLoader) room(ctx context.Context, number string) (*models.Room, error) {
	if r, ok := l.rooms[number]; ok {
		return r, nil
	}
	r, err := l.svc.Rooms.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	l.rooms[number] = r
	return r, nil
}

func (l *snapshotLoader) load(ctx context.Context, b models.Booking) (BookingSnapshot, error) {
	snap := BookingSnapshot{Booking: b}

	room, err := l.room(ctx, b.RoomNumber)
	if err != nil {
		return snap, fmt.Errorf("load room: %w", err)
	}
	snap.Room = *room

	tenant, err := l.svc.Users.GetByID(ctx, b.TenantID)
	if err != nil {
		return snap, fmt.Errorf("load tenant: %w", err)
	}
	snap.Tenant = *tenant

	snap.Utility, err = l.utility(ctx, b)
	if err != nil {
		return snap, fmt.Errorf("load utility bill: %w", err)
	}
	return snap, nil
}

// utility returns the booking's utility bill, falling back to the room's
// latest. A missing bill is not an error: electricity is billed as zero.
func (l *snapshotLoader) utility(ctx context.Context, b models.Booking) (*models.UtilityBill, error) {
	var (
		u   *models.UtilityBill
		err error
	)
	if b.BillID != "" {
		u, err = l.svc.UtilityBills.GetByID(ctx, b.BillID)
	} else {
		u, err = l.svc.UtilityBills.GetLatestByRoom(ctx, b.RoomNumber)
	}
	if errors.Is(err, database.ErrNotFound) {
		l.svc.log().Warn("no utility bill, electricity billed as zero",
			zap.String("bookingId", b.ID), zap.String("room", b.RoomNumber))
		return nil, nil
	}
	return u, err
}

// RunRecurringTrigger bills every active booking whose stay makes the month
// of date billable mid-cycle.
func (s *DefaultBillingService) RunRecurringTrigger(ctx context.Context, date time.Time) (RunReport, error) {
	date = utils.DateOf(date)
	report := RunReport{Trigger: TriggerRecurring, Date: date}
	logger := s.log().With(zap.String("trigger", TriggerRecurring), zap.String("month", MonthKey(date)))

	bookings, err := s.Bookings.FindActive(ctx)
	if err != nil {
		return report, fmt.Errorf("recurring trigger: fetch active bookings: %w", err)
	}
	report.Candidates = len(bookings)
	loader := s.newLoader()

	for _, b := range bookings {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if b.Cancelled || !b.HasStay() ||
			!Overlaps(*b.CheckIn, *b.CheckOut, date) ||
			!RecurringBillable(*b.CheckIn, *b.CheckOut, date) {
			report.Skipped++
			continue
		}

		snap, err := loader.load(ctx, b)
		if err != nil {
			logger.Error("failed to load booking", zap.String("bookingId", b.ID), zap.Error(err))
			report.Failed++
			continue
		}

		bill, err := s.GenerateRecurringBill(ctx, snap, date)
		switch {
		case errors.Is(err, ErrDuplicateBill):
			logger.Debug("already billed", zap.String("bookingId", b.ID))
			report.Skipped++
		case err != nil:
			logger.Error("failed to generate bill", zap.String("bookingId", b.ID), zap.Error(err))
			report.Failed++
		case bill == nil:
			report.Skipped++
		default:
			report.Succeeded++
		}
	}

	logger.Info("recurring trigger finished",
		zap.Int("candidates", report.Candidates),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

// RunCheckoutTrigger bills every booking checking out on date, whatever its
// state. Cancelled stays are billed too; cancelling does not move the check-out.
func (s *DefaultBillingService) RunCheckoutTrigger(ctx context.Context, date time.Time) (RunReport, error) {
	date = utils.DateOf(date)
	report := RunReport{Trigger: TriggerCheckout, Date: date}
	logger := s.log().With(zap.String("trigger", TriggerCheckout), zap.String("date", date.Format(utils.DateLayout)))

	bookings, err := s.Bookings.FindByCheckOutDate(ctx, date)
	if err != nil {
		return report, fmt.Errorf("checkout trigger: fetch bookings: %w", err)
	}
	report.Candidates = len(bookings)
	loader := s.newLoader()

	for _, b := range bookings {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		if !b.HasStay() {
			report.Skipped++
			continue
		}

		snap, err := loader.load(ctx, b)
		if err != nil {
			logger.Error("failed to load booking", zap.String("bookingId", b.ID), zap.Error(err))
			report.Failed++
			continue
		}

		_, err = s.SaveCheckoutBill(ctx, snap)
		switch {
		case errors.Is(err, ErrDuplicateBill):
			report.Skipped++
		case err != nil:
			logger.Error("failed to generate checkout bill", zap.String("bookingId", b.ID), zap.Error(err))
			report.Failed++
		default:
			report.Succeeded++
		}
	}

	logger.Info("checkout trigger finished",
		zap.Int("candidates", report.Candidates),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed))
	return report, nil
}

// RunRoomReleaseTrigger frees the rooms of bookings checking out on date and
// rolls those bookings to INACTIVE. It is scheduled after the checkout trigger.
func (s *DefaultBillingService) RunRoomReleaseTrigger(ctx context.Context, date time.Time) (RunReport, error) {
	date = utils.DateOf(date)
	report := RunReport{Trigger: TriggerRoomRelease, Date: date}
	logger := s.log().With(zap.String("trigger", TriggerRoomRelease), zap.String("date", date.Format(utils.DateLayout)))

	bookings, err := s.Bookings.FindByCheckOutDate(ctx, date)
	if err != nil {
		return report, fmt.Errorf("room release trigger: fetch bookings: %w", err)
	}
	report.Candidates = len(bookings)

	for _, b := range bookings {
		if err := s.Rooms.SetStatus(ctx, b.RoomNumber, models.RoomAvailable); err != nil {
			logger.Error("failed to release room", zap.String("bookingId", b.ID), zap.String("room", b.RoomNumber), zap.Error(err))
			report.Failed++
			continue
		}
		if b.State != models.BookingInactive {
			b.State = models.BookingInactive
			if err := s.Bookings.Update(ctx, &b); err != nil {
				logger.Error("failed to deactivate booking", zap.String("bookingId", b.ID), zap.Error(err))
				report.Failed++
				continue
			}
		}
		report.Succeeded++
	}

	logger.Info("room release finished", zap.Int("released", report.Succeeded), zap.Int("failed", report.Failed))
	return report, nil
}

// RunTrigger dispatches a billing trigger by name.
func (s *DefaultBillingService) RunTrigger(ctx context.Context, name string, date time.Time) (RunReport, error) {
	switch name {
	case TriggerRecurring:
		return s.RunRecurringTrigger(ctx, date)
	case TriggerCheckout:
		return s.RunCheckoutTrigger(ctx, date)
	case TriggerRoomRelease:
		return s.RunRoomReleaseTrigger(ctx, date)
	default:
		return RunReport{Trigger: name}, fmt.Errorf("%q: %w", name, ErrUnknownTrigger)
	}
}
