package billing

import (
	"context"
	"time"

	"stayledger/models"

	"github.com/shopspring/decimal"
)

// BillingService computes and persists generated bills.
type BillingService interface {
	// GenerateRecurringBill persists the recurring bill of snap for the month
	// containing today. It returns a nil bill and nil error when the stay is
	// too short to be billed mid-cycle.
	GenerateRecurringBill(ctx context.Context, snap BookingSnapshot, today time.Time) (*models.GeneratedBill, error)
	// GenerateCheckoutBill computes the closing amount of snap without persisting it.
	GenerateCheckoutBill(snap BookingSnapshot) (decimal.Decimal, error)
	// SaveCheckoutBill computes and persists the closing bill of snap.
	SaveCheckoutBill(ctx context.Context, snap BookingSnapshot) (*models.GeneratedBill, error)

	GetBill(ctx context.Context, id string) (*models.GeneratedBill, error)
	ListBills(ctx context.Context, month string) ([]models.GeneratedBill, error)
	ListTenantBills(ctx context.Context, tenantID string) ([]models.GeneratedBill, error)
}

// BookingSnapshot is everything billing needs about one booking, read once
// per trigger run.
type BookingSnapshot struct {
	Booking models.Booking
	Room    models.Room
	Tenant  models.User
	// Utility is nil when the room has no utility bill recorded.
	Utility *models.UtilityBill
}

// Electricity returns the electricity charge carried by the snapshot.
func (s BookingSnapshot) Electricity() decimal.Decimal {
	if s.Utility == nil {
		return decimal.Zero
	}
	return ElectricityAmount(s.Utility.ElectricityUnits, s.Utility.UnitPrice)
}
