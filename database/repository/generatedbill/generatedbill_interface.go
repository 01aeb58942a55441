package generatedBillRepo

import (
	"context"
	"time"

	"stayledger/models"
)

// GeneratedBillRepository persists generated bills.
type GeneratedBillRepository interface {
	// Save inserts a new generated bill. A second bill for the same booking,
	// month and kind fails with database.ErrDuplicate.
	Save(ctx context.Context, bill *models.GeneratedBill) error
	GetByID(ctx context.Context, id string) (*models.GeneratedBill, error)
	List(ctx context.Context, month string) ([]models.GeneratedBill, error)
	ListByTenant(ctx context.Context, tenantID string) ([]models.GeneratedBill, error)
	FindByMonthAndDeliveryStatus(ctx context.Context, month string, status models.DeliveryStatus) ([]models.GeneratedBill, error)
	FindByCheckOutDateAndDeliveryStatus(ctx context.Context, date time.Time, status models.DeliveryStatus) ([]models.GeneratedBill, error)
	ExistsForPeriod(ctx context.Context, bookingID, month string, kind models.BillKind) (bool, error)
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}
