package delivery

import (
	"context"
	"fmt"
	"time"

	generatedBillRepo "stayledger/database/repository/generatedbill"
	"stayledger/models"
	"stayledger/utils"

	"go.uber.org/zap"
)

const (
	RunMonthEnd = "month-end"
	RunCheckout = "checkout"
	RunResend   = "resend"

	monthlySubject  = "Monthly Bill Details"
	checkoutSubject = "Rental Bill Details"
)

// Pipeline renders and mails generated bills that have not been sent yet.
// Each bill is handled on its own: a failure is logged, the bill stays
// NOT_SENT for the next run, and the batch carries on.
type Pipeline struct {
	Bills    generatedBillRepo.GeneratedBillRepository
	Renderer Renderer
	Mailer   Mailer
	Clock    utils.Clock
	Logger   *zap.Logger
}

func (p *Pipeline) now() time.Time {
	if p.Clock == nil {
		return time.Now()
	}
	return p.Clock.Now()
}

// DeliverMonthEnd sends the unsent bills of the month before today.
func (p *Pipeline) DeliverMonthEnd(ctx context.Context, today time.Time) (DeliveryReport, error) {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	month := first.AddDate(0, -1, 0).Format("2006-01")

	bills, err := p.Bills.FindByMonthAndDeliveryStatus(ctx, month, models.DeliveryNotSent)
	if err != nil {
		return DeliveryReport{Run: RunMonthEnd}, fmt.Errorf("month-end delivery: fetch bills for %s: %w", month, err)
	}
	return p.deliver(ctx, RunMonthEnd, bills, monthlyMessage), nil
}

// DeliverCheckouts sends the unsent bills of bookings checking out on today.
func (p *Pipeline) DeliverCheckouts(ctx context.Context, today time.Time) (DeliveryReport, error) {
	bills, err := p.Bills.FindByCheckOutDateAndDeliveryStatus(ctx, utils.DateOf(today), models.DeliveryNotSent)
	if err != nil {
		return DeliveryReport{Run: RunCheckout}, fmt.Errorf("checkout delivery: fetch bills: %w", err)
	}
	return p.deliver(ctx, RunCheckout, bills, checkoutMessage), nil
}

// Resend delivers a single bill again regardless of its delivery status.
func (p *Pipeline) Resend(ctx context.Context, billID string) error {
	bill, err := p.Bills.GetByID(ctx, billID)
	if err != nil {
		return err
	}
	return p.deliverOne(ctx, *bill, messageFor(bill.Kind))
}

// messageFor picks the mail wording of the run that normally sends a bill of kind.
func messageFor(kind models.BillKind) func(models.GeneratedBill) (string, string) {
	if kind == models.BillRecurring {
		return monthlyMessage
	}
	return checkoutMessage
}

func monthlyMessage(b models.GeneratedBill) (string, string) {
	return monthlySubject, fmt.Sprintf("Hi %s,\n\nPlease find attached your bill details for %s.", b.Tenant.Name, b.Month)
}

func checkoutMessage(b models.GeneratedBill) (string, string) {
	return checkoutSubject, fmt.Sprintf("Hi %s,\n\nPlease find attached your bill details.", b.Tenant.Name)
}

func (p *Pipeline) deliver(ctx context.Context, run string, bills []models.GeneratedBill, message func(models.GeneratedBill) (string, string)) DeliveryReport {
	logger := utils.OrNop(p.Logger).With(zap.String("run", run))
	report := DeliveryReport{Run: run, Candidates: len(bills)}

	for _, bill := range bills {
		if ctx.Err() != nil {
			logger.Warn("delivery interrupted", zap.Error(ctx.Err()))
			break
		}
		if err := p.deliverOne(ctx, bill, message); err != nil {
			logger.Error("failed to deliver bill",
				zap.String("billId", bill.ID),
				zap.String("bookingId", bill.Booking.ID),
				zap.String("month", bill.Month),
				zap.Error(err))
			report.Failed++
			report.FailedIDs = append(report.FailedIDs, bill.ID)
			continue
		}
		report.Sent++
	}

	logger.Info("delivery finished",
		zap.Int("candidates", report.Candidates),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed))
	return report
}

func (p *Pipeline) deliverOne(ctx context.Context, bill models.GeneratedBill, message func(models.GeneratedBill) (string, string)) error {
	pdf, err := p.Renderer.Render(bill)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	subject, body := message(bill)
	if err := p.Mailer.Send(ctx, bill.Tenant.Email, subject, body, pdf); err != nil {
		return fmt.Errorf("send to %s: %w", bill.Tenant.Email, err)
	}
	if err := p.Bills.MarkSent(ctx, bill.ID, p.now()); err != nil {
		return fmt.Errorf("mark sent: %w", err)
	}
	return nil
}
